// internal/app/store/storeerr/storeerr.go

// Package storeerr classifies storage failures for the access-decision
// engine. The engine needs exactly one distinction: a grant-source
// collection that has not been provisioned yet must read as "zero grants
// from this source," while every other failure (network, timeout,
// unclassified server error) must abort the whole decision.
//
// Stores wrap their own errors; nothing outside this package inspects
// driver error codes.
package storeerr

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrUnavailable marks a grant source whose backing collection is not
// provisioned. Resolvers treat it as an empty result, never as a denial
// or a server failure.
var ErrUnavailable = errors.New("grant source unavailable")

// namespaceNotFound is Mongo's server code for operations against a
// collection that does not exist (surfaced by aggregations and a few
// other commands; plain finds return empty cursors instead).
const namespaceNotFound = 26

// Classify wraps err as ErrUnavailable when it indicates a missing
// collection, and returns it unchanged otherwise. A nil err stays nil.
func Classify(source string, err error) error {
	if err == nil {
		return nil
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == namespaceNotFound || ce.Name == "NamespaceNotFound") {
		return fmt.Errorf("%s: %w", source, ErrUnavailable)
	}
	return err
}

// IsUnavailable reports whether err carries the ErrUnavailable
// classification.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
