// internal/app/policy/docaccess/engine.go

// Package docaccess decides whether a caller may perform an action on a
// document. Four independent grant sources can authorize the action:
//
//  1. Ownership: the document's creator always has full access.
//  2. Group grants: the primary group (implicit "write" link) and any
//     explicit group-document links, combined with the caller's active
//     membership role.
//  3. Direct ACL: per-document allow-list entries for a user or group.
//  4. Shared links: time-bounded grants addressed to an email or user.
//
// The engine evaluates the sources in that fixed order and stops at the
// first affirmative answer. The order matters: ownership takes
// unconditional priority and must not be reordered behind the others.
//
// A grant source whose backing collection has not been provisioned
// (storeerr.ErrUnavailable) contributes zero grants and the decision
// continues; any other store failure aborts the decision and propagates,
// so an outage is never reported as a denial.
package docaccess

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quangphamai/mindmapnote/internal/app/store/storeerr"
	"github.com/quangphamai/mindmapnote/internal/domain/models"
)

// resolver is one grant source. Resolvers are pure reads: no resolver
// may mutate anything, so a cancelled decision leaves no side effects.
type resolver interface {
	name() string
	resolve(ctx context.Context, p Principal, doc models.Document, action Action) (bool, error)
}

// Engine is the authoritative access decider. It is stateless and safe
// for concurrent use; every call recomputes from current store data.
type Engine struct {
	log       *zap.Logger
	ranks     *Ranks
	resolvers []resolver
}

// NewEngine wires the four grant-source resolvers in their fixed
// precedence order.
func NewEngine(ranks *Ranks, memberships MembershipSource, links LinkSource, acl ACLSource, shares ShareSource, logger *zap.Logger) *Engine {
	return &Engine{
		log:   logger,
		ranks: ranks,
		resolvers: []resolver{
			ownerResolver{},
			&groupGrantResolver{ranks: ranks, memberships: memberships, links: links},
			&aclResolver{ranks: ranks, memberships: memberships, entries: acl},
			&shareResolver{ranks: ranks, shares: shares, now: time.Now},
		},
	}
}

// HasAccess reports whether the principal may perform action on doc.
// Denial is the false return, never an error; an error means the
// decision could not be made and the caller must fail the request
// rather than deny it.
func (e *Engine) HasAccess(ctx context.Context, p Principal, doc models.Document, action Action) (bool, error) {
	// An unrecognized action ranks 0 and would trivially satisfy every
	// grant comparison. Fail closed instead.
	if e.ranks.RequiredAction(action) == 0 {
		return false, nil
	}
	for _, res := range e.resolvers {
		ok, err := res.resolve(ctx, p, doc, action)
		if err != nil {
			if storeerr.IsUnavailable(err) {
				e.log.Warn("grant source unprovisioned, counting zero grants",
					zap.String("source", res.name()),
					zap.String("document_id", doc.ID.Hex()),
					zap.Error(err))
				continue
			}
			return false, fmt.Errorf("%s: %w", res.name(), err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
