// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging level, CORS). AppConfig is everything specific to this
// application: the Mongo connection, session cookies, share-link base
// URL, and handler timeouts.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionTTL    time.Duration // How long a session cookie stays valid

	// Base URL prepended to share tokens in responses
	// (e.g., "https://notes.example.com")
	BaseURL string

	// Handler timeout overrides; zero keeps the defaults.
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
