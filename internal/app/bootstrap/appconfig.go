// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, CORS). AppConfig is everything specific to CourseForge:
// database connection, session cookies, and OAuth credentials.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: courseforge-session)
	SessionDomain string // Cookie domain (blank means current host)

	// BaseURL is the public origin, used for OAuth callback URLs.
	BaseURL string

	// Google OAuth configuration; both empty disables Google sign-in.
	GoogleClientID     string
	GoogleClientSecret string
}
