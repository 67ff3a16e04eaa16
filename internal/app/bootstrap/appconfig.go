// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, CORS, and request limits.
// AppConfig is where everything specific to CongHub lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Congregation request handling
	RequestAutoApprove   bool   // Approve congregation requests immediately instead of parking them
	RequestReviewerEmail string // Mailbox notified of requests awaiting manual approval

	// Directory/content gateway base URLs
	DirectoryCountryURL      string // Upstream country listing endpoint
	DirectoryCongregationURL string // Upstream congregation search endpoint
	DirectoryCDNURL          string // Upstream content CDN for source material

	// Pocket one-time codes
	OTPSecretKey string // Hex-encoded 32-byte key for encrypting stored codes

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty disables auth)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	MailFromName string // From display name

	// Audit logging
	AuditLogAdmin string // Admin event logging: "all" (db+log), "db", "log", or "off"
}
