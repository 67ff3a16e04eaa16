// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CongHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, directory_cdn_url, etc.
//   - Environment variables: CONGHUB_MONGO_URI, CONGHUB_DIRECTORY_CDN_URL, etc.
//   - Command-line flags: --mongo_uri, --directory_cdn_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "conghub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Congregation request handling
	{Name: "request_auto_approve", Default: false, Desc: "Approve congregation requests immediately instead of queuing for review"},
	{Name: "request_reviewer_email", Default: "", Desc: "Mailbox notified of congregation requests awaiting manual approval"},

	// Directory/content gateway
	{Name: "directory_country_url", Default: "", Desc: "Upstream country listing endpoint"},
	{Name: "directory_congregation_url", Default: "", Desc: "Upstream congregation search endpoint"},
	{Name: "directory_cdn_url", Default: "", Desc: "Upstream content CDN for source material"},

	// Pocket one-time codes
	{Name: "otp_secret_key", Default: "", Desc: "Hex-encoded 32-byte key for encrypting stored pocket codes"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@conghub.org", Desc: "From email address"},
	{Name: "mail_from_name", Default: "CongHub", Desc: "From display name"},

	// Audit logging settings
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// WAFFLE's config.LoadWithAppConfig handles .env files, config
// files, environment variables (WAFFLE_* for core, CONGHUB_* for app),
// and command-line flags, merged with precedence flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CONGHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		// Congregation requests
		RequestAutoApprove:   appValues.Bool("request_auto_approve"),
		RequestReviewerEmail: appValues.String("request_reviewer_email"),

		// Directory/content gateway
		DirectoryCountryURL:      appValues.String("directory_country_url"),
		DirectoryCongregationURL: appValues.String("directory_congregation_url"),
		DirectoryCDNURL:          appValues.String("directory_cdn_url"),

		// Pocket one-time codes
		OTPSecretKey: appValues.String("otp_secret_key"),

		// Email/SMTP
		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		// Audit logging
		AuditLogAdmin: appValues.String("audit_log_admin"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// CongHub validates the MongoDB URI format and the presence of the
// gateway base URLs and OTP key to catch configuration errors early,
// before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.DirectoryCountryURL == "" || appCfg.DirectoryCongregationURL == "" || appCfg.DirectoryCDNURL == "" {
		return fmt.Errorf("directory_country_url, directory_congregation_url, and directory_cdn_url must all be set")
	}

	if appCfg.OTPSecretKey == "" {
		return fmt.Errorf("otp_secret_key must be set (hex-encoded 32-byte key)")
	}

	if !appCfg.RequestAutoApprove && appCfg.RequestReviewerEmail == "" {
		return fmt.Errorf("request_reviewer_email must be set when request_auto_approve is off")
	}

	return nil
}
