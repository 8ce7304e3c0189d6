// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the portal.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: HACKPORTAL_MONGO_URI, HACKPORTAL_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "hackportal", Desc: "MongoDB database name"},

	// Leader authentication
	{Name: "jwt_secret", Default: "", Desc: "HMAC secret for leader session tokens (required)"},

	// Admin console
	{Name: "session_key", Default: "", Desc: "Admin session signing key (random per boot when blank)"},
	{Name: "session_name", Default: "hackportal-admin", Desc: "Admin session cookie name"},
	{Name: "admin_email", Default: "", Desc: "Admin account email"},
	{Name: "admin_password_hash", Default: "", Desc: "bcrypt hash of the admin password"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@jwstechnologies.com", Desc: "From email address"},
	{Name: "mail_from_name", Default: "JWS Technologies Hackathon", Desc: "From display name"},

	// Registration business settings
	{Name: "fee_per_head", Default: 200, Desc: "Registration fee per participant (rupees)"},
	{Name: "team_id_prefix", Default: "HIT", Desc: "Team display-ID prefix"},
	{Name: "team_id_base", Default: 101, Desc: "First team number handed out"},

	// Event documents
	{Name: "docs_dir", Default: "./docs", Desc: "Directory of event PDFs (served at /docs, attached to approval mail)"},

	// Base URL for email links
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for email links"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "HACKPORTAL", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		JWTSecret: appValues.String("jwt_secret"),

		SessionKey:        appValues.String("session_key"),
		SessionName:       appValues.String("session_name"),
		AdminEmail:        appValues.String("admin_email"),
		AdminPasswordHash: appValues.String("admin_password_hash"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		FeePerHead:   appValues.Int("fee_per_head"),
		TeamIDPrefix: appValues.String("team_id_prefix"),
		TeamIDBase:   appValues.Int("team_id_base"),

		DocsDir: appValues.String("docs_dir"),
		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The portal refuses to boot without a JWT secret: leader sessions signed
// with a guessable key would let anyone mint a token for any team.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required (set HACKPORTAL_JWT_SECRET)")
	}

	if appCfg.AdminEmail == "" || appCfg.AdminPasswordHash == "" {
		logger.Warn("admin credentials not configured; admin console login is disabled")
	}

	if appCfg.FeePerHead <= 0 {
		return fmt.Errorf("fee_per_head must be positive, got %d", appCfg.FeePerHead)
	}
	if appCfg.TeamIDBase <= 0 {
		return fmt.Errorf("team_id_base must be positive, got %d", appCfg.TeamIDBase)
	}

	return nil
}
