// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS). AppConfig carries everything specific to the hackathon
// portal: the Mongo connection, auth secrets, mail delivery, and the
// registration business settings.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Leader authentication (JWT cookie)
	JWTSecret string // HMAC secret for signing leader tokens (required)

	// Admin console session
	SessionKey        string // Secret key for signing the admin session cookie
	SessionName       string // Admin session cookie name
	AdminEmail        string // The single admin account's email
	AdminPasswordHash string // bcrypt hash of the admin password

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty disables AUTH)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	MailFromName string // From display name

	// Registration business settings
	FeePerHead   int    // Registration fee per participant, in rupees
	TeamIDPrefix string // Display-ID prefix (e.g., "HIT")
	TeamIDBase   int    // First numeric suffix handed out (e.g., 101)

	// DocsDir holds the event PDFs served at /docs and attached to
	// approval mail. Empty disables attachments.
	DocsDir string

	// Base URL used in email links
	BaseURL string // e.g., "https://hackathon.jwstechnologies.com"
}
