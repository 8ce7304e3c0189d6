// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminfeature "github.com/jwstechnologies/hackportal/internal/app/features/admin"
	healthfeature "github.com/jwstechnologies/hackportal/internal/app/features/health"
	loginfeature "github.com/jwstechnologies/hackportal/internal/app/features/login"
	noticesfeature "github.com/jwstechnologies/hackportal/internal/app/features/notices"
	registerfeature "github.com/jwstechnologies/hackportal/internal/app/features/register"
	teamfeature "github.com/jwstechnologies/hackportal/internal/app/features/team"
	"github.com/jwstechnologies/hackportal/internal/app/system/auth"
	"github.com/jwstechnologies/hackportal/internal/app/system/mailer"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"

	tokenAuth, err := auth.NewTokenAuth(appCfg.JWTSecret, secure)
	if err != nil {
		logger.Error("token auth init failed", zap.Error(err))
		return nil, err
	}

	adminSessions := auth.NewAdminSessions(appCfg.SessionKey, appCfg.SessionName, secure, logger)

	mail := mailer.New(appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.MailFromName, logger)

	teams := newTeamStore(deps, appCfg)

	r := chi.NewRouter()

	// Leader token middleware runs globally; routes that need it enforce
	// with RequireLeader, everything else just ignores the context value.
	r.Use(tokenAuth.LoadLeader)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Event documents with pre-compressed file support (gzip/brotli)
	if appCfg.DocsDir != "" {
		r.Handle("/docs/*", fileserver.Handler("/docs", appCfg.DocsDir))
	}

	// Public registration and leader auth
	registerHandler := registerfeature.NewHandler(teams, mail, logger)
	r.Mount("/api/register", registerfeature.Routes(registerHandler))

	loginHandler := loginfeature.NewHandler(teams, tokenAuth, logger)
	r.Mount("/api/login", loginfeature.Routes(loginHandler))
	r.Mount("/api/logout", loginfeature.LogoutRoutes(loginHandler))

	// Leader self-service
	teamHandler := teamfeature.NewHandler(teams, logger)
	r.Mount("/api/team", teamfeature.Routes(teamHandler))

	// Notice board
	r.Mount("/api/notices", noticesfeature.Routes())

	// Admin console
	adminHandler := adminfeature.NewHandler(teams, adminSessions, mail,
		appCfg.AdminEmail, appCfg.AdminPasswordHash, appCfg.DocsDir, logger)
	r.Mount("/api/admin", adminfeature.Routes(adminHandler))

	return r, nil
}
