// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	congregationsfeature "github.com/dalemusser/conghub/internal/app/features/congregations"
	healthfeature "github.com/dalemusser/conghub/internal/app/features/health"
	membersfeature "github.com/dalemusser/conghub/internal/app/features/members"
	pocketfeature "github.com/dalemusser/conghub/internal/app/features/pocket"
	schedulesfeature "github.com/dalemusser/conghub/internal/app/features/schedules"
	"github.com/dalemusser/conghub/internal/app/gateway/directory"
	auditstore "github.com/dalemusser/conghub/internal/app/store/audit"
	"github.com/dalemusser/conghub/internal/app/system/mailer"
	"github.com/dalemusser/conghub/internal/app/system/otpcrypt"
	"github.com/dalemusser/conghub/internal/app/system/outcome"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. CongHub builds its shared collaborators
// (outcome reporter, directory gateway, mailer, OTP cipher) once, then
// mounts the feature routers: health, the public source-material listing,
// and the congregation API with its member, pocket, and schedule
// sub-resources.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.CongHubMongoDatabase

	out := outcome.New(auditstore.New(db), logger, appCfg.AuditLogAdmin)

	dir := directory.New(
		appCfg.DirectoryCountryURL,
		appCfg.DirectoryCongregationURL,
		appCfg.DirectoryCDNURL,
		logger,
	)

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	otp, err := otpcrypt.NewFromHex(appCfg.OTPSecretKey)
	if err != nil {
		logger.Error("otp cipher init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CongHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	schedulesHandler := schedulesfeature.NewHandler(db, out, dir, logger)

	// Public routes: no caller identity required
	r.Mount("/api/public", schedulesfeature.PublicRoutes(schedulesHandler))

	// Congregation API with its sub-resources
	membersHandler := membersfeature.NewHandler(db, out, logger)
	pocketHandler := pocketfeature.NewHandler(db, out, otp, logger)

	congHandler := congregationsfeature.NewHandler(db, out, dir, mail, congregationsfeature.Config{
		AutoApproveRequests: appCfg.RequestAutoApprove,
		ReviewerEmail:       appCfg.RequestReviewerEmail,
	}, logger)

	r.Mount("/api/congregations", congregationsfeature.Routes(
		congHandler,
		membersfeature.Routes(membersHandler),
		pocketfeature.Routes(pocketHandler),
		schedulesfeature.Routes(schedulesHandler),
	))

	return r, nil
}
