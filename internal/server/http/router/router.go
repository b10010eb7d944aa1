package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/polkiloo/bankportal/internal/config"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/server/http/handlers"
	"github.com/polkiloo/bankportal/internal/server/http/middleware"
)

// Params are the router dependencies. Health and TracerProvider are optional.
type Params struct {
	fx.In

	Facade         handlers.PortalFacade
	Config         *config.Config
	Logger         *slog.Logger
	Health         handlers.HealthChecker `optional:"true"`
	TracerProvider trace.TracerProvider   `optional:"true"`
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	var traceOpts []otelgin.Option
	if p.TracerProvider != nil {
		traceOpts = append(traceOpts, otelgin.WithTracerProvider(p.TracerProvider))
	}

	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware(p.Config.ServiceName, traceOpts...))
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.CORS(p.Config.CORSAllowedOrigins))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(p.Facade, p.Config.SessionTTL, p.Config.CookieSecure)
	onboardingHandler := handlers.NewOnboardingHandler(p.Facade)
	accountHandler := handlers.NewAccountHandler(p.Facade)
	paymentHandler := handlers.NewPaymentHandler(p.Facade)
	creditHandler := handlers.NewCreditHandler(p.Facade)
	notificationHandler := handlers.NewNotificationHandler(p.Facade)
	dashboardHandler := handlers.NewDashboardHandler(p.Facade)
	adminHandler := handlers.NewAdminHandler(p.Facade)
	metaHandler := handlers.NewMetaHandler(p.Health)

	api := engine.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)
	api.GET("/meta/enums", metaHandler.Enums)
	api.GET("/health", metaHandler.Health)

	authed := api.Group("")
	authed.Use(middleware.SessionRequired(p.Facade, p.Config.CookieSecure))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/auth/refresh", authHandler.Refresh)
	authed.GET("/session/landing", authHandler.Landing)
	authed.POST("/onboarding/profile", onboardingHandler.CreateProfile)
	authed.POST("/onboarding/kyc", onboardingHandler.SubmitKYC)
	authed.GET("/kyc/status", onboardingHandler.Status)

	portal := authed.Group("")
	portal.Use(middleware.RequireRole(model.RoleCustomer, model.RoleAdmin))
	portal.GET("/dashboard", dashboardHandler.Dashboard)
	portal.GET("/profile", dashboardHandler.Profile)
	portal.PUT("/profile", dashboardHandler.UpdateProfile)

	portal.GET("/accounts", accountHandler.List)
	portal.POST("/accounts", accountHandler.Open)
	portal.GET("/accounts/:id", accountHandler.Get)
	portal.GET("/accounts/:id/balance", accountHandler.Balance)
	portal.DELETE("/accounts/:id", accountHandler.Close)
	portal.GET("/recipients/:customerId", accountHandler.Recipients)

	portal.POST("/transfers/deposit", paymentHandler.Deposit)
	portal.POST("/transfers/self", paymentHandler.SelfTransfer)
	portal.POST("/transfers/bank", paymentHandler.BankTransfer)
	portal.POST("/transfers/external", paymentHandler.ExternalTransfer)
	portal.GET("/payments", paymentHandler.History)
	portal.GET("/transactions", paymentHandler.Transactions)

	portal.POST("/loans", creditHandler.ApplyLoan)
	portal.POST("/cards", creditHandler.ApplyCard)
	portal.GET("/credits", creditHandler.List)
	portal.GET("/credits/:id", creditHandler.Get)
	portal.DELETE("/credits/:id", creditHandler.Close)
	portal.GET("/credits/:id/repayment", creditHandler.Repayment)
	portal.POST("/credits/:id/repay", creditHandler.Repay)

	portal.GET("/notifications", notificationHandler.List)
	portal.POST("/notifications", notificationHandler.Send)
	portal.GET("/notifications/unseen", notificationHandler.Unseen)
	portal.POST("/notifications/seen", notificationHandler.MarkAllSeen)
	portal.PATCH("/notifications/:id/seen", notificationHandler.MarkSeen)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin), middleware.AdminOnly())
	admin.GET("/approvals", adminHandler.PendingApprovals)
	admin.POST("/approvals", adminHandler.ExecuteApprovals)
	admin.GET("/approvals/:service", adminHandler.ServiceApprovals)
	admin.POST("/approvals/:service/bulk", adminHandler.BulkApprove)
	admin.GET("/users", adminHandler.Users)
	admin.GET("/users/:id", adminHandler.User)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/insights", adminHandler.Insights)

	return engine
}
