// Package main runs the insign backend HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/insign-app/backend/config"
	"github.com/insign-app/backend/internal/contracts"
	"github.com/insign-app/backend/internal/events"
	"github.com/insign-app/backend/internal/inquiries"
	"github.com/insign-app/backend/internal/mail"
	"github.com/insign-app/backend/internal/middleware"
	"github.com/insign-app/backend/internal/policies"
	"github.com/insign-app/backend/pkg/database"
	"github.com/insign-app/backend/pkg/response"
	"github.com/insign-app/backend/pkg/storage"
	"github.com/insign-app/backend/web"

	authpkg "github.com/insign-app/backend/internal/auth"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	mailer := mail.NewMailer(cfg.SMTP, logger)
	if !mailer.Configured() {
		logger.Warn("smtp relay not configured; outbound mail will fail")
	}

	var s3Client *storage.S3
	if cfg.AWS.AttachmentsBucket != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			AttachmentsBucket:    cfg.AWS.AttachmentsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := authpkg.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Events
	eventRepo := events.NewRepository(pool)
	eventSvc := events.NewService(eventRepo, logger)
	eventHandler := events.NewHandler(eventSvc)
	eventAdmin := events.NewAdminHandler(eventSvc)

	// Policies
	policyRepo := policies.NewRepository(pool)
	policySvc := policies.NewService(policyRepo, logger)
	policyHandler := policies.NewHandler(policySvc)
	policyViews := policies.NewViewHandler(policySvc)
	policyAdmin := policies.NewAdminHandler(policySvc)

	// Inquiries
	inquiryRepo := inquiries.NewRepository(pool)
	inquirySvc := inquiries.NewService(inquiryRepo, mailer, logger)
	inquiryHandler := inquiries.NewHandler(inquirySvc)
	inquiryAdmin := inquiries.NewAdminHandler(inquirySvc)
	attachmentHandler := inquiries.NewAttachmentHandler(s3Client)

	// Contracts (signature-request mail)
	contractRepo := contracts.NewRepository(pool)
	contractHandler := contracts.NewHandler(contractRepo, mailer, cfg.App.BaseURL, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.SetHTMLTemplate(web.Templates())

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public API
	router.GET("/api/events", eventHandler.ListActive)
	router.GET("/api/policies/privacy-policy", policyHandler.GetPrivacyPolicy)
	router.GET("/api/policies/terms-of-service", policyHandler.GetTermsOfService)
	router.GET("/api/policies/:id", policyHandler.GetByID)

	// Public rendered policy pages
	router.GET("/policies/privacy", policyViews.Privacy)
	router.GET("/policies/terms", policyViews.Terms)

	// Bearer-authenticated API
	api := router.Group("/api")
	api.Use(middleware.JWT(jwtService))
	{
		api.POST("/inquiries", inquiryHandler.Create)
		api.GET("/inquiries/my", inquiryHandler.ListMine)
		api.GET("/inquiries/:id", inquiryHandler.GetByID)
		api.POST("/inquiries/attachments/upload-url", attachmentHandler.GenerateUploadURL)

		api.POST("/contracts/:id/send-signature", middleware.RequireRole("admin"), contractHandler.SendSignatureRequest)
	}

	// Admin pages (JWT with admin role)
	adm := router.Group("/adm")
	adm.Use(middleware.JWT(jwtService), middleware.RequireRole("admin"))
	{
		adm.GET("/events", eventAdmin.Index)
		adm.GET("/events/new", eventAdmin.NewForm)
		adm.POST("/events", eventAdmin.Create)
		adm.GET("/events/:id/edit", eventAdmin.EditForm)
		adm.POST("/events/:id", eventAdmin.Update)
		adm.POST("/events/:id/delete", eventAdmin.Delete)

		adm.GET("/policies", policyAdmin.Index)
		adm.GET("/policies/new", policyAdmin.NewForm)
		adm.POST("/policies", policyAdmin.Create)
		adm.GET("/policies/:id/edit", policyAdmin.EditForm)
		adm.POST("/policies/:id", policyAdmin.Update)
		adm.POST("/policies/:id/activate", policyAdmin.SetActive)
		adm.POST("/policies/:id/delete", policyAdmin.Delete)

		adm.GET("/inquiries", inquiryAdmin.Index)
		adm.GET("/inquiries/:id", inquiryAdmin.Detail)
		adm.POST("/inquiries/:id/status", inquiryAdmin.UpdateStatus)
		adm.POST("/inquiries/:id/respond", inquiryAdmin.Respond)
		adm.POST("/inquiries/:id/delete", inquiryAdmin.Remove)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
