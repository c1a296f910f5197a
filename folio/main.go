package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/folio/config"
	"folio/folio/controllers"
	"folio/folio/routes"
	"folio/folio/services/llm"
	"folio/folio/services/mailer"
	"folio/folio/services/persona"
	"folio/folio/sources/psql"
	"folio/folio/sources/psql/dao"
	"folio/folio/sources/storage"
	"folio/folio/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	doc, err := persona.Load(cfg.PersonaPath)
	if err != nil {
		logging.ErrorLogger.Error("persona document error", zap.Error(err))
		os.Exit(1)
	}

	analyticsDAO := dao.NewAnalyticsDAO(db.DB)
	messageDAO := dao.NewContactMessageDAO(db.DB)
	userDAO := dao.NewAdminUserDAO(db.DB)

	archive, err := storage.NewArchiveStore(cfg)
	if err != nil {
		logging.ErrorLogger.Error("minio connection error", zap.Error(err))
		os.Exit(1)
	}

	chatCtrl := controllers.NewChatController(llm.NewGeminiClient(cfg), doc)
	analyticsCtrl := controllers.NewAnalyticsController(analyticsDAO, archive)
	contactCtrl := controllers.NewContactController(messageDAO)
	authCtrl := controllers.NewAuthController(userDAO, cfg)
	healthCtrl := controllers.NewHealthController()

	// Email notifier: optional, the site works without SMTP credentials.
	if m, err := mailer.NewMailer(cfg); err != nil {
		logging.AppLogger.Warn("mail notifications disabled", zap.Error(err))
	} else {
		watcher := mailer.NewWatcher(messageDAO, m.Notify, 15*time.Second)
		stop, err := watcher.Start(context.Background())
		if err != nil {
			logging.ErrorLogger.Error("mail watcher error", zap.Error(err))
			os.Exit(1)
		}
		defer stop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.RequestSize(1 << 20))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/api/chat", routes.ChatRoutes(chatCtrl))
	r.Mount("/api/analytics", routes.AnalyticsRoutes(analyticsCtrl))
	r.Mount("/api/messages", routes.MessageRoutes(contactCtrl))
	r.Mount("/api/auth", routes.AuthRoutes(authCtrl))
	r.Mount("/api/admin", routes.AdminRoutes(analyticsCtrl, contactCtrl, cfg))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
