package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/localhire/internal/catalog"
	"github.com/ignatzorin/localhire/internal/config"
	"github.com/ignatzorin/localhire/internal/db"
	"github.com/ignatzorin/localhire/internal/goroutine"
	httpHandlers "github.com/ignatzorin/localhire/internal/http/handlers"
	httpRouter "github.com/ignatzorin/localhire/internal/http/router"
	"github.com/ignatzorin/localhire/internal/logger"
	"github.com/ignatzorin/localhire/internal/repository"
	"github.com/ignatzorin/localhire/internal/service"
	"github.com/ignatzorin/localhire/internal/storage"
	"github.com/ignatzorin/localhire/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Setup(cfg.Env)
	mainLog := logger.Component("main")

	store, err := catalog.NewDefaultStore()
	if err != nil {
		mainLog.WithError(err).Fatal("не удалось загрузить каталог")
	}

	files, err := storage.NewFileStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		mainLog.WithError(err).Fatal("не удалось подготовить файловое хранилище")
	}

	// База необязательна: без неё заявки только логируются.
	var (
		dbConn *sqlx.DB
		next   service.Sender
	)
	if cfg.DatabaseURL != "" {
		dbConn, err = db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			mainLog.WithError(err).Fatal("ошибка подключения к базе")
		}
		defer safeClose(dbConn)

		if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
			mainLog.WithError(err).Fatal("ошибка миграций")
		}
		next = repository.NewSubmissionRepository(dbConn)
	} else {
		mainLog.Warn("DATABASE_URL не задан, заявки пишутся только в лог")
	}

	submissions := service.NewSubmissionService(store, files, service.NewLogSender(next), service.SubmissionOptions{
		Timeout:       cfg.SubmitTimeout,
		WaitlistDelay: cfg.WaitlistDelay,
	})

	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, "ws hub", hub.Run)

	pipelines := httpHandlers.NewPipelines(store, httpHandlers.PageSizes{
		Jobs:     cfg.JobsPageSize,
		Artisans: cfg.ArtisansPageSize,
		Products: cfg.ProductsPageSize,
	})

	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Health:      httpHandlers.NewHealthHandler(dbConn, store),
		Catalog:     httpHandlers.NewCatalogHandler(store, pipelines),
		Submissions: httpHandlers.NewSubmissionHandler(submissions),
		Live:        httpHandlers.NewLiveHandler(hub, pipelines, cfg.AllowedOrigins),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo("http shutdown", func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			mainLog.WithError(err).Error("ошибка остановки http сервера")
		}
	})

	mainLog.WithField("port", cfg.HTTPPort).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		mainLog.WithError(err).Fatal("сервер завершился с ошибкой")
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Component("main").WithError(err).Error("ошибка закрытия базы")
	}
}
