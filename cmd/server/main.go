package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mbaye/vsphere-inventory/internal/config"
	"github.com/mbaye/vsphere-inventory/internal/repository/mongodb"
	"github.com/mbaye/vsphere-inventory/internal/repository/sheets"
	"github.com/mbaye/vsphere-inventory/internal/scheduler"
	"github.com/mbaye/vsphere-inventory/internal/server/handlers"
	"github.com/mbaye/vsphere-inventory/internal/server/router"
	inventorysvc "github.com/mbaye/vsphere-inventory/internal/service/inventory"
	"github.com/mbaye/vsphere-inventory/pkg/clients/vsphere"
	"github.com/mbaye/vsphere-inventory/pkg/clients/webhook"
	"github.com/mbaye/vsphere-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	mongoRepo, err := mongodb.NewMongoDBRepository(startupCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	vsphereClient, err := vsphere.Connect(startupCtx, cfg.VSphere)
	if err != nil {
		baseLogger.Fatal("failed to connect to vcenter", zap.Error(err),
			zap.String("host", cfg.VSphere.Host))
	}
	defer func() {
		if err := vsphereClient.Close(context.Background()); err != nil {
			baseLogger.Error("failed to logout vsphere session", zap.Error(err))
		}
	}()

	var exporters []inventorysvc.Exporter

	if cfg.Webhook.URL != "" {
		exporters = append(exporters, webhook.NewClient(cfg.Webhook))
		baseLogger.Info("webhook exporter enabled", zap.String("url", cfg.Webhook.URL))
	}

	if cfg.Sheets.SpreadsheetID != "" {
		sheetExporter, err := sheets.NewSheetExporter(startupCtx, cfg.Sheets, baseLogger.Named("exporter.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporters = append(exporters, sheetExporter)
		baseLogger.Info("sheets exporter enabled")
	}

	inventorySvc := inventorysvc.NewService(vsphereClient, mongoRepo, cfg.VSphere.Host,
		baseLogger.Named("svc.inventory"), exporters...)

	inventoryHandler := handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventory"))
	engine := router.New(inventoryHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(cfg.Collector, inventorySvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	// Run one collection eagerly so the API has data before the first tick.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Collector.RunTimeout)
		defer cancel()
		if _, err := inventorySvc.Collect(ctx); err != nil {
			baseLogger.Error("initial inventory collection failed", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
