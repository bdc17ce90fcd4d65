package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biometric-hris/attendance-processor/internal/config"
	"github.com/biometric-hris/attendance-processor/internal/fixtures"
	appHTTP "github.com/biometric-hris/attendance-processor/internal/handler/http"
	"github.com/biometric-hris/attendance-processor/internal/pkg/cron"
	"github.com/biometric-hris/attendance-processor/internal/pkg/storage"
	attendanceService "github.com/biometric-hris/attendance-processor/internal/service/attendance"
	reportService "github.com/biometric-hris/attendance-processor/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	level, err := config.ParseLogLevel(cfg.App.LogLevel)
	if err != nil {
		log.Fatal("Invalid log level:", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	layouts, err := config.LoadLayouts(cfg.Processing.LayoutFile)
	if err != nil {
		log.Fatal("Failed to load layouts:", err)
	}

	engine := attendanceService.NewEngine(slog.Default(), cfg.Processing.BatchConcurrency)
	attendanceSvc := attendanceService.NewAttendanceService(
		engine,
		fileStorage,
		fixtures.DefaultShiftProfiles(),
		layouts,
		cfg.Processing.DefaultMaxHours,
		cfg.Processing.BatchConcurrency,
	)
	reportSvc := reportService.NewReportService(cfg.Processing.DefaultMaxHours)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, cfg.Processing.MaxUploadBytes())
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(cfg.App, attendanceHandler, reportHandler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler()
	reportJobs := cron.NewReportJobs(fileStorage, attendanceService.ReportDir, cfg.Reports.Retention, cfg.Reports.PurgeInterval)
	reportJobs.RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shut down server", "error", err)
		}
	}()

	slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "layouts", len(layouts)+1)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
