package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/biometric-hris/attendance-processor/internal/config"
	"github.com/biometric-hris/attendance-processor/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

const (
	AppName    = "attendance-processor"
	AppVersion = "v1.0.0"
)

func NewRouter(appConfig config.AppConfig, attendanceHandler AttendanceHandler, reportHandler ReportHandler) *chi.Mux {
	r := chi.NewRouter()

	level, err := config.ParseLogLevel(appConfig.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	logFormat := httplog.SchemaECS.Concise(appConfig.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", AppName),
		slog.String("version", AppVersion),
		slog.String("env", appConfig.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appConfig.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  level,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			response.Success(w, map[string]string{
				"status":  "healthy",
				"service": AppName,
				"version": AppVersion,
			})
		})

		r.Get("/profiles", attendanceHandler.ListProfiles)
		r.Get("/layouts", attendanceHandler.ListLayouts)

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/process", attendanceHandler.Process)
			r.Post("/batch", attendanceHandler.ProcessBatch)
			r.Get("/reports/{filename}", attendanceHandler.DownloadReport)
			r.Get("/sample", attendanceHandler.Sample)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Post("/statistics", reportHandler.GetStatistics)
		})
	})

	return r
}
