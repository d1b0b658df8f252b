package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/coralpitch/pitchdeck/internal/application"
	appanalysis "github.com/coralpitch/pitchdeck/internal/application/analysis"
	apptranscription "github.com/coralpitch/pitchdeck/internal/application/transcription"
	"github.com/coralpitch/pitchdeck/internal/config"
	"github.com/coralpitch/pitchdeck/internal/domain/pitch"
	"github.com/coralpitch/pitchdeck/internal/infra/ai/elevenlabs"
	"github.com/coralpitch/pitchdeck/internal/infra/ai/mistral"
	mysqlp "github.com/coralpitch/pitchdeck/internal/infra/db/mysql"
	postgresp "github.com/coralpitch/pitchdeck/internal/infra/db/postgres"
	"github.com/coralpitch/pitchdeck/internal/infra/httpserver"
	inframedia "github.com/coralpitch/pitchdeck/internal/infra/media"
	"github.com/coralpitch/pitchdeck/internal/logger"
	"github.com/coralpitch/pitchdeck/internal/middleware"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log := logger.New()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Fatal("config load error")
		}
		cfg = config.Default()
	}

	// Missing credentials are fatal at startup, never per-request
	keys := config.KeysFromEnv()
	if err := keys.RequireAnalysis(); err != nil {
		log.WithError(err).Fatal("startup configuration")
	}

	ctx := context.Background()

	var db *sql.DB
	var repo pitch.Repository
	switch cfg.Database.Driver {
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.WithError(err).Fatal("mysql connect error")
		}
		repo = mysqlp.NewAnalysisRepository(db)
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.WithError(err).Fatal("postgres connect error")
		}
		repo = postgresp.NewAnalysisRepository(db)
	case "":
		log.Info("no database configured, analysis history disabled")
	default:
		log.WithField("driver", cfg.Database.Driver).Fatal("unknown database driver")
	}
	if db != nil {
		defer db.Close()
	}

	speech := elevenlabs.NewClient(keys.ElevenLabs,
		elevenlabs.WithBaseURL(cfg.Speech.BaseURL),
		elevenlabs.WithVoiceID(cfg.Speech.VoiceID),
		elevenlabs.WithTimeout(time.Duration(cfg.Speech.TimeoutSeconds)*time.Second),
	)
	analyzer := mistral.NewClient(keys.Mistral, cfg.Analysis.BaseURL, cfg.Analysis.Model,
		time.Duration(cfg.Analysis.TimeoutSeconds)*time.Second)

	transcriber := apptranscription.NewService(inframedia.NewNormalizer(""), speech, log)

	svc := &appanalysis.Service{
		Transcriber:  transcriber,
		Analyzer:     analyzer,
		Repo:         repo,
		Clock:        application.SystemClock{},
		NFTThreshold: cfg.Analysis.NFTThreshold,
		Log:          log,
	}

	checkers := map[string]middleware.HealthChecker{}
	if db != nil {
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	mux.Use(middleware.Logging(log))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimit(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	mux.Use(middleware.APIKeyAuth(cfg.APIKeys))
	mux.Mount("/", httpserver.NewRouter(svc, log, version, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // transcription + analysis can be slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}
