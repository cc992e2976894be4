package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/bryanwahyu/contract-sentinel/internal/application"
	appai "github.com/bryanwahyu/contract-sentinel/internal/application/ai"
	appanalysis "github.com/bryanwahyu/contract-sentinel/internal/application/analysis"
	"github.com/bryanwahyu/contract-sentinel/internal/config"
	openaicli "github.com/bryanwahyu/contract-sentinel/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/contract-sentinel/internal/infra/db/mysql"
	"github.com/bryanwahyu/contract-sentinel/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/contract-sentinel/internal/infra/storage"
	"github.com/bryanwahyu/contract-sentinel/internal/middleware"
)

func main() {
	// .env is optional; the premium key usually lives there
	_ = godotenv.Load()

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect MySQL
	db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql connect error: %v", err)
	}
	defer db.Close()

	// init repos
	repo := mysqlp.NewAnalysisRepository(db)
	failures := mysqlp.NewFailureRepository(db)

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// init invoker + service
	invoker := appai.NewInvoker(openaicli.NewClient(), logger)
	svc := &appanalysis.Service{
		Invoker:      invoker,
		ServerAPIKey: cfg.ServerAPIKey(),
		Repo:         repo,
		Failures:     failures,
		Reports:      store,
		Clock:        application.SystemClock{},
		Log:          logger,
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(30, 1))
	if len(cfg.Auth.Keys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.Keys))
	}

	mux.Get("/healthz", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Get("/readyz", middleware.ReadinessHandler)
	mux.Get("/livez", middleware.LivenessHandler)

	mux.Mount("/", httpserver.NewRouter(svc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // AI retries can hold a request for a while
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
