package app

import (
	"context"
	"net/http"
	"time"

	jwtauth "github.com/MicaelTR/ConectaVizinhos/internal/auth/jwt"
	"github.com/MicaelTR/ConectaVizinhos/internal/config"
	miniostore "github.com/MicaelTR/ConectaVizinhos/internal/image/minio"
	"github.com/MicaelTR/ConectaVizinhos/internal/store"
	storedb "github.com/MicaelTR/ConectaVizinhos/internal/store/db"
	storehandler "github.com/MicaelTR/ConectaVizinhos/internal/store/handler"
	"github.com/MicaelTR/ConectaVizinhos/internal/store/seed"
	storeservice "github.com/MicaelTR/ConectaVizinhos/internal/store/service"
	minioclient "github.com/MicaelTR/ConectaVizinhos/pkg/client/minio"
	pgclient "github.com/MicaelTR/ConectaVizinhos/pkg/client/postgresql"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type App struct {
	HTTPServer *http.Server
}

func NewApp(log *zap.Logger, cfg config.Config) *App {
	pgClient, err := pgclient.NewClient(
		context.TODO(),
		pgclient.Config{
			Username: cfg.PostgreSQL.Username,
			Password: cfg.PostgreSQL.Password,
			Host:     cfg.PostgreSQL.Host,
			Port:     cfg.PostgreSQL.Port,
			Database: cfg.PostgreSQL.Database,
		},
	)
	if err != nil {
		log.Fatal(err.Error())
	}

	minioClient, err := minioclient.New(
		context.TODO(),
		minioclient.Config{
			Endpoint:        cfg.Minio.Endpoint,
			AccessKeyID:     cfg.Minio.AccessKeyID,
			SecretAccessKey: cfg.Minio.SecretAccessKey,
			UseSSL:          cfg.Minio.UseSSL,
			Bucket:          cfg.Minio.Bucket,
		},
	)
	if err != nil {
		log.Fatal(err.Error())
	}

	router := chi.NewRouter()

	router.Use(
		LoggingMiddleware(log),
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.HTTPServer.AllowedOrigins,
			AllowCredentials: true,
		}),
		middleware.Recoverer,
	)

	router.Get("/ping", PingHandler)

	urls := store.ImageURLs{
		Base:              cfg.HTTPServer.PublicURL,
		LogoPlaceholder:   cfg.Images.LogoPlaceholder,
		BannerPlaceholder: cfg.Images.BannerPlaceholder,
	}

	storeRepository := storedb.New(pgClient, log)

	imageStore := miniostore.New(minioClient, cfg.Minio.Bucket, log)

	seedCatalog := seed.NewCatalog()

	storeService := storeservice.New(storeRepository, imageStore, seedCatalog, urls, log)

	tokenManager := jwtauth.NewTokenManager(cfg.JWT)

	authMiddleware := jwtauth.NewMiddleware(log, tokenManager)

	storeHandler := storehandler.New(storeService, authMiddleware, urls, log)

	log.Info("register store handlers")

	storeHandler.Register(router)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		HTTPServer: srv,
	}
}

func (a *App) MustRun() {
	if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		panic("failed to start server")
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.HTTPServer.Shutdown(ctx)
}

func LoggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}
