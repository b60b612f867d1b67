//	@title			TableLog API
//	@version		1.0
//	@description	Restaurant listing and review service with object-store backed file transfer.
//
//	@host		localhost:8080
//	@BasePath	/api/v1

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tablelog/service/internal/config"
	"github.com/tablelog/service/internal/db"
	"github.com/tablelog/service/internal/files"
	appMiddleware "github.com/tablelog/service/internal/middleware"
	"github.com/tablelog/service/internal/restaurant"
	"github.com/tablelog/service/internal/review"
	"github.com/tablelog/service/internal/storage"
	"github.com/tablelog/service/internal/web"

	_ "github.com/tablelog/service/docs/swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StoragePublicBase,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	// Wire dependencies: repository → service → handler
	restaurantRepo := restaurant.NewRepository(pool)
	restaurantSvc := restaurant.NewService(restaurantRepo, store)
	restaurantHandler := restaurant.NewHandler(restaurantSvc)

	reviewRepo := review.NewRepository(pool)
	reviewSvc := review.NewService(reviewRepo, restaurantSvc)
	reviewHandler := review.NewHandler(reviewSvc)

	filesHandler := files.NewHandler(store)
	webHandler := web.NewHandler(restaurantSvc, reviewSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", restaurantHandler.List)
			r.Post("/", restaurantHandler.Create)
			r.Get("/{id}", restaurantHandler.Get)
			r.Get("/{id}/reviews", reviewHandler.ListByRestaurant)
			r.Post("/{id}/reviews", reviewHandler.Create)
		})
	})

	// HTML pages and form posts, CSRF-protected with the configured secret
	csrfProtect := csrf.Protect(
		[]byte(cfg.SecretKey),
		csrf.Secure(cfg.IsProduction()),
		csrf.Path("/"),
	)
	r.Group(func(r chi.Router) {
		r.Use(csrfProtect)
		r.Get("/", webHandler.Index)
		r.Get("/details/{id}", webHandler.Details)
		r.Get("/create_restaurant", webHandler.CreateForm)
		r.Post("/add_restaurant", webHandler.AddRestaurant)
		r.Post("/add_review/{id}", webHandler.AddReview)
		r.Post("/upload", filesHandler.Upload)
	})
	r.Get("/download/{filename}", filesHandler.Download)
	r.Get("/favicon.ico", webHandler.Favicon)
	r.Handle("/static/*", web.Static())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
