package main

import (
	"context"
	"log"
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hasselx/heypage/pkg/cache"
	"github.com/hasselx/heypage/pkg/config"
	"github.com/hasselx/heypage/pkg/http"
	"github.com/hasselx/heypage/pkg/logging"
	"github.com/hasselx/heypage/pkg/middleware"
	"github.com/hasselx/heypage/pkg/service"
	"github.com/hasselx/heypage/pkg/store"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(logging.LogLevel(cfg.LogLevel))

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal(err)
	}
	redisClient := redis.NewClient(opt)
	defer redisClient.Close()

	pageCache := cache.NewPageCache(redisClient)
	profileStore := store.NewPostgresProfileStore(pool)
	linkStore := store.NewPostgresLinkStore(pool)
	profileService := service.NewProfileService(profileStore, linkStore, logger)

	session := middleware.NewSessionMiddleware(middleware.SessionConfig{
		Secret: []byte(cfg.SessionKey),
	})

	handler := http.NewHandler(profileService, linkStore, pageCache, logger)

	r := chi.NewRouter()
	http.SetupAPIRoutes(r, handler, session)

	log.Println("Starting API server on", cfg.APIAddr)
	srv := &stdhttp.Server{
		Addr:              cfg.APIAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
