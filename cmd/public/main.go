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
	httphandler "github.com/hasselx/heypage/pkg/http"
	"github.com/hasselx/heypage/pkg/logging"
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

	ttl, err := time.ParseDuration(cfg.PageCacheTTL)
	if err != nil {
		ttl = 5 * time.Minute
	}

	pageCache := cache.NewPageCache(redisClient)
	profileStore := store.NewPostgresProfileStore(pool)
	linkStore := store.NewPostgresLinkStore(pool)
	profileService := service.NewProfileService(profileStore, linkStore, logger)

	handler := httphandler.NewPublicHandler(profileService, pageCache, ttl, logger)

	r := chi.NewRouter()
	httphandler.SetupPublicRoutes(r, handler)

	log.Println("Starting public server on", cfg.PublicAddr)
	srv := &stdhttp.Server{
		Addr:              cfg.PublicAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
