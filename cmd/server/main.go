package main // Entry point package

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/etkinlikhub/event-platform/internal/config"
	"github.com/etkinlikhub/event-platform/internal/database"
	"github.com/etkinlikhub/event-platform/internal/handler"
	"github.com/etkinlikhub/event-platform/internal/middleware"
	"github.com/etkinlikhub/event-platform/internal/queue"
	"github.com/etkinlikhub/event-platform/internal/repository"
	"github.com/etkinlikhub/event-platform/internal/router"
	"github.com/etkinlikhub/event-platform/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.InitSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema init: %v", err)
	}
	if err := database.SeedAdmin(ctx, db, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("admin seed: %v", err)
	}
	cancel()

	// Redis is optional; a nil client turns the cache and rate limiter
	// into pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)
	events := repository.NewEventRepo(db)
	registrations := repository.NewRegistrationRepo(db)
	contents := repository.NewContentRepo(db)

	authH := handler.NewAuthHandler(cfg, users)
	eventH := handler.NewEventHandler(events)
	regH := handler.NewRegistrationHandler(events, registrations, &service.Publisher{})
	contentH := handler.NewContentHandler(contents)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterEvents(e, eventH, regH, cfg.JWTSecret, cache)
	router.RegisterContents(e, contentH, cfg.JWTSecret, cache)

	// Background consumer mirrors registrations into logs/registrations.log.
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Printf("server stopped")
}
