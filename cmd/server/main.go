package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/chalet-reservation/internal/booking"
	"github.com/iliyamo/chalet-reservation/internal/cache"
	"github.com/iliyamo/chalet-reservation/internal/config"
	"github.com/iliyamo/chalet-reservation/internal/database"
	"github.com/iliyamo/chalet-reservation/internal/handler"
	"github.com/iliyamo/chalet-reservation/internal/middleware"
	"github.com/iliyamo/chalet-reservation/internal/queue"
	"github.com/iliyamo/chalet-reservation/internal/repository"
	"github.com/iliyamo/chalet-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the occupancy cache, response cache and rate
	// limiter.  A nil client disables all three; the service still
	// works, every read just hits MySQL.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; caching and rate limiting disabled")
	}

	units := repository.NewUnitRepo(db)
	reservations := repository.NewReservationRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	occ := cache.NewOccupancyCache(rdb, config.OccupancyTTL())
	engine := booking.New(
		repository.NewStore(units, reservations),
		booking.OwnerCapability{},
		occ,
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// The response cache is scoped to the public catalogue routes at
	// registration time.  Occupancy and every authenticated route stay
	// out of it: occupancy freshness is owned by the per-unit
	// versioned cache, invalidated synchronously on each write.
	responseCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	public := handler.NewPublicHandler(units, engine, occ)
	customer := handler.NewCustomerHandler(engine, reservations)
	ownerUnits := handler.NewOwnerUnitHandler(units)
	ownerCalendar := handler.NewOwnerCalendarHandler(engine, units, reservations)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, public, responseCache)
	router.RegisterCustomer(e, customer, cfg.JWTSecret)
	router.RegisterOwner(e, ownerUnits, cfg.JWTSecret)
	router.RegisterOwnerCalendar(e, ownerCalendar, cfg.JWTSecret)

	// The event consumer appends every reservation event to
	// logs/reservation.log.  It reconnects on its own; a broken
	// broker never takes the API down.
	go func() {
		if err := queue.StartEventConsumer(); err != nil {
			log.Printf("event consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
