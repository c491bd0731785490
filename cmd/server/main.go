package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/harshithcodes/assignment-scheduler/internal/auth"
	"github.com/harshithcodes/assignment-scheduler/internal/booking"
	"github.com/harshithcodes/assignment-scheduler/internal/config"
	"github.com/harshithcodes/assignment-scheduler/internal/database"
	"github.com/harshithcodes/assignment-scheduler/internal/handler"
	"github.com/harshithcodes/assignment-scheduler/internal/meeting"
	"github.com/harshithcodes/assignment-scheduler/internal/queue"
	"github.com/harshithcodes/assignment-scheduler/internal/repository"
	"github.com/harshithcodes/assignment-scheduler/internal/router"
	"github.com/harshithcodes/assignment-scheduler/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	slots := repository.NewSlotRepo(db)
	tokens := repository.NewTokenRepo(db)

	roleService := service.NewRoleService(db, roles, users)
	provisioner := meeting.NewCalendarClient(cfg.MeetAPIURL, cfg.MeetAPIKey, cfg.MeetTimeout)
	engine := booking.NewEngine(slots, users, provisioner, cfg.MeetFallbackHost, cfg.MeetTimeout)
	verifier := auth.NewTokeninfoVerifier(cfg.OAuthIssuerURL)

	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, verifier, users, roleService, tokens),
		Admin:   handler.NewAdminHandler(users, roleService),
		Faculty: handler.NewFacultyHandler(slots),
		Scholar: handler.NewScholarHandler(engine, users),
		Browse:  handler.NewBrowseHandler(users, slots),
	}

	e := echo.New()
	router.Register(e, handlers, cfg, rdb)

	// Background consumer appends booking events to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
