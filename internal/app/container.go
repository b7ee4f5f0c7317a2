package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/club-booking-backend/internal/api"
	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	"github.com/nekogravitycat/club-booking-backend/internal/cache"
	"github.com/nekogravitycat/club-booking-backend/internal/calendar"
	"github.com/nekogravitycat/club-booking-backend/internal/db"
	"github.com/nekogravitycat/club-booking-backend/internal/eventtype"
	"github.com/nekogravitycat/club-booking-backend/internal/facility"
	"github.com/nekogravitycat/club-booking-backend/internal/slot"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction     bool
	ProdOrigins      string
	DBPool           *pgxpool.Pool
	Cache            cache.Store
	ResourceCacheTTL time.Duration
	JWTSecret        string
	JWTIssuer        string
	JWTLeeway        time.Duration
	Logger           *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	Verifier       *auth.Verifier
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	verifier := auth.NewVerifier(cfg.JWTSecret, auth.VerifierOptions{Issuer: cfg.JWTIssuer, Leeway: cfg.JWTLeeway})

	// Facility Module
	facRepo := facility.NewPgxRepository(cfg.DBPool)
	facService := facility.NewService(facRepo, cfg.Cache, cfg.ResourceCacheTTL, cfg.Logger.Named("facility"))

	// Slot Module
	slotRepo := slot.NewPgxRepository(cfg.DBPool)
	slotService := slot.NewService(slotRepo, facService, cfg.Logger.Named("slot"))

	// EventType Module
	etRepo := eventtype.NewPgxRepository(cfg.DBPool)
	etService := eventtype.NewService(etRepo)

	// Calendar Module
	calRepo := calendar.NewPgxRepository(cfg.DBPool)
	calService := calendar.NewService(calRepo, cfg.Logger.Named("calendar"))

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, facService, slotRepo, etService, cfg.Logger.Named("booking"))

	router := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		Logger:       cfg.Logger.Named("http"),
		Verifier:     verifier,
		PingDB: func(ctx context.Context) error {
			return db.Ping(ctx, cfg.DBPool, 2*time.Second)
		},
		FacilityService:  facService,
		SlotService:      slotService,
		EventTypeService: etService,
		CalendarService:  calService,
		BookingService:   bookingService,
	})

	return &Container{
		Router:         router,
		Verifier:       verifier,
		BookingService: bookingService,
	}
}
