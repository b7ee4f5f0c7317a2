package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/club-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/club-booking-backend/internal/calendar"
	calendarHttp "github.com/nekogravitycat/club-booking-backend/internal/calendar/http"
	"github.com/nekogravitycat/club-booking-backend/internal/eventtype"
	eventtypeHttp "github.com/nekogravitycat/club-booking-backend/internal/eventtype/http"
	"github.com/nekogravitycat/club-booking-backend/internal/facility"
	facilityHttp "github.com/nekogravitycat/club-booking-backend/internal/facility/http"
	"github.com/nekogravitycat/club-booking-backend/internal/slot"
	slotHttp "github.com/nekogravitycat/club-booking-backend/internal/slot/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction     bool
	ProdOrigins      string
	Logger           *zap.Logger
	Verifier         *auth.Verifier
	PingDB           Pinger
	FacilityService  facility.Service
	SlotService      slot.Service
	EventTypeService eventtype.Service
	CalendarService  calendar.Service
	BookingService   booking.Service
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (request id, logger, recovery, CORS, auth) and registering routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID(), RequestLogger(cfg.Logger), Recovery(cfg.Logger))

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.Verifier)
	// adminMiddleware: Further checks if the authenticated user carries the admin role.
	adminMiddleware := auth.RequireAdmin()

	systemHandler := NewSystemHandler(cfg.PingDB)
	r.GET("/healthz", systemHandler.Health)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	facilityHandler := facilityHttp.NewHandler(cfg.FacilityService)
	slotHandler := slotHttp.NewHandler(cfg.SlotService)
	eventtypeHandler := eventtypeHttp.NewHandler(cfg.EventTypeService)
	calendarHandler := calendarHttp.NewHandler(cfg.CalendarService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.GET("/me", authMiddleware, systemHandler.Me)
		facilityHttp.RegisterRoutes(v1, facilityHandler, authMiddleware, adminMiddleware)
		slotHttp.RegisterRoutes(v1, slotHandler, authMiddleware, adminMiddleware)
		eventtypeHttp.RegisterRoutes(v1, eventtypeHandler, authMiddleware)
		calendarHttp.RegisterRoutes(v1, calendarHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
	}

	return r
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
