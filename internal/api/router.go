package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/auth"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/availability"
	availHttp "github.com/MiladFarazian/study-buddy-usc-sub004/internal/availability/http"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/payment"
	paymentHttp "github.com/MiladFarazian/study-buddy-usc-sub004/internal/payment/http"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/session"
	sessionHttp "github.com/MiladFarazian/study-buddy-usc-sub004/internal/session/http"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/tutor"
	tutorHttp "github.com/MiladFarazian/study-buddy-usc-sub004/internal/tutor/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	TutorService        tutor.Service
	AvailabilityService availability.Service
	SessionService      session.Service
	PaymentService      payment.Service
	JWTManager          *auth.JWTManager
	Logger              *zap.Logger

	// ClientRateLimitRPM caps payment-route requests per client fingerprint.
	ClientRateLimitRPM int
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth, client rate limiting) and
// registers routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// clientRateLimit: best-effort per-client budget on payment routes.
	clientRateLimit := RateLimitByClient(cfg.ClientRateLimitRPM, cfg.Logger)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	tutorHandler := tutorHttp.NewHandler(cfg.TutorService)
	availHandler := availHttp.NewHandler(cfg.AvailabilityService)
	sessionHandler := sessionHttp.NewHandler(cfg.SessionService)
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		tutorHttp.RegisterRoutes(v1, tutorHandler, authMiddleware)
		availHttp.RegisterRoutes(v1, availHandler, authMiddleware)
		sessionHttp.RegisterRoutes(v1, sessionHandler, authMiddleware)
		paymentHttp.RegisterRoutes(v1, paymentHandler, authMiddleware, clientRateLimit)
	}

	return r
}
