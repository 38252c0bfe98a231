package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/api"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/auth"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/availability"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/payment"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/session"
	"github.com/MiladFarazian/study-buddy-usc-sub004/internal/tutor"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       *zap.Logger
	JWTSecret    string
	JWTTTL       time.Duration

	PaymentGuard       payment.GuardConfig
	IntentCreator      payment.IntentCreator
	ClientRateLimitRPM int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Tutor Module
	tutorRepo := tutor.NewPgxRepository(cfg.DBPool)
	tutorService := tutor.NewService(tutorRepo)

	// Session Module (repository first: availability reads booked sessions
	// through it, and the session service validates against templates)
	sessionRepo := session.NewPgxRepository(cfg.DBPool)

	// Availability Module
	availRepo := availability.NewPgxRepository(cfg.DBPool)
	availService := availability.NewService(availRepo, session.NewIntervalSource(sessionRepo))

	sessionService := session.NewService(sessionRepo, availRepo, tutorService)

	// Payment Module. The guard is created once per process and injected;
	// its state is process-local by design.
	guard := payment.NewGuard(cfg.PaymentGuard)
	intentCreator := cfg.IntentCreator
	if intentCreator == nil {
		intentCreator = payment.NewStripeCreator()
	}
	paymentService := payment.NewService(guard, intentCreator, sessionService, tutorService, cfg.Logger)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		TutorService:        tutorService,
		AvailabilityService: availService,
		SessionService:      sessionService,
		PaymentService:      paymentService,
		JWTManager:          jwtManager,
		Logger:              cfg.Logger,
		ClientRateLimitRPM:  cfg.ClientRateLimitRPM,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
