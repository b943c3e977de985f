package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/careerguide/portal/docs"
	"github.com/careerguide/portal/internal/api/handler"
	"github.com/careerguide/portal/internal/api/middleware"
	"github.com/careerguide/portal/internal/core/ports"
)

// Deps carries everything the router wires into handlers. Mongo and Redis
// are optional and only used by the readiness probe.
type Deps struct {
	Log            zerolog.Logger
	DeviceSecret   string
	BackendMode    string
	Devices        ports.DeviceTokenIssuer
	Sessions       ports.SessionOpener
	Directory      ports.DirectoryService
	Questions      ports.QuestionService
	Careers        ports.CareerService
	Inquiries      ports.InquiryService
	Idempotency    ports.IdempotencyGuard
	IdempotencyTTL time.Duration
	Mongo          *mongo.Database
	Redis          *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			d.Log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))

	// --- Handlers ---
	deviceHandler := handler.NewDeviceHandler(d.Devices)
	authHandler := handler.NewAuthHandler(d.Idempotency, d.IdempotencyTTL, d.Log)
	profileHandler := handler.NewProfileHandler()
	collegeHandler := handler.NewCollegeHandler(d.Directory)
	questionHandler := handler.NewQuestionHandler(d.Questions, d.Careers)
	inquiryHandler := handler.NewInquiryHandler(d.Inquiries)

	v1 := e.Group("/v1")
	v1.POST("/devices", deviceHandler.Register)

	// --- Public catalog routes ---
	v1.GET("/colleges", collegeHandler.List)
	v1.GET("/colleges/:id", collegeHandler.Get)
	v1.GET("/questions", questionHandler.Draw)
	v1.POST("/questions/score", questionHandler.Score)
	v1.GET("/career-fields", questionHandler.CareerFields)
	v1.POST("/contact", inquiryHandler.Contact)
	v1.POST("/newsletter", inquiryHandler.Newsletter)

	// --- Device-scoped routes ---
	device := v1.Group("", middleware.Device(d.DeviceSecret), middleware.Sessions(d.Sessions))
	device.POST("/auth/signup", authHandler.SignUp)
	device.POST("/auth/signin", authHandler.SignIn)
	device.POST("/auth/federated", authHandler.Federated)
	device.POST("/auth/signout", authHandler.SignOut)
	device.POST("/auth/reset", authHandler.Reset)
	device.GET("/auth/session", authHandler.Session)
	device.POST("/colleges/:id/apply", collegeHandler.Apply)

	signedIn := device.Group("", middleware.RequireSession())
	signedIn.GET("/me", profileHandler.Me)
	signedIn.PATCH("/me", profileHandler.Update)
	signedIn.GET("/users", profileHandler.Users)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis, d.BackendMode)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
