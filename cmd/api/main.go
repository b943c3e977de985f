// Package main is the entrypoint for the career guidance portal API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/careerguide/portal/internal/api"
	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
	"github.com/careerguide/portal/internal/core/service"
	"github.com/careerguide/portal/internal/infrastructure/db/mongo"
	"github.com/careerguide/portal/internal/infrastructure/db/redis"
	"github.com/careerguide/portal/internal/infrastructure/memory"
	"github.com/careerguide/portal/internal/infrastructure/queue"
	"github.com/careerguide/portal/internal/pkg/config"
	"github.com/careerguide/portal/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
	devSecret       = "dev-only-device-secret"
)

// @title       Career Guidance Portal API
// @version     1.0
// @description Accounts, college directory, aptitude questions and inquiries.
// @BasePath    /
// @securityDefinitions.apikey DeviceToken
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "career-guidance-portal",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode, err := domain.ParseBackendMode(cfg.BackendMode)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid backend mode")
	}

	secret := cfg.JWTSecret
	if secret == "" {
		log.Warn().Msg("JWT_SECRET not set, using development secret")
		secret = devSecret
	}

	// --- Stores ---
	var db *gomongo.Database
	if cfg.Mongo.URI != "" {
		client, database, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.ConnectTimeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		db = database
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")
	}

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer func() { _ = rdb.Close() }()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
	}

	var (
		kv       ports.KVStore
		guard    ports.IdempotencyGuard
		attempts ports.AttemptLimiter
	)
	if rdb != nil {
		kv = redis.NewKVStore(rdb)
		guard = redis.NewIdempotencyGuard(rdb)
		attempts = redis.NewAttemptLimiter(rdb, cfg.SignIn.MaxAttempts, cfg.SignIn.Window)
	} else {
		kv = memory.NewKVStore()
		guard = memory.NewIdempotencyGuard()
		attempts = memory.NewAttemptLimiter(cfg.SignIn.MaxAttempts, cfg.SignIn.Window)
	}

	// --- Identity ---
	regCfg := service.RegistryConfig{
		Mode:       mode,
		KV:         kv,
		Hasher:     service.DefaultArgon2Hasher(),
		Production: cfg.IsProduction(),
		IdleTTL:    cfg.SessionIdleTTL,
	}
	if db != nil {
		var verifier ports.FederatedTokenVerifier
		if cfg.Federated.Key != "" {
			v, err := service.NewFederatedTokenVerifier(domain.ProviderGoogle, cfg.Federated.Issuer, cfg.Federated.Audience, cfg.Federated.Key)
			if err != nil {
				log.Fatal().Err(err).Msg("invalid federated sign-in settings")
			}
			verifier = v
		} else {
			log.Info().Msg("federated sign-in disabled, FEDERATED_KEY not set")
		}
		identity := mongo.NewIdentityService(db, attempts, verifier, logger.Component("identity"))
		if err := identity.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create identity indexes")
		}
		regCfg.Identity = identity
		regCfg.Profiles = mongo.NewProfileRepository(db)
	}

	registry, err := service.NewSessionRegistry(regCfg, logger.Component("sessions"))
	if err != nil {
		log.Fatal().Err(err).Str("mode", string(mode)).Msg("failed to build session registry")
	}
	go registry.Run(ctx, sweepInterval)

	// --- Catalog and inquiries ---
	var (
		colleges  ports.CollegeRepository
		questions ports.QuestionRepository
		careers   ports.CareerFieldRepository
		inquiries ports.InquiryRepository = memory.NewInquiryRepository()
	)
	if db != nil {
		colleges = mongo.NewCollegeRepository(db)
		questions = mongo.NewQuestionRepository(db)
		careers = mongo.NewCareerFieldRepository(db)
		inquiries = mongo.NewInquiryRepository(db)
	}

	dispatcher := queue.NewDispatcher(cfg.Inquiry.Workers, service.NewInquiryRecorder(inquiries), logger.Component("inquiries"))
	dispatcher.Start(ctx)

	directory := service.NewDirectory(colleges, cfg.Directory.CacheTTL, logger.Component("directory"))

	e := api.NewRouter(api.Deps{
		Log:            log,
		DeviceSecret:   secret,
		BackendMode:    string(mode),
		Devices:        service.NewDeviceTokenService(secret, cfg.DeviceTokenTTL),
		Sessions:       registry,
		Directory:      service.NewCollegeService(directory, cfg.Directory.PageSize),
		Questions:      service.NewQuestionBank(questions, logger.Component("aptitude")),
		Careers:        service.NewCareerCatalog(careers, logger.Component("careers")),
		Inquiries:      service.NewInquiryIntake(dispatcher, guard, logger.Component("inquiries")),
		Idempotency:    guard,
		IdempotencyTTL: cfg.IdempotencyTTL,
		Mongo:          db,
		Redis:          rdb,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("mode", string(mode)).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	shutdown(e.Shutdown, log)
}

func shutdown(fn func(context.Context) error, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Msg("shutting down")
	if err := fn(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
