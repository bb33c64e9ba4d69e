package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"airfoil-lab-service/internal/adapters/cache"
	"airfoil-lab-service/internal/adapters/llm"
	"airfoil-lab-service/internal/adapters/neuralfoil"
	"airfoil-lab-service/internal/adapters/repositories"
	"airfoil-lab-service/internal/adapters/sessions"
	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/api"
	"airfoil-lab-service/internal/config"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/platform/db"
	"airfoil-lab-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, NeuralFoil, LLM) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	env := config.Get("ENV", "development")

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}
	secret := os.Getenv("SECRET_KEY")
	if strings.TrimSpace(secret) == "" {
		log.Fatal("SECRET_KEY is required")
	}

	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		log.Fatal(err)
	}

	// Seed the challenge catalog for local runs. A missing seed file only
	// means an empty catalog, not a broken service.
	seedPath := config.Get("SEED_PATH", "data/seeds/challenges.json")
	if n, err := repositories.SeedChallengesFromJSON(ctx, sqlDB, seedPath); err != nil {
		log.Printf("challenge seeding skipped: %v", err)
	} else {
		log.Printf("challenge catalog ready: %d entries", n)
	}

	// Redis is optional: without it agent sessions live in process memory
	// and predictions go uncached.
	var rdb *redis.Client
	if redisURL := config.Get("REDIS_URL", ""); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatal(err)
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
	}

	var sessionStore ports.SessionStore
	if rdb != nil {
		sessionStore = sessions.NewRedisSessionStore(rdb, 24*time.Hour)
	} else {
		sessionStore = sessions.NewMemorySessionStore()
	}

	var predictor ports.AeroPredictor
	predictorName := "mock"
	if nfURL := config.Get("NEURALFOIL_URL", ""); nfURL != "" {
		var predCache ports.PredictionCache
		if rdb != nil {
			ttl := time.Duration(config.GetInt("PREDICTION_CACHE_TTL_HOURS", 24)) * time.Hour
			predCache = cache.NewRedisPredictionCache(rdb, ttl)
		}
		p, err := neuralfoil.NewHTTPPredictor(nfURL, config.Get("NEURALFOIL_MODEL", "xlarge"), predCache)
		if err != nil {
			log.Fatal(err)
		}
		predictor = p
		predictorName = "neuralfoil"
	} else {
		log.Println("NEURALFOIL_URL not set, using the built-in mock predictor")
		predictor = neuralfoil.NewMockPredictor()
	}

	provider := config.Get("AI_PROVIDER", "anthropic")
	apiKey := ""
	switch provider {
	case "anthropic":
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	chatModel, err := llm.New(provider, apiKey, config.Get("AI_MODEL", ""))
	if err != nil {
		log.Printf("llm client unavailable (%v), tutor falls back to canned replies", err)
		chatModel = llm.NewRuleBased()
		provider = chatModel.Name()
	}

	pingPredictor, err := predictorPing(predictor)
	if err != nil {
		log.Fatal(err)
	}
	var pingRedis func(context.Context) error
	if rdb != nil {
		pingRedis = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	router := api.NewRouter(api.Deps{
		Predictor:     predictor,
		Model:         chatModel,
		Sessions:      sessionStore,
		Users:         repositories.NewPostgresUserRepository(sqlDB),
		Simulations:   repositories.NewPostgresSimulationRepository(sqlDB),
		Challenges:    repositories.NewPostgresChallengeRepository(sqlDB),
		Chats:         repositories.NewPostgresChatRepository(sqlDB),
		PingDB:        sqlDB.PingContext,
		PingRedis:     pingRedis,
		PingPredictor: pingPredictor,
	}, api.Config{
		Env:                env,
		Secret:             secret,
		TokenExpireMinutes: config.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		AIProvider:         provider,
		PredictorName:      predictorName,
		CORSOrigins: config.GetList("CORS_ORIGINS",
			[]string{"http://localhost:3000", "http://localhost:5173"}),
		RateLimitRPS:   config.GetFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: config.GetInt("RATE_LIMIT_BURST", 20),
		ChatPerMinute:  config.GetInt("CHAT_MESSAGES_PER_MINUTE", 10),
		SimsPerHour:    config.GetInt("MAX_SIMULATIONS_PER_HOUR", 20),
		MaxUploadBytes: int64(config.GetInt("MAX_UPLOAD_SIZE_MB", 10)) << 20,
	})

	// Timeouts sized for polar sweeps against a cold prediction cache.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s env=%s predictor=%s", port, env, predictorName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown failed: %v", err)
	}
}

// predictorPing builds the /health probe: one cheap prediction of a
// symmetric test section.
func predictorPing(predictor ports.AeroPredictor) (func(context.Context) error, error) {
	spec, err := airfoil.ParseDesignation("0012")
	if err != nil {
		return nil, err
	}
	coords, err := spec.Generate(0, true)
	if err != nil {
		return nil, err
	}
	cond := domain.FlightCondition{Alpha: 5.0, Reynolds: 1e6}

	return func(ctx context.Context) error {
		_, err := predictor.Predict(ctx, coords, cond)
		return err
	}, nil
}
