package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"airfoil-lab-service/internal/api/handlers"
	"airfoil-lab-service/internal/platform/ratelimit"
	"airfoil-lab-service/internal/ports"
	"airfoil-lab-service/internal/services"
)

// Deps are the ports the HTTP layer drives, plus dependency pings for the
// health endpoint.
type Deps struct {
	Predictor   ports.AeroPredictor
	Model       ports.ChatModel
	Sessions    ports.SessionStore
	Users       ports.UserRepository
	Simulations ports.SimulationRepository
	Challenges  ports.ChallengeRepository
	Chats       ports.ChatRepository

	PingDB func(context.Context) error
	// Nil when Redis is not configured.
	PingRedis func(context.Context) error
	// Nil skips the predictor probe on /health.
	PingPredictor func(context.Context) error
}

type Config struct {
	Env                string
	Secret             string
	TokenExpireMinutes int
	AIProvider         string
	// Predictor name shown by the health endpoint.
	PredictorName string
	CORSOrigins   []string
	// Global per-IP request rate; zero disables.
	RateLimitRPS   float64
	RateLimitBurst int
	// Tutor messages per IP per minute; zero disables.
	ChatPerMinute int
	// Prediction budget per IP per hour; zero disables.
	SimsPerHour int
	// Upload size cap in bytes; zero selects the handler default.
	MaxUploadBytes int64
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps, cfg Config) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not found")
	})

	var quota *ratelimit.PerIP
	if cfg.SimsPerHour > 0 {
		quota = ratelimit.PerHour(cfg.SimsPerHour)
	}

	healthHandler := &handlers.HealthHandler{
		Env:           cfg.Env,
		AIProvider:    cfg.AIProvider,
		Predictor:     cfg.PredictorName,
		PingDB:        deps.PingDB,
		PingRedis:     deps.PingRedis,
		PingPredictor: deps.PingPredictor,
	}
	simHandler := &handlers.SimulationHandler{
		Predictor: deps.Predictor,
		Repo:      deps.Simulations,
		Quota:     quota,
	}
	airfoilHandler := &handlers.AirfoilHandler{MaxUploadBytes: cfg.MaxUploadBytes}
	chatHandler := &handlers.ChatHandler{
		Model:     deps.Model,
		Predictor: deps.Predictor,
		SimRepo:   deps.Simulations,
		ChatRepo:  deps.Chats,
	}
	agentHandler := &handlers.AgentHandler{Store: deps.Sessions, Predictor: deps.Predictor}
	challengeHandler := &handlers.ChallengeHandler{Repo: deps.Challenges}
	authHandler := &handlers.AuthHandler{
		Repo: deps.Users,
		Auth: services.AuthConfig{Secret: cfg.Secret, ExpireMinutes: cfg.TokenExpireMinutes},
	}
	reportHandler := &handlers.ReportHandler{Predictor: deps.Predictor, Quota: quota}

	r.HandleFunc("/", healthHandler.Root)
	r.HandleFunc("/health", healthHandler.Health)

	v1 := r.PathPrefix("/api/v1").Subrouter()

	auth := v1.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register)
	auth.HandleFunc("/login", authHandler.Login)
	auth.Handle("/me", authRequired(cfg.Secret)(http.HandlerFunc(authHandler.Me)))

	sims := v1.PathPrefix("/simulations").Subrouter()
	sims.HandleFunc("/run", simHandler.Run)
	sims.HandleFunc("/polar", simHandler.Polar)
	sims.HandleFunc("/optimize", simHandler.Optimize)
	sims.HandleFunc("/presets", simHandler.Presets)
	sims.HandleFunc("/recent", simHandler.Recent)
	sims.HandleFunc("/health", simHandler.Health)

	airfoils := v1.PathPrefix("/airfoils").Subrouter()
	airfoils.HandleFunc("/generate", airfoilHandler.Generate)
	airfoils.HandleFunc("/upload", airfoilHandler.Upload)
	airfoils.HandleFunc("/plot", airfoilHandler.Plot)

	var chatLimiter *ratelimit.PerIP
	if cfg.ChatPerMinute > 0 {
		chatLimiter = ratelimit.PerMinute(cfg.ChatPerMinute)
	}
	chat := v1.PathPrefix("/chat").Subrouter()
	chat.Handle("/message",
		rateLimitMiddleware(chatLimiter, "chat rate limit exceeded, slow down")(
			http.HandlerFunc(chatHandler.Message)))
	chat.HandleFunc("/guidance", chatHandler.Guidance)
	chat.HandleFunc("/history", chatHandler.History)

	agent := v1.PathPrefix("/agent").Subrouter()
	agent.HandleFunc("/command", agentHandler.Command)
	agent.HandleFunc("/current", agentHandler.Current)
	agent.HandleFunc("/health", agentHandler.Health)

	// Fixed challenge paths go before the slug catch-all.
	challenges := v1.PathPrefix("/challenges").Subrouter()
	challenges.HandleFunc("/list", challengeHandler.List)
	challenges.HandleFunc("/random", challengeHandler.Random)
	challenges.HandleFunc("/submit", challengeHandler.Submit)
	challenges.HandleFunc("", challengeHandler.List)
	challenges.HandleFunc("/{slug}", challengeHandler.Get)

	reportRoutes := v1.PathPrefix("/reports").Subrouter()
	reportRoutes.HandleFunc("/simulation", reportHandler.Simulation)
	reportRoutes.HandleFunc("/polar", reportHandler.Polar)

	var globalLimiter *ratelimit.PerIP
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		globalLimiter = ratelimit.NewPerIP(rate.Limit(cfg.RateLimitRPS), burst)
	}

	var handler http.Handler = r
	handler = authOptional(cfg.Secret)(handler)
	handler = rateLimitMiddleware(globalLimiter, "rate limit exceeded")(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}
