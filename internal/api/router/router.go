package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gotrace/docs" // Registra a especificação OpenAPI servida em /swagger/
	"gotrace/internal/api/code"
	"gotrace/internal/api/sscc"
	"gotrace/internal/domain"
	"gotrace/internal/pkg/cache"
	"gotrace/internal/pkg/logger"
	"gotrace/internal/pkg/metrics"
	"gotrace/internal/pkg/middleware"
)

// Handlers agrupa os handlers já inicializados por injeção de dependências.
type Handlers struct {
	Code *code.Handler
	SSCC *sscc.Handler
}

// RateLimit configura o limitador global.
type RateLimit struct {
	MaxRequests int
	Period      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, tokenSvc middleware.TokenService, cacheClient cache.Client, limit RateLimit, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// --- 1. Health check, métricas e documentação ---
	mux.HandleFunc("/ping", PingHandler)
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// --- 2. Codec GS1 (sem estado, público) ---
	mux.HandleFunc("/v1/gs1/encode", h.Code.EncodeHandler)
	mux.HandleFunc("/v1/gs1/decode", h.Code.DecodeHandler)
	mux.HandleFunc("/v1/gs1/verify", h.Code.VerifyHandler)
	mux.HandleFunc("/v1/gs1/gtin/validate", h.Code.ValidateGTINHandler)

	// --- 3. Alocador SSCC (JWT + papel) ---
	auth := middleware.NewAuthMiddleware(tokenSvc)
	operators := middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleOperator)
	admins := middleware.PermissionMiddleware(domain.RoleAdmin)

	mux.HandleFunc("/v1/sscc/generate", auth(operators(h.SSCC.GenerateHandler)))
	mux.HandleFunc("/v1/quota/add-on", auth(admins(h.SSCC.AddOnHandler)))

	// --- 4. Middlewares globais ---
	return middleware.RateLimiter(cacheClient, limit.MaxRequests, limit.Period, log)(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
