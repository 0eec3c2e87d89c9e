package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config armazena todas as configurações do aplicativo GoTrace.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration // Limite de cada chamada a colaborador

	// Cache (Redis)
	RedisAddr           string
	CacheTimeout        time.Duration
	PackingRuleCacheTTL time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Alocador SSCC
	QuotaBackend       string // "postgres" ou "redis"
	MaxCodesPerEntry   int
	MaxCodesPerRequest int
	VerifyGTINChecksum bool
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// O .env (quando existir) já foi carregado pelo godotenv em cmd/*.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Banco de Dados (PostgreSQL)
		// mustGetEnv garante que a aplicação não inicie se não houver credenciais de DB
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second, // 5s padrão

		// 3. Cache (Redis)
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout:        getDurationEnv("CACHE_TIMEOUT_SEC", 2) * time.Second,
		PackingRuleCacheTTL: getDurationEnv("PACKING_RULE_CACHE_TTL_MIN", 5) * time.Minute,

		// 4. Segurança (JWT)
		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute, // 60 min padrão

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute, // 1 min padrão

		// 6. Alocador SSCC
		QuotaBackend:       strings.ToLower(getEnv("QUOTA_BACKEND", "postgres")),
		MaxCodesPerEntry:   getIntEnv("MAX_CODES_PER_ENTRY", 1000),
		MaxCodesPerRequest: getIntEnv("MAX_CODES_PER_REQUEST", 10000),
		VerifyGTINChecksum: getBoolEnv("GS1_VERIFY_GTIN_CHECKSUM", false),
	}

	return cfg
}

// TokenConfig é o subconjunto usado por cmd/token, que não precisa de banco.
type TokenConfig struct {
	JWTSecretKey string
	TokenExpiry  time.Duration
}

// LoadTokenConfig carrega apenas as chaves de JWT.
func LoadTokenConfig() *TokenConfig {
	return &TokenConfig{
		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,
	}
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getBoolEnv lê uma variável booleana (true/false, 1/0).
func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é booleano. Usando padrão (%t).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// LoadDatabaseURL é usado por cmd/migrate, que não precisa das demais chaves.
func LoadDatabaseURL() string {
	return mustGetEnv("DATABASE_URL")
}
