package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Infraestrutura e utilitários
	"gotrace/config"
	"gotrace/internal/pkg/cache"
	"gotrace/internal/pkg/database"
	"gotrace/internal/pkg/gs1"
	"gotrace/internal/pkg/logger"
	"gotrace/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"gotrace/internal/api/code"
	"gotrace/internal/api/router"
	"gotrace/internal/api/sscc"
	"gotrace/internal/repository/packingrepo"
	"gotrace/internal/repository/quotarepo"
	"gotrace/internal/repository/serialrepo"
	"gotrace/internal/repository/ssccrepo"
	"gotrace/internal/repository/usagerepo"
	"gotrace/internal/service/codeservice"
	"gotrace/internal/service/ssccservice"
)

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Inicialização
	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("⚡ Inicializando serviço GoTrace...", map[string]interface{}{
		"env":           cfg.Environment,
		"quota_backend": cfg.QuotaBackend,
	})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis). Sem Redis o serviço sobe: cache e rate limit degradam.
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.CacheTimeout)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn("Redis indisponível na inicialização.", map[string]interface{}{
			"addr":  cfg.RedisAddr,
			"error": err.Error(),
		})
	} else {
		log.Info("Conexão Redis estabelecida.", nil)
	}
	cancelPing()

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios
	rules := packingrepo.NewPackingRuleRepository(db, cacheClient, cfg.DBTimeout, cfg.PackingRuleCacheTTL, log)
	usage := usagerepo.NewUsageLimitRepository(db, cfg.DBTimeout, log)
	serials := serialrepo.NewSerialRepository(db, cfg.DBTimeout, log)
	store := ssccrepo.NewSSCCRepository(db, cfg.DBTimeout, log)

	ledger, err := quotarepo.NewLedger(cfg.QuotaBackend, db, cacheClient, cfg.DBTimeout, log)
	if err != nil {
		log.Fatal("Falha ao configurar o ledger de cotas.", err)
	}
	log.Debug("Repositórios inicializados.", nil)

	// B. Serviços
	ssccSvc := ssccservice.NewService(ssccservice.Dependencies{
		Rules:   rules,
		Usage:   usage,
		Ledger:  ledger,
		Serials: serials,
		Store:   store,
		Logger:  log,
	}, ssccservice.Limits{
		MaxPerEntry:   cfg.MaxCodesPerEntry,
		MaxPerRequest: cfg.MaxCodesPerRequest,
	}, cfg.DBTimeout)

	codeSvc := codeservice.NewService(gs1.Encoder{VerifyChecksum: cfg.VerifyGTINChecksum}, log)

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Serviços inicializados.", nil)

	// C. Handlers
	handlers := router.Handlers{
		Code: code.NewHandler(codeSvc, log),
		SSCC: sscc.NewHandler(ssccSvc, log),
	}

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(handlers, tokenSvc, cacheClient, router.RateLimit{
		MaxRequests: cfg.RateLimitMaxRequests,
		Period:      cfg.RateLimitPeriod,
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // Gerações grandes gravam até 10000 linhas
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoTrace ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
