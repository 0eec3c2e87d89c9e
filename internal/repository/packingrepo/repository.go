package packingrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gotrace/internal/domain"
	"gotrace/internal/errors"
	"gotrace/internal/pkg/cache"
	"gotrace/internal/pkg/logger"
)

// Define a chave de cache para regras de embalagem.
const packingRuleCacheKey = "packing-rule:%s:%s"

// PackingRuleRepository lê regras de embalagem do PostgreSQL com cache-aside no Redis.
type PackingRuleRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewPackingRuleRepository cria e retorna uma nova instância do Repositório.
func NewPackingRuleRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *PackingRuleRepository {
	return &PackingRuleRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// FindRule busca a regra de (empresa, SKU), utilizando a estratégia Cache-Aside.
// Ausência da regra retorna NotFoundError.
func (r *PackingRuleRepository) FindRule(ctx context.Context, companyID, sku string) (domain.PackingRule, error) {
	ctxGo, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(packingRuleCacheKey, companyID, sku)
	var rule domain.PackingRule

	// --- 1. Cache-Aside (READ) ---
	cachedData, err := r.Cache.Get(ctxGo, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &rule) == nil {
			return rule, nil
		}
		r.logger.Warn("Entrada de cache inválida para regra de embalagem.", map[string]interface{}{"key": key})
	} else if err != cache.ErrCacheMiss {
		// Falha real de cache (ex: conexão perdida): seguimos para o DB.
		r.logger.Warn("Falha ao ler regra de embalagem do cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	// --- 2. Busca no Banco de Dados (PostgreSQL) ---
	const ruleSQL = `
		SELECT company_id, sku, company_prefix, extension_digit, updated_at
		FROM packing_rules
		WHERE company_id = $1 AND sku = $2`

	err = r.DB.QueryRowContext(ctxGo, ruleSQL, companyID, sku).Scan(
		&rule.CompanyID,
		&rule.SKU,
		&rule.CompanyPrefix,
		&rule.ExtensionDigit,
		&rule.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.PackingRule{}, errors.NewNotFoundError(fmt.Sprintf("Regra de embalagem para o SKU %s não existe.", sku))
	}
	if err != nil {
		return domain.PackingRule{}, errors.NewDBError("Falha ao buscar regra de embalagem no DB", err)
	}

	// --- 3. Cache-Aside (WRITE) ---
	if ruleJSON, marshalErr := json.Marshal(rule); marshalErr == nil {
		if setErr := r.Cache.Set(ctxGo, key, ruleJSON, r.CacheTTL); setErr != nil {
			r.logger.Warn("Falha ao gravar regra de embalagem no cache.", map[string]interface{}{"key": key, "error": setErr.Error()})
		}
	}

	return rule, nil
}

// Invalidate remove a regra do cache (chamado após alterações administrativas).
func (r *PackingRuleRepository) Invalidate(ctx context.Context, companyID, sku string) error {
	return r.Cache.Delete(ctx, fmt.Sprintf(packingRuleCacheKey, companyID, sku))
}
