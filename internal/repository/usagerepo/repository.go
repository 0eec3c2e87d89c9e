package usagerepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gotrace/internal/domain"
	"gotrace/internal/errors"
	"gotrace/internal/pkg/logger"
)

// metricResources liga cada métrica de limite ao recurso do ledger que a mede.
var metricResources = map[string]string{
	domain.UsageMetricSSCC: domain.QuotaResourceSSCC,
}

// UsageLimitRepository verifica limites mensais (usage_limits) contra o consumo
// líquido do mês corrente registrado em quota_movements.
type UsageLimitRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUsageLimitRepository cria o verificador de limites.
func NewUsageLimitRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *UsageLimitRepository {
	return &UsageLimitRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

const (
	limitSQL = `
		SELECT limit_value, limit_type
		FROM usage_limits
		WHERE company_id = $1 AND metric = $2`

	// Consumos menos estornos desde o início do mês (UTC).
	usageSQL = `
		SELECT COALESCE(SUM(CASE kind WHEN 'consume' THEN quantity WHEN 'refund' THEN -quantity ELSE 0 END), 0)
		FROM quota_movements
		WHERE company_id = $1 AND resource = $2
		  AND created_at >= date_trunc('month', now() AT TIME ZONE 'UTC')`
)

// Check informa se requested unidades da métrica cabem no limite da empresa.
// Sem limite configurado, a operação é permitida.
func (r *UsageLimitRepository) Check(ctx context.Context, companyID, metric string, requested int64) (domain.LimitCheck, error) {
	resource, ok := metricResources[metric]
	if !ok {
		return domain.LimitCheck{}, errors.NewValidationError(fmt.Sprintf("Métrica de uso desconhecida: %s", metric))
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	limit := domain.UsageLimit{CompanyID: companyID, Metric: metric}
	err := r.DB.QueryRowContext(ctxTimeout, limitSQL, companyID, metric).Scan(&limit.LimitValue, &limit.LimitType)
	if err == sql.ErrNoRows {
		return domain.LimitCheck{Allowed: true}, nil
	}
	if err != nil {
		return domain.LimitCheck{}, errors.NewDBError("Falha ao ler limite de uso", err)
	}

	var current int64
	if err := r.DB.QueryRowContext(ctxTimeout, usageSQL, companyID, resource).Scan(&current); err != nil {
		return domain.LimitCheck{}, errors.NewDBError("Falha ao calcular uso do mês", err)
	}

	check := Evaluate(limit, current, requested)
	r.logger.Debug("Limite de uso verificado.", map[string]interface{}{
		"company_id": companyID,
		"metric":     metric,
		"current":    current,
		"requested":  requested,
		"limit":      limit.LimitValue,
		"allowed":    check.Allowed,
	})
	return check, nil
}

// Evaluate aplica o limite: acima do teto, hard bloqueia e soft apenas avisa.
func Evaluate(limit domain.UsageLimit, current, requested int64) domain.LimitCheck {
	check := domain.LimitCheck{
		Allowed:      true,
		LimitType:    limit.LimitType,
		CurrentUsage: current,
		LimitValue:   limit.LimitValue,
	}
	if current+requested <= limit.LimitValue {
		return check
	}

	check.Reason = fmt.Sprintf("limite mensal de %s (%d) seria excedido: uso atual %d, solicitados %d",
		limit.Metric, limit.LimitValue, current, requested)
	if limit.LimitType != domain.LimitSoft {
		// Tipo desconhecido é tratado como hard.
		check.LimitType = domain.LimitHard
		check.Allowed = false
	}
	return check
}
