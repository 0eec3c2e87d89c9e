package quotarepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gotrace/internal/domain"
	"gotrace/internal/pkg/logger"
)

// Ledger é o contrato comum aos dois backends.
type Ledger interface {
	Consume(ctx context.Context, companyID, resource string, qty int64) (domain.ConsumeResult, error)
	Refund(ctx context.Context, companyID, resource string, qty int64) error
	AddOn(ctx context.Context, companyID, resource string, qty int64) (int64, error)
}

// Backends aceitos em QUOTA_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// NewLedger escolhe a implementação pelo nome do backend.
func NewLedger(backend string, db *sql.DB, evaler RedisEvaler, timeout time.Duration, log logger.Logger) (Ledger, error) {
	switch backend {
	case "", BackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("quota backend %q requer conexão com o banco", BackendPostgres)
		}
		return NewPostgresLedger(db, timeout, log), nil
	case BackendRedis:
		if evaler == nil {
			return nil, fmt.Errorf("quota backend %q requer cliente Redis", BackendRedis)
		}
		return NewRedisLedger(evaler, timeout, log), nil
	default:
		return nil, fmt.Errorf("quota backend desconhecido: %s", backend)
	}
}
