package quotarepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gotrace/internal/domain"
	"gotrace/internal/errors"
	"gotrace/internal/pkg/logger"
)

// PostgresLedger mantém o saldo de cotas em quota_balances e registra cada
// movimento (consumo, estorno, add-on) em quota_movements na mesma transação.
type PostgresLedger struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPostgresLedger cria o ledger sobre o pool informado.
func NewPostgresLedger(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *PostgresLedger {
	return &PostgresLedger{DB: db, DBTimeout: dbTimeout, logger: log}
}

const (
	// Débito condicionado: nunca deixa o saldo negativo.
	consumeSQL = `
		UPDATE quota_balances
		SET balance = balance - $3, updated_at = now()
		WHERE company_id = $1 AND resource = $2 AND balance >= $3
		RETURNING balance`

	creditSQL = `
		INSERT INTO quota_balances (company_id, resource, balance, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (company_id, resource)
		DO UPDATE SET balance = quota_balances.balance + EXCLUDED.balance, updated_at = now()
		RETURNING balance`

	balanceSQL = `
		SELECT COALESCE((SELECT balance FROM quota_balances WHERE company_id = $1 AND resource = $2), 0)`

	movementSQL = `
		INSERT INTO quota_movements (id, company_id, resource, kind, quantity, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`
)

// Consume debita qty se houver saldo. Saldo insuficiente não é erro: OK=false e o saldo atual.
func (l *PostgresLedger) Consume(ctx context.Context, companyID, resource string, qty int64) (domain.ConsumeResult, error) {
	if qty <= 0 {
		return domain.ConsumeResult{}, errors.NewValidationError("Quantidade a consumir deve ser positiva.")
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, l.DBTimeout)
	defer cancel()

	tx, err := l.DB.BeginTx(ctxTimeout, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return domain.ConsumeResult{}, errors.NewDBError("Falha ao iniciar transação de cota", err)
	}
	defer tx.Rollback()

	var remaining int64
	err = tx.QueryRowContext(ctxTimeout, consumeSQL, companyID, resource, qty).Scan(&remaining)
	if err == sql.ErrNoRows {
		if err := tx.QueryRowContext(ctxTimeout, balanceSQL, companyID, resource).Scan(&remaining); err != nil {
			return domain.ConsumeResult{}, errors.NewDBError("Falha ao ler saldo de cota", err)
		}
		l.logger.Info("Cota insuficiente.", map[string]interface{}{
			"company_id": companyID,
			"resource":   resource,
			"requested":  qty,
			"remaining":  remaining,
		})
		return domain.ConsumeResult{OK: false, Remaining: remaining}, nil
	}
	if err != nil {
		return domain.ConsumeResult{}, errors.NewDBError("Falha ao debitar cota", err)
	}

	if err := insertMovement(ctxTimeout, tx, companyID, resource, domain.MovementConsume, qty, remaining); err != nil {
		return domain.ConsumeResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.ConsumeResult{}, errors.NewDBError("Falha ao confirmar débito de cota", err)
	}

	return domain.ConsumeResult{OK: true, Remaining: remaining}, nil
}

// Refund devolve qty ao saldo.
func (l *PostgresLedger) Refund(ctx context.Context, companyID, resource string, qty int64) error {
	_, err := l.credit(ctx, companyID, resource, domain.MovementRefund, qty)
	return err
}

// AddOn credita um pacote adicional comprado pela empresa e devolve o novo saldo.
func (l *PostgresLedger) AddOn(ctx context.Context, companyID, resource string, qty int64) (int64, error) {
	return l.credit(ctx, companyID, resource, domain.MovementAddOn, qty)
}

func (l *PostgresLedger) credit(ctx context.Context, companyID, resource, kind string, qty int64) (int64, error) {
	if qty <= 0 {
		return 0, errors.NewValidationError("Quantidade a creditar deve ser positiva.")
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, l.DBTimeout)
	defer cancel()

	tx, err := l.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return 0, errors.NewDBError("Falha ao iniciar transação de cota", err)
	}
	defer tx.Rollback()

	var balance int64
	if err := tx.QueryRowContext(ctxTimeout, creditSQL, companyID, resource, qty).Scan(&balance); err != nil {
		return 0, errors.NewDBError(fmt.Sprintf("Falha ao creditar cota (%s)", kind), err)
	}
	if err := insertMovement(ctxTimeout, tx, companyID, resource, kind, qty, balance); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, errors.NewDBError("Falha ao confirmar crédito de cota", err)
	}

	l.logger.Debug("Cota creditada.", map[string]interface{}{
		"company_id": companyID,
		"resource":   resource,
		"kind":       kind,
		"quantity":   qty,
		"balance":    balance,
	})
	return balance, nil
}

func insertMovement(ctx context.Context, tx *sql.Tx, companyID, resource, kind string, qty, balanceAfter int64) error {
	if _, err := tx.ExecContext(ctx, movementSQL, uuid.New(), companyID, resource, kind, qty, balanceAfter); err != nil {
		return errors.NewDBError("Falha ao registrar movimento de cota", err)
	}
	return nil
}
