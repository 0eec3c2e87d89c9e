package serialrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gotrace/internal/errors"
	"gotrace/internal/pkg/gs1"
	"gotrace/internal/pkg/logger"
)

// SerialRepository reserva faixas contíguas de seriais por prefixo de empresa.
// A linha de sscc_sequences guarda o próximo serial livre; o upsert é atômico,
// então reservas concorrentes nunca se sobrepõem.
type SerialRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewSerialRepository cria o gerador de sequências.
func NewSerialRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *SerialRepository {
	return &SerialRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

const allocateSQL = `
	INSERT INTO sscc_sequences (company_prefix, next_serial, updated_at)
	VALUES ($1, $2 + 1, now())
	ON CONFLICT (company_prefix)
	DO UPDATE SET next_serial = sscc_sequences.next_serial + $2, updated_at = now()
	RETURNING next_serial - $2`

// Allocate reserva count seriais e devolve o primeiro da faixa (o primeiro de um prefixo novo é 1).
func (r *SerialRepository) Allocate(ctx context.Context, companyPrefix string, count int64) (int64, error) {
	if count <= 0 {
		return 0, errors.NewValidationError("Quantidade de seriais deve ser positiva.")
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var first int64
	if err := r.DB.QueryRowContext(ctxTimeout, allocateSQL, companyPrefix, count).Scan(&first); err != nil {
		return 0, errors.NewDBError("Falha ao reservar seriais", err)
	}

	if err := CheckRange(companyPrefix, first, count); err != nil {
		r.logger.Warn("Faixa de seriais esgotada para o prefixo.", map[string]interface{}{
			"company_prefix": companyPrefix,
			"first_serial":   first,
			"count":          count,
		})
		return 0, err
	}

	r.logger.Debug("Seriais reservados.", map[string]interface{}{
		"company_prefix": companyPrefix,
		"first_serial":   first,
		"count":          count,
	})
	return first, nil
}

// CheckRange garante que [first, first+count) cabe na largura serial do prefixo.
func CheckRange(companyPrefix string, first, count int64) error {
	max := gs1.MaxSerial(companyPrefix)
	if first < 0 || first+count-1 > max {
		return errors.NewConflictError(fmt.Sprintf(
			"faixa de seriais esgotada para o prefixo %s: último disponível %d, solicitado até %d",
			companyPrefix, max, first+count-1))
	}
	return nil
}
