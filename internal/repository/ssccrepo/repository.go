package ssccrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gotrace/internal/domain"
	"gotrace/internal/errors"
	"gotrace/internal/pkg/logger"
)

// tables mapeia cada nível para sua tabela.
var tables = map[domain.Level]string{
	domain.LevelBox:    "sscc_boxes",
	domain.LevelCarton: "sscc_cartons",
	domain.LevelPallet: "sscc_pallets",
}

var columns = []string{"id", "company_id", "sku", "batch_no", "expiry_date", "sscc", "serial", "sequence", "created_at"}

// TableFor devolve a tabela do nível.
func TableFor(level domain.Level) (string, error) {
	if !level.Valid() {
		return "", fmt.Errorf("nível de embalagem inválido: %d", int(level))
	}
	return tables[level], nil
}

// SSCCRepository grava lotes de códigos com COPY dentro de uma transação:
// ou o lote inteiro entra, ou nada entra.
type SSCCRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewSSCCRepository cria o repositório de códigos.
func NewSSCCRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *SSCCRepository {
	return &SSCCRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

// Insert persiste os registros de um nível.
func (r *SSCCRepository) Insert(ctx context.Context, level domain.Level, records []domain.SSCCRecord) error {
	if len(records) == 0 {
		return nil
	}
	table, err := TableFor(level)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return errors.NewDBError("Falha ao iniciar transação de SSCC", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctxTimeout, pq.CopyIn(table, columns...))
	if err != nil {
		return errors.NewDBError(fmt.Sprintf("Falha ao preparar COPY em %s", table), err)
	}

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctxTimeout, row(rec)...); err != nil {
			stmt.Close()
			return errors.NewDBError(fmt.Sprintf("Falha ao copiar SSCC %s", rec.Code.SSCC), err)
		}
	}

	// Exec sem argumentos descarrega o buffer do COPY.
	if _, err := stmt.ExecContext(ctxTimeout); err != nil {
		stmt.Close()
		return errors.NewDBError(fmt.Sprintf("Falha ao concluir COPY em %s", table), err)
	}
	if err := stmt.Close(); err != nil {
		return errors.NewDBError("Falha ao fechar COPY", err)
	}
	if err := tx.Commit(); err != nil {
		return errors.NewDBError("Falha ao confirmar gravação de SSCC", err)
	}

	r.logger.Debug("Códigos SSCC gravados.", map[string]interface{}{
		"table": table,
		"count": len(records),
	})
	return nil
}

func row(rec domain.SSCCRecord) []interface{} {
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	var expiry interface{}
	if !rec.ExpiryDate.IsZero() {
		expiry = rec.ExpiryDate
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return []interface{}{
		id,
		rec.CompanyID,
		rec.SKU,
		rec.BatchNo,
		expiry,
		rec.Code.SSCC,
		rec.Code.Serial,
		rec.Code.Sequence,
		createdAt,
	}
}
