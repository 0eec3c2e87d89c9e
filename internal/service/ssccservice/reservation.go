package ssccservice

import (
	"context"
	"time"

	"gotrace/internal/pkg/logger"
	"gotrace/internal/pkg/metrics"
)

// Etapas posteriores ao consumo de cota, usadas em logs e métricas de estorno.
const (
	stageSerialAllocating  = "serial_allocating"
	stagePerCodeGenerating = "per_code_generating"
	stagePersisting        = "persisting"
)

// reservation representa cota já debitada. Enquanto não for confirmada com
// commit, release devolve a quantidade integral ao ledger, uma única vez.
type reservation struct {
	ledger    QuotaLedger
	companyID string
	resource  string
	qty       int64
	timeout   time.Duration
	logger    logger.Logger

	stage string
	done  bool
}

// advance registra a etapa corrente.
func (r *reservation) advance(stage string) {
	r.stage = stage
}

// commit confirma o consumo; release passa a ser no-op.
func (r *reservation) commit() {
	r.done = true
}

// release estorna a cota se a reserva não foi confirmada. cause é o erro que
// encerrou o fluxo; uma falha de estorno é registrada e nunca substitui cause.
func (r *reservation) release(ctx context.Context, cause error) {
	if r.done {
		return
	}
	r.done = true

	// O estorno roda mesmo se a requisição já foi cancelada.
	refundCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	fields := map[string]interface{}{
		"company_id": r.companyID,
		"resource":   r.resource,
		"quantity":   r.qty,
		"stage":      r.stage,
	}
	if cause != nil {
		fields["cause"] = cause.Error()
	}

	if err := r.ledger.Refund(refundCtx, r.companyID, r.resource, r.qty); err != nil {
		metrics.QuotaRefundFailed()
		r.logger.ErrorWithFields("Falha ao estornar cota; saldo precisa de conciliação.", err, fields)
		return
	}

	metrics.QuotaRefunded(r.stage)
	r.logger.Warn("Cota estornada após falha.", fields)
}
