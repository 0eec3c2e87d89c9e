package domain

// LimitType classifica um limite de uso.
type LimitType string

const (
	LimitSoft LimitType = "soft" // Apenas avisa
	LimitHard LimitType = "hard" // Bloqueia a operação
)

// Recursos de cota e de limite usados pelo alocador.
const (
	QuotaResourceSSCC = "sscc"
	UsageMetricSSCC   = "sscc_codes"
	MovementConsume   = "consume"
	MovementRefund    = "refund"
	MovementAddOn     = "add_on"
)

// ConsumeResult é o resultado de um débito no ledger de cotas.
type ConsumeResult struct {
	OK        bool
	Remaining int64
}

// LimitCheck é o resultado da verificação de limite de uso.
type LimitCheck struct {
	Allowed      bool
	Reason       string
	LimitType    LimitType
	CurrentUsage int64
	LimitValue   int64
}

// UsageLimit é a configuração de limite mensal de uma métrica.
type UsageLimit struct {
	CompanyID  string
	Metric     string
	LimitValue int64
	LimitType  LimitType
}

// AddOnRequest é o payload de POST /v1/quota/add-on.
type AddOnRequest struct {
	CompanyID string `json:"company_id" example:"acme"`
	Quantity  int64  `json:"quantity" example:"500"`
}

// AddOnResponse devolve o saldo após o crédito.
type AddOnResponse struct {
	CompanyID string `json:"company_id" example:"acme"`
	Balance   int64  `json:"balance" example:"568"`
}
