package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"402"`
	Category string `json:"category" example:"QUOTA_EXHAUSTED"`
	Reason   string `json:"reason" example:"quota_exceeded"`
	Message  string `json:"message" example:"Cota insuficiente: solicitados 32, disponíveis 10."`
}

// Context é uma interface que encapsula o Go context.Context.
// É usado para propagar o timeout e sinais de cancelamento pelas camadas.
// Isso evita a dependência direta do pacote "context".
type Context interface{}
