package errors

import (
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoTrace.
// Ela permite que o código externo (Handler) acesse a Categoria, o código de
// motivo (reason) e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "QUOTA_EXHAUSTED")
	Reason() string   // Código estável para o cliente (e.g., "invalid_input", "quota_exceeded")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// Códigos de motivo expostos ao cliente.
const (
	ReasonInvalidInput       = "invalid_input"
	ReasonHierarchyViolation = "hierarchy_violation"
	ReasonLimitExceeded      = "limit_exceeded"
	ReasonQuotaExceeded      = "quota_exceeded"
	ReasonAllocationFailed   = "allocation_failed"
	ReasonStorageFailed      = "storage_failed"
	ReasonNotFound           = "not_found"
	ReasonConflict           = "conflict"
	ReasonUnauthorized       = "unauthorized"
	ReasonInternal           = "internal_error"
)

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
	Err error // Erro do codec, quando houver (e.g., gs1.FieldError)
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) Reason() string   { return ReasonInvalidInput }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return e.Err }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NewFieldValidationError cria um erro de validação preservando a causa do codec.
func NewFieldValidationError(msg string, err error) AppError {
	return &ValidationError{Msg: msg, Err: err}
}

// HierarchyViolationError indica que a ordem box < carton < pallet foi quebrada.
type HierarchyViolationError struct {
	Rule string
}

func (e *HierarchyViolationError) Error() string {
	return fmt.Sprintf("Violação de hierarquia: %s", e.Rule)
}
func (e *HierarchyViolationError) Category() string { return "HIERARCHY_VIOLATION" }
func (e *HierarchyViolationError) Reason() string   { return ReasonHierarchyViolation }
func (e *HierarchyViolationError) HTTPStatus() int  { return http.StatusUnprocessableEntity } // 422
func (e *HierarchyViolationError) Unwrap() error    { return nil }

// NewHierarchyViolationError cria um erro nomeando a regra violada.
func NewHierarchyViolationError(rule string) AppError {
	return &HierarchyViolationError{Rule: rule}
}

// LimitExceededError representa tetos de tamanho de requisição ou de uso.
type LimitExceededError struct {
	Msg     string
	Limit   int64
	Current int64
}

func (e *LimitExceededError) Error() string    { return fmt.Sprintf("Limite excedido: %s", e.Msg) }
func (e *LimitExceededError) Category() string { return "LIMIT_EXCEEDED" }
func (e *LimitExceededError) Reason() string   { return ReasonLimitExceeded }
func (e *LimitExceededError) HTTPStatus() int  { return http.StatusForbidden } // 403
func (e *LimitExceededError) Unwrap() error    { return nil }

// NewLimitExceededError cria um erro de teto excedido.
func NewLimitExceededError(msg string, limit, current int64) AppError {
	return &LimitExceededError{Msg: msg, Limit: limit, Current: current}
}

// QuotaExhaustedError indica saldo insuficiente no ledger de cotas.
type QuotaExhaustedError struct {
	Requested int64
	Remaining int64
}

func (e *QuotaExhaustedError) Error() string {
	return fmt.Sprintf("Cota insuficiente: solicitados %d, disponíveis %d. Adquira um pacote adicional (add-on) para continuar.",
		e.Requested, e.Remaining)
}
func (e *QuotaExhaustedError) Category() string { return "QUOTA_EXHAUSTED" }
func (e *QuotaExhaustedError) Reason() string   { return ReasonQuotaExceeded }
func (e *QuotaExhaustedError) HTTPStatus() int  { return http.StatusPaymentRequired } // 402
func (e *QuotaExhaustedError) Unwrap() error    { return nil }

// NewQuotaExhaustedError cria um erro de cota insuficiente.
func NewQuotaExhaustedError(requested, remaining int64) AppError {
	return &QuotaExhaustedError{Requested: requested, Remaining: remaining}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) Reason() string   { return ReasonNotFound }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito na regra de negócio (e.g., recurso duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) Reason() string   { return ReasonConflict }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// UnauthorizedError representa falhas de autenticação/autorização.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) Reason() string   { return ReasonUnauthorized }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um erro de autorização.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError indica um usuário autenticado agindo fora do seu escopo.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) Reason() string   { return ReasonUnauthorized }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden } // 403
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um erro de permissão.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) Reason() string   { return ReasonInternal }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// AllocationError representa falha na reserva de seriais ou na geração de um
// código depois que a cota já foi consumida. Sempre acompanhada de estorno.
type AllocationError struct {
	Msg string
	Err error
}

func (e *AllocationError) Error() string    { return fmt.Sprintf("Falha de alocação: %s", e.Msg) }
func (e *AllocationError) Category() string { return "ALLOCATION_FAILURE" }
func (e *AllocationError) Reason() string   { return ReasonAllocationFailed }
func (e *AllocationError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *AllocationError) Unwrap() error    { return e.Err }

// NewAllocationError cria um erro de alocação.
func NewAllocationError(msg string, err error) AppError {
	return &AllocationError{Msg: msg, Err: err}
}

// StorageError representa falha de persistência depois do consumo de cota.
type StorageError struct {
	Msg string
	Err error
}

func (e *StorageError) Error() string    { return fmt.Sprintf("Falha de armazenamento: %s", e.Msg) }
func (e *StorageError) Category() string { return "STORAGE_FAILURE" }
func (e *StorageError) Reason() string   { return ReasonStorageFailed }
func (e *StorageError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *StorageError) Unwrap() error    { return e.Err }

// NewStorageError cria um erro de armazenamento.
func NewStorageError(msg string, err error) AppError {
	return &StorageError{Msg: msg, Err: err}
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, categoria,
// motivo e mensagem do corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string, string) {
	if appErr, ok := err.(AppError); ok {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Reason(), appErr.Error()
	}

	// Erro não tipado (e.g., erro simples de pacote Go que não implementa AppError)
	// Tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", ReasonInternal, "Ocorreu um erro inesperado."
}
