package sscc

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gotrace/internal/domain"
	apperror "gotrace/internal/errors"
	"gotrace/internal/pkg/logger"
	"gotrace/internal/pkg/middleware"
)

// SSCCService define o contrato que o Handler espera da camada de Serviço.
type SSCCService interface {
	Generate(ctx domain.Context, req domain.GenerationRequest) (domain.GenerationResult, error)
	AddOnQuota(ctx domain.Context, companyID string, qty int64) (int64, error)
}

// Handler agrupa os handlers do alocador de SSCC.
type Handler struct {
	Service SSCCService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc SSCCService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)

		h.Logger.Info("Requisição concluída com sucesso", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": successStatus,
		})

		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, reason, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.ErrorWithFields(fmt.Sprintf("Erro de Servidor: %s", category), err, map[string]interface{}{
			"path":   r.URL.Path,
			"reason": reason,
		})
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{
			"path":   r.URL.Path,
			"reason": reason,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Reason:   reason,
		Message:  message,
	})
}

// GenerateHandler lida com a requisição POST /v1/sscc/generate.
// A empresa vem das claims do token, nunca do corpo.
// @Summary Gera SSCCs hierárquicos
// @Description Gera códigos de box, carton e pallet consumindo cota; falhas posteriores ao consumo estornam a cota.
// @Tags sscc
// @Accept json
// @Produce json
// @Param request body domain.GenerationRequest true "Multiplicidades e níveis solicitados"
// @Success 201 {object} domain.GenerationResult "Códigos gerados"
// @Failure 400 {object} domain.ErrorResponse "Entrada inválida ou SKU sem regra de embalagem"
// @Failure 402 {object} domain.ErrorResponse "Cota insuficiente"
// @Failure 403 {object} domain.ErrorResponse "Limite de uso ou teto por requisição excedido"
// @Failure 422 {object} domain.ErrorResponse "Hierarquia box < carton < pallet violada"
// @Failure 500 {object} domain.ErrorResponse "Falha de alocação ou gravação"
// @Security ApiKeyAuth
// @Router /sscc/generate [post]
func (h *Handler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	op, ok := middleware.GetOperatorFromContext(ctx)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."), http.StatusOK)
		return
	}

	var req domain.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}
	req.CompanyID = op.CompanyID

	h.Logger.Info("Solicitação de geração de SSCC", map[string]interface{}{
		"user_id":    op.UserID,
		"company_id": op.CompanyID,
		"sku":        req.SKU,
	})

	result, err := h.Service.Generate(ctx, req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, result, nil, http.StatusCreated)
}

// AddOnHandler lida com a requisição POST /v1/quota/add-on.
// @Summary Credita um pacote adicional de cota SSCC
// @Tags quota
// @Accept json
// @Produce json
// @Param request body domain.AddOnRequest true "Empresa e quantidade"
// @Success 200 {object} domain.AddOnResponse "Saldo após o crédito"
// @Failure 400 {object} domain.ErrorResponse "Entrada inválida"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 403 {object} domain.ErrorResponse "Apenas administradores da própria empresa"
// @Security ApiKeyAuth
// @Router /quota/add-on [post]
func (h *Handler) AddOnHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	var req domain.AddOnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}
	op, ok := middleware.GetOperatorFromContext(r.Context())
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewUnauthorizedError("Operador ausente no contexto."), http.StatusUnauthorized)
		return
	}
	// O crédito fica restrito à empresa do próprio token.
	if req.CompanyID != "" && req.CompanyID != op.CompanyID {
		h.handleServiceResponse(w, r, nil, apperror.NewForbiddenError("company_id difere da empresa do token."), http.StatusForbidden)
		return
	}
	req.CompanyID = op.CompanyID

	balance, err := h.Service.AddOnQuota(r.Context(), req.CompanyID, req.Quantity)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, domain.AddOnResponse{CompanyID: req.CompanyID, Balance: balance}, nil, http.StatusOK)
}
