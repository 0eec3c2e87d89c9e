package code

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gotrace/internal/domain"
	apperror "gotrace/internal/errors"
	"gotrace/internal/pkg/gs1"
	"gotrace/internal/pkg/logger"
)

// CodeService define o contrato que o Handler espera da camada de Serviço.
type CodeService interface {
	EncodeLabel(ctx domain.Context, req domain.EncodeRequest) (domain.Label, error)
	DecodeScan(ctx domain.Context, raw string) gs1.ParsedFields
	VerifyScan(ctx domain.Context, req domain.VerifyRequest) domain.VerifyResult
	ValidateGTIN(ctx domain.Context, gtin string) (domain.GTINResponse, error)
}

// Handler agrupa os handlers do codec GS1.
type Handler struct {
	Service CodeService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CodeService, log logger.Logger) *Handler {
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
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, reason, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
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

// decode lê o corpo JSON; false indica que a resposta de erro já foi enviada.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return false
	}
	return true
}

// EncodeHandler lida com a requisição POST /v1/gs1/encode.
// @Summary Codifica uma etiqueta GS1
// @Description Monta a carga GS1 (compacta e legível) a partir de GTIN, datas, lote e serial.
// @Tags gs1
// @Accept json
// @Produce json
// @Param label body domain.EncodeRequest true "Dados de identificação"
// @Success 200 {object} domain.Label "Carga codificada"
// @Failure 400 {object} domain.ErrorResponse "Campo ausente ou inválido"
// @Router /gs1/encode [post]
func (h *Handler) EncodeHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.EncodeRequest
	if !h.decode(w, r, &req) {
		return
	}

	label, err := h.Service.EncodeLabel(r.Context(), req)
	h.handleServiceResponse(w, r, label, err, http.StatusOK)
}

// DecodeHandler lida com a requisição POST /v1/gs1/decode.
// Leituras irreconhecíveis respondem 200 com parsed=false.
// @Summary Decodifica uma leitura GS1
// @Description Aceita a forma legível (AI)valor ou a compacta com FNC1.
// @Tags gs1
// @Accept json
// @Produce json
// @Param scan body domain.DecodeRequest true "Conteúdo lido"
// @Success 200 {object} gs1.ParsedFields "Campos extraídos"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Router /gs1/decode [post]
func (h *Handler) DecodeHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.DecodeRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.handleServiceResponse(w, r, h.Service.DecodeScan(r.Context(), req.Raw), nil, http.StatusOK)
}

// VerifyHandler lida com a requisição POST /v1/gs1/verify.
// @Summary Confere uma leitura contra a carga esperada
// @Tags gs1
// @Accept json
// @Produce json
// @Param verify body domain.VerifyRequest true "Carga esperada e lida"
// @Success 200 {object} domain.VerifyResult "Resultado da comparação"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Router /gs1/verify [post]
func (h *Handler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.handleServiceResponse(w, r, h.Service.VerifyScan(r.Context(), req), nil, http.StatusOK)
}

// ValidateGTINHandler lida com a requisição POST /v1/gs1/gtin/validate.
// @Summary Valida e normaliza um GTIN
// @Tags gs1
// @Accept json
// @Produce json
// @Param gtin body domain.GTINRequest true "GTIN de 8 a 14 dígitos"
// @Success 200 {object} domain.GTINResponse "GTIN-14 normalizado"
// @Failure 400 {object} domain.ErrorResponse "Tamanho ou dígito verificador inválido"
// @Router /gs1/gtin/validate [post]
func (h *Handler) ValidateGTINHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.GTINRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.Service.ValidateGTIN(r.Context(), req.GTIN)
	h.handleServiceResponse(w, r, res, err, http.StatusOK)
}
