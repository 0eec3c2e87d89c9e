package codeservice

import (
	"errors"
	"fmt"
	"strings"

	"gotrace/internal/domain"
	apperror "gotrace/internal/errors"
	"gotrace/internal/pkg/gs1"
	"gotrace/internal/pkg/logger"
	"gotrace/internal/pkg/metrics"
)

// Service expõe o codec GS1 (codificação, leitura e verificação de etiquetas).
type Service struct {
	encoder gs1.Encoder
	logger  logger.Logger
}

// NewService cria e retorna uma nova instância de Service.
func NewService(encoder gs1.Encoder, log logger.Logger) *Service {
	return &Service{
		encoder: encoder,
		logger:  log,
	}
}

// EncodeLabel monta a carga GS1 nas formas compacta e legível.
func (s *Service) EncodeLabel(ctx domain.Context, req domain.EncodeRequest) (domain.Label, error) {
	// 1. Datas em texto
	expiry, err := parseOptionalDate("expiry_date", req.ExpiryDate)
	if err != nil {
		metrics.Encoded("expiry_date")
		return domain.Label{}, err
	}
	mfg, err := parseOptionalDate("mfg_date", req.MfgDate)
	if err != nil {
		metrics.Encoded("mfg_date")
		return domain.Label{}, err
	}

	fields := gs1.Fields{
		GTIN:       req.GTIN,
		ExpiryDate: expiry,
		MfgDate:    mfg,
		Batch:      req.BatchNo,
		Serial:     req.SerialNo,
		MRP:        req.MRP,
		SKU:        req.SKU,
		Company:    req.Company,
	}

	// 2. Validação e montagem das duas formas
	payload, err := s.encoder.Encode(fields)
	if err != nil {
		metrics.Encoded(failedField(err))
		return domain.Label{}, s.codecError(err)
	}
	human, err := s.encoder.EncodeHumanReadable(fields)
	if err != nil {
		return domain.Label{}, s.codecError(err)
	}

	gtin, _ := gs1.NormalizeGTIN(req.GTIN)

	metrics.Encoded("ok")
	s.logger.Debug("Carga GS1 codificada.", map[string]interface{}{
		"gtin":     gtin,
		"batch_no": req.BatchNo,
	})
	return domain.Label{Payload: payload, HumanReadable: human, GTIN: gtin}, nil
}

// DecodeScan interpreta uma leitura em qualquer formato. Nunca falha: leituras
// sem nenhum campo reconhecido são registradas com o conteúdo original.
func (s *Service) DecodeScan(ctx domain.Context, raw string) gs1.ParsedFields {
	parsed := gs1.Decode(raw)
	metrics.Decoded(parsed.Format, parsed.Parsed)

	if !parsed.Parsed {
		s.logger.Warn("Leitura GS1 não reconhecida.", map[string]interface{}{
			"raw":    raw,
			"format": parsed.Format,
		})
	}
	return parsed
}

// VerifyScan compara a leitura com a carga esperada, independente do formato.
func (s *Service) VerifyScan(ctx domain.Context, req domain.VerifyRequest) domain.VerifyResult {
	expected := gs1.Normalize(req.Expected)
	scanned := gs1.Normalize(req.Scanned)

	result := domain.VerifyResult{
		Match:      expected != "" && expected == scanned,
		Expected:   expected,
		Scanned:    scanned,
		ScanParsed: s.DecodeScan(ctx, req.Scanned).Parsed,
	}
	if !result.Match {
		s.logger.Info("Leitura divergente da carga esperada.", map[string]interface{}{
			"expected": expected,
			"scanned":  scanned,
		})
	}
	return result
}

// ValidateGTIN devolve o GTIN-14 normalizado com dígito verificador conferido.
func (s *Service) ValidateGTIN(ctx domain.Context, input string) (domain.GTINResponse, error) {
	gtin, err := gs1.ValidateGTIN(input)
	if err != nil {
		return domain.GTINResponse{}, s.codecError(err)
	}
	return domain.GTINResponse{GTIN: gtin, Valid: true}, nil
}

// codecError traduz erros do codec para ValidationError nomeando o campo.
func (s *Service) codecError(err error) error {
	var fe *gs1.FieldError
	if !errors.As(err, &fe) {
		s.logger.Error("Erro inesperado no codec GS1.", err)
		return apperror.NewInternalError("Falha ao processar carga GS1.", err)
	}
	return apperror.NewFieldValidationError(fmt.Sprintf("Campo %s inválido: %v.", fe.Field, fe.Err), err)
}

// failedField é o rótulo de métrica de uma codificação rejeitada.
func failedField(err error) string {
	var fe *gs1.FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return "internal"
}

// parseOptionalDate converte a data; vazio fica como data zero e o codificador
// reporta o campo ausente.
func parseOptionalDate(field, value string) (gs1.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return gs1.Date{}, nil
	}
	d, err := gs1.ParseDate(value)
	if err != nil {
		return gs1.Date{}, apperror.NewFieldValidationError(fmt.Sprintf("Campo %s inválido: %s.", field, value), err)
	}
	return d, nil
}
