package ssccservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gotrace/internal/domain"
	apperror "gotrace/internal/errors"
	"gotrace/internal/pkg/gs1"
	"gotrace/internal/pkg/logger"
	"gotrace/internal/pkg/metrics"
)

// PackingRuleSource devolve a regra de embalagem de (empresa, SKU).
type PackingRuleSource interface {
	FindRule(ctx context.Context, companyID, sku string) (domain.PackingRule, error)
}

// UsageLimitChecker verifica limites soft/hard de uso.
type UsageLimitChecker interface {
	Check(ctx context.Context, companyID, metric string, requested int64) (domain.LimitCheck, error)
}

// QuotaLedger debita e estorna o saldo consolidado de cotas.
// Consume deve ser atômico contra consumidores concorrentes.
type QuotaLedger interface {
	Consume(ctx context.Context, companyID, resource string, qty int64) (domain.ConsumeResult, error)
	Refund(ctx context.Context, companyID, resource string, qty int64) error
}

// QuotaTopUp credita pacotes adicionais (add-on).
type QuotaTopUp interface {
	AddOn(ctx context.Context, companyID, resource string, qty int64) (int64, error)
}

// SerialAllocator reserva count seriais contíguos e devolve o primeiro.
type SerialAllocator interface {
	Allocate(ctx context.Context, companyPrefix string, count int64) (int64, error)
}

// CodeStore grava um lote homogêneo de códigos de um nível.
type CodeStore interface {
	Insert(ctx context.Context, level domain.Level, records []domain.SSCCRecord) error
}

// CodeGenerator calcula o SSCC com dígito verificador.
type CodeGenerator interface {
	Generate(extension int, companyPrefix string, serial int64) (string, error)
}

// GS1Generator é o CodeGenerator padrão, sobre gs1.SSCC.
type GS1Generator struct{}

func (GS1Generator) Generate(extension int, companyPrefix string, serial int64) (string, error) {
	return gs1.SSCC(extension, companyPrefix, serial)
}

// Dependencies agrupa os colaboradores do alocador.
type Dependencies struct {
	Rules     PackingRuleSource
	Usage     UsageLimitChecker
	Ledger    QuotaLedger
	Serials   SerialAllocator
	Store     CodeStore
	Generator CodeGenerator // Opcional; padrão GS1Generator
	Logger    logger.Logger
}

// Service é o alocador hierárquico de SSCC.
type Service struct {
	rules         PackingRuleSource
	usage         UsageLimitChecker
	ledger        QuotaLedger
	serials       SerialAllocator
	store         CodeStore
	generator     CodeGenerator
	logger        logger.Logger
	limits        Limits
	refundTimeout time.Duration
}

// NewService cria e retorna uma nova instância do alocador.
func NewService(deps Dependencies, limits Limits, refundTimeout time.Duration) *Service {
	gen := deps.Generator
	if gen == nil {
		gen = GS1Generator{}
	}
	if limits.MaxPerEntry <= 0 {
		limits.MaxPerEntry = DefaultLimits.MaxPerEntry
	}
	if limits.MaxPerRequest <= 0 {
		limits.MaxPerRequest = DefaultLimits.MaxPerRequest
	}
	if refundTimeout <= 0 {
		refundTimeout = 5 * time.Second
	}
	return &Service{
		rules:         deps.Rules,
		usage:         deps.Usage,
		ledger:        deps.Ledger,
		serials:       deps.Serials,
		store:         deps.Store,
		generator:     gen,
		logger:        deps.Logger,
		limits:        limits,
		refundTimeout: refundTimeout,
	}
}

// Generate executa Validating → QuotaChecking → QuotaConsuming → SerialAllocating →
// PerCodeGenerating → Persisting. Depois do consumo, qualquer falha estorna a cota
// integral exatamente uma vez.
func (s *Service) Generate(ctx domain.Context, req domain.GenerationRequest) (result domain.GenerationResult, err error) {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para Generate", nil)
	}

	defer func() {
		if err != nil {
			var appErr apperror.AppError
			reason := apperror.ReasonInternal
			if errors.As(err, &appErr) {
				reason = appErr.Reason()
			}
			metrics.AllocationFailed(reason)
		}
	}()

	// 1. Validating
	plan, expiry, err := s.validate(req)
	if err != nil {
		s.logger.Debug("Requisição de geração rejeitada na validação.", map[string]interface{}{
			"company_id": req.CompanyID,
			"sku":        req.SKU,
			"error":      err.Error(),
		})
		return domain.GenerationResult{}, err
	}

	rule, err := s.packingRule(ctxGo, req.CompanyID, req.SKU)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	total := int64(plan.Total)
	log := map[string]interface{}{
		"company_id":     req.CompanyID,
		"sku":            req.SKU,
		"batch_no":       req.BatchNo,
		"company_prefix": rule.CompanyPrefix,
		"total":          total,
	}
	s.logger.Info("Iniciando geração de SSCC.", log)

	// 2. QuotaChecking
	check, err := s.usage.Check(ctxGo, req.CompanyID, domain.UsageMetricSSCC, total)
	if err != nil {
		s.logger.Error("Falha ao verificar limite de uso.", err)
		return domain.GenerationResult{}, apperror.NewInternalError("Falha ao verificar limite de uso.", err)
	}
	if !check.Allowed {
		s.logger.Info("Geração bloqueada por limite hard.", log)
		return domain.GenerationResult{}, apperror.NewLimitExceededError(check.Reason, check.LimitValue, check.CurrentUsage)
	}
	if check.LimitType == domain.LimitSoft && check.Reason != "" {
		result.Warning = check.Reason
	}

	// 3. QuotaConsuming
	consumed, err := s.ledger.Consume(ctxGo, req.CompanyID, domain.QuotaResourceSSCC, total)
	if err != nil {
		s.logger.Error("Falha ao consumir cota.", err)
		return domain.GenerationResult{}, apperror.NewInternalError("Falha ao consumir cota.", err)
	}
	if !consumed.OK {
		return domain.GenerationResult{}, apperror.NewQuotaExhaustedError(total, consumed.Remaining)
	}

	res := &reservation{
		ledger:    s.ledger,
		companyID: req.CompanyID,
		resource:  domain.QuotaResourceSSCC,
		qty:       total,
		timeout:   s.refundTimeout,
		logger:    s.logger,
	}
	defer func() {
		if r := recover(); r != nil {
			res.release(ctxGo, fmt.Errorf("panic: %v", r))
			panic(r)
		}
		res.release(ctxGo, err)
	}()

	// 4. SerialAllocating
	res.advance(stageSerialAllocating)
	first, err := s.serials.Allocate(ctxGo, rule.CompanyPrefix, total)
	if err != nil {
		return domain.GenerationResult{}, apperror.NewAllocationError("Falha ao reservar faixa de seriais.", err)
	}

	// 5. PerCodeGenerating: box, carton, pallet; cada um 1..N.
	res.advance(stagePerCodeGenerating)
	offset := int64(0)
	for _, level := range plan.Levels {
		codes := make([]domain.GeneratedCode, 0, plan.Counts[level])
		for i := 1; i <= plan.Counts[level]; i++ {
			serial := first + offset
			code, genErr := s.generator.Generate(rule.ExtensionDigit, rule.CompanyPrefix, serial)
			if genErr != nil {
				return domain.GenerationResult{}, apperror.NewAllocationError(
					fmt.Sprintf("Falha ao gerar SSCC do %s %d (serial %d).", level, i, serial), genErr)
			}
			codes = append(codes, domain.GeneratedCode{Level: level, SSCC: code, Serial: serial, Sequence: i})
			offset++
		}
		for _, c := range codes {
			result.Append(c)
		}
	}

	// 6. Persisting: um lote por nível.
	res.advance(stagePersisting)
	now := time.Now().UTC()
	for _, level := range plan.Levels {
		codes := result.Codes(level)
		records := make([]domain.SSCCRecord, 0, len(codes))
		for _, c := range codes {
			records = append(records, domain.SSCCRecord{
				CompanyID:  req.CompanyID,
				SKU:        req.SKU,
				BatchNo:    req.BatchNo,
				ExpiryDate: expiry,
				Code:       c,
				CreatedAt:  now,
			})
		}
		if storeErr := s.store.Insert(ctxGo, level, records); storeErr != nil {
			return domain.GenerationResult{}, apperror.NewStorageError(
				fmt.Sprintf("Falha ao gravar códigos de %s.", level), storeErr)
		}
	}

	// 7. Done
	res.commit()
	for _, level := range plan.Levels {
		metrics.CodesGenerated(level.String(), plan.Counts[level])
	}

	result.TotalCount = plan.Total
	result.FirstSerial = first
	result.CompanyPrefix = rule.CompanyPrefix
	log["first_serial"] = first
	log["remaining_quota"] = consumed.Remaining
	s.logger.Info("Geração de SSCC concluída.", log)
	return result, nil
}

// AddOnQuota credita um pacote adicional de cotas SSCC para a empresa.
func (s *Service) AddOnQuota(ctx domain.Context, companyID string, qty int64) (int64, error) {
	topUp, ok := s.ledger.(QuotaTopUp)
	if !ok {
		return 0, apperror.NewInternalError("Ledger de cotas não aceita add-on.", nil)
	}
	if companyID == "" {
		return 0, apperror.NewValidationError("company_id é obrigatório.")
	}
	if qty <= 0 {
		return 0, apperror.NewValidationError("A quantidade do add-on deve ser positiva.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
	}

	balance, err := topUp.AddOn(ctxGo, companyID, domain.QuotaResourceSSCC, qty)
	if err != nil {
		s.logger.Error("Falha ao creditar add-on de cota.", err)
		return 0, apperror.NewInternalError("Falha ao creditar add-on de cota.", err)
	}
	s.logger.Info("Add-on de cota creditado.", map[string]interface{}{
		"company_id": companyID,
		"quantity":   qty,
		"balance":    balance,
	})
	return balance, nil
}

// validate cobre a etapa Validating: campos obrigatórios, data e plano.
func (s *Service) validate(req domain.GenerationRequest) (Plan, time.Time, error) {
	if req.CompanyID == "" {
		return Plan{}, time.Time{}, apperror.NewValidationError("company_id é obrigatório.")
	}
	if req.SKU == "" {
		return Plan{}, time.Time{}, apperror.NewValidationError("sku é obrigatório.")
	}
	if req.BatchNo == "" {
		return Plan{}, time.Time{}, apperror.NewValidationError("batch_no é obrigatório.")
	}

	var expiry time.Time
	if req.ExpiryDate != "" {
		d, err := gs1.ParseDate(req.ExpiryDate)
		if err != nil {
			return Plan{}, time.Time{}, apperror.NewFieldValidationError(
				fmt.Sprintf("expiry_date inválida: %s", req.ExpiryDate), err)
		}
		expiry = time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	}

	plan, err := BuildPlan(req, s.limits)
	if err != nil {
		return Plan{}, time.Time{}, err
	}
	return plan, expiry, nil
}

// packingRule busca e valida a regra; ausência é erro do chamador.
func (s *Service) packingRule(ctx context.Context, companyID, sku string) (domain.PackingRule, error) {
	rule, err := s.rules.FindRule(ctx, companyID, sku)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.PackingRule{}, apperror.NewValidationError(fmt.Sprintf("Nenhuma regra de embalagem para o SKU %s.", sku))
		}
		s.logger.Error("Falha ao buscar regra de embalagem.", err)
		return domain.PackingRule{}, apperror.NewInternalError("Falha ao buscar regra de embalagem.", err)
	}

	if err := gs1.ValidateCompanyPrefix(rule.CompanyPrefix); err != nil {
		return domain.PackingRule{}, apperror.NewFieldValidationError(
			fmt.Sprintf("Regra de embalagem do SKU %s tem prefixo inválido.", sku), err)
	}
	if rule.ExtensionDigit < 0 || rule.ExtensionDigit > 9 {
		return domain.PackingRule{}, apperror.NewValidationError(
			fmt.Sprintf("Regra de embalagem do SKU %s tem dígito de extensão inválido.", sku))
	}
	return rule, nil
}
