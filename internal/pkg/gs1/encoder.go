package gs1

import (
	"strings"
)

// Fields são os dados de identificação de uma unidade comercial.
// GTIN, datas, lote e serial são obrigatórios; MRP, SKU e empresa são opcionais.
type Fields struct {
	GTIN       string
	ExpiryDate Date
	MfgDate    Date
	Batch      string
	Serial     string
	MRP        string
	SKU        string
	Company    string
}

// Element é um par AI/valor já validado, na ordem da carga.
type Element struct {
	AI    AI
	Value string
}

// Encoder monta cargas GS1. O valor zero é utilizável.
type Encoder struct {
	// VerifyChecksum exige que o GTIN tenha dígito verificador válido.
	VerifyChecksum bool
}

var defaultEncoder Encoder

// Encode monta a carga compacta com o Encoder padrão.
func Encode(f Fields) (string, error) {
	return defaultEncoder.Encode(f)
}

// EncodeHumanReadable monta a carga legível com o Encoder padrão.
func EncodeHumanReadable(f Fields) (string, error) {
	return defaultEncoder.EncodeHumanReadable(f)
}

// Encode devolve a carga compacta: campos fixos sem terminador, cada campo
// variável seguido de FNC1, exceto o último.
func (e Encoder) Encode(f Fields) (string, error) {
	elems, err := e.Elements(f)
	if err != nil {
		return "", err
	}
	return joinCompact(elems), nil
}

// EncodeHumanReadable devolve a mesma carga na forma (AI)valor.
func (e Encoder) EncodeHumanReadable(f Fields) (string, error) {
	elems, err := e.Elements(f)
	if err != nil {
		return "", err
	}
	return joinHuman(elems), nil
}

// Elements valida os campos e devolve os elementos na ordem canônica.
// Nenhum elemento é devolvido se qualquer campo falhar.
func (e Encoder) Elements(f Fields) ([]Element, error) {
	// 1. Obrigatórios, na ordem em que são reportados
	gtinInput := strings.TrimSpace(f.GTIN)
	batch := strings.TrimSpace(f.Batch)
	serial := strings.TrimSpace(f.Serial)
	switch {
	case gtinInput == "":
		return nil, fieldErr("gtin", ErrMissingField)
	case f.ExpiryDate.IsZero():
		return nil, fieldErr("expiry_date", ErrMissingField)
	case f.MfgDate.IsZero():
		return nil, fieldErr("mfg_date", ErrMissingField)
	case batch == "":
		return nil, fieldErr("batch", ErrMissingField)
	case serial == "":
		return nil, fieldErr("serial", ErrMissingField)
	}

	// 2. Campos fixos
	normalize := NormalizeGTIN
	if e.VerifyChecksum {
		normalize = ValidateGTIN
	}
	gtin, err := normalize(gtinInput)
	if err != nil {
		return nil, err
	}
	if err := f.ExpiryDate.Check(); err != nil {
		return nil, fieldErr("expiry_date", err)
	}
	if err := f.MfgDate.Check(); err != nil {
		return nil, fieldErr("mfg_date", err)
	}

	elems := []Element{
		{AI: AIGTIN, Value: gtin},
		{AI: AIExpiryDate, Value: f.ExpiryDate.YYMMDD()},
		{AI: AIMfgDate, Value: f.MfgDate.YYMMDD()},
	}

	// 3. Campos variáveis
	mrp := strings.TrimSpace(f.MRP)
	if mrp != "" {
		if mrp, err = NormalizeMRP(mrp); err != nil {
			return nil, err
		}
	}
	variables := []struct {
		ai    AI
		field string
		value string
	}{
		{AIBatch, "batch", batch},
		{AISerial, "serial", serial},
		{AIMRP, "mrp", mrp},
		{AISKU, "sku", strings.TrimSpace(f.SKU)},
		{AICompany, "company", strings.TrimSpace(f.Company)},
	}
	for _, v := range variables {
		if v.value == "" {
			continue
		}
		if len(v.value) > MaxVariableLength {
			return nil, fieldErr(v.field, ErrExceedsMaxLength)
		}
		if strings.ContainsRune(v.value, Separator) {
			return nil, fieldErr(v.field, ErrContainsSeparator)
		}
		// parênteses delimitam AIs na forma legível
		if strings.ContainsAny(v.value, "()") {
			return nil, fieldErr(v.field, ErrContainsParenthesis)
		}
		elems = append(elems, Element{AI: v.ai, Value: v.value})
	}
	return elems, nil
}

// joinCompact concatena elementos com FNC1 após cada variável não final.
func joinCompact(elems []Element) string {
	var b strings.Builder
	for i, el := range elems {
		b.WriteString(el.AI.Code())
		b.WriteString(el.Value)
		if el.AI.Def().Kind == Variable && i < len(elems)-1 {
			b.WriteRune(Separator)
		}
	}
	return b.String()
}

func joinHuman(elems []Element) string {
	var b strings.Builder
	for _, el := range elems {
		b.WriteByte('(')
		b.WriteString(el.AI.Code())
		b.WriteByte(')')
		b.WriteString(el.Value)
	}
	return b.String()
}
