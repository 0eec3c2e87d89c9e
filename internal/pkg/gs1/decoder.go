package gs1

import (
	"strings"
)

// Formatos reconhecidos pelo decoder.
const (
	FormatHumanReadable = "human_readable"
	FormatCompact       = "compact"
)

// ParsedFields é o resultado de uma leitura. Quando nada pôde ser extraído,
// Parsed é false e Raw preserva a entrada original para auditoria.
type ParsedFields struct {
	GTIN           string `json:"gtin,omitempty"`
	ExpiryDate     string `json:"expiryDate,omitempty"`
	MfgDate        string `json:"mfgDate,omitempty"`
	BatchNo        string `json:"batchNo,omitempty"`
	SerialNo       string `json:"serialNo,omitempty"`
	MRP            string `json:"mrp,omitempty"`
	SKU            string `json:"sku,omitempty"`
	Company        string `json:"company,omitempty"`
	SSCC           string `json:"sscc,omitempty"`
	Count          string `json:"count,omitempty"`
	ContainedUnits string `json:"containedUnits,omitempty"`
	Format         string `json:"format,omitempty"`
	Parsed         bool   `json:"parsed"`
	Raw            string `json:"raw"`
}

// Decode lê uma carga em qualquer uma das duas representações. Nunca falha.
func Decode(raw string) ParsedFields {
	out := ParsedFields{Raw: raw}

	s := prepare(raw)
	if s == "" {
		return out
	}

	var elems []Element
	if isHumanReadable(s) {
		out.Format = FormatHumanReadable
		elems = tokenizeHuman(s)
	} else {
		out.Format = FormatCompact
		elems = tokenizeCompact(s)
	}

	for _, el := range elems {
		if out.assign(el) {
			out.Parsed = true
		}
	}
	return out
}

// HumanReadable reescreve uma carga (compacta ou legível) na forma (AI)valor.
// Devolve a entrada sem alterações quando nenhum AI é reconhecido.
func HumanReadable(payload string) string {
	s := prepare(payload)
	elems := tokenize(s)
	if len(elems) == 0 {
		return payload
	}
	return joinHuman(elems)
}

// prepare remove o marcador de transmissão e unifica as variantes do FNC1.
func prepare(raw string) string {
	s := collapseSeparators(strings.TrimSpace(raw))
	return stripTransmissionMarker(s)
}

func tokenize(s string) []Element {
	if isHumanReadable(s) {
		return tokenizeHuman(s)
	}
	return tokenizeCompact(s)
}

func (p *ParsedFields) assign(el Element) bool {
	switch el.AI {
	case AIExpiryDate, AIMfgDate:
		d, ok := displayDate(el.Value)
		if !ok {
			return false
		}
		if el.AI == AIExpiryDate {
			p.ExpiryDate = d
		} else {
			p.MfgDate = d
		}
	case AIGTIN:
		p.GTIN = el.Value
	case AIBatch:
		p.BatchNo = el.Value
	case AISerial:
		p.SerialNo = el.Value
	case AIMRP:
		p.MRP = el.Value
	case AISKU:
		p.SKU = el.Value
	case AICompany:
		p.Company = el.Value
	case AISSCC:
		p.SSCC = el.Value
	case AICount:
		p.Count = el.Value
	case AIContainedUnits:
		p.ContainedUnits = el.Value
	default:
		return false
	}
	return true
}

// tokenizeHuman procura cada AI conhecido entre parênteses; o valor vai até
// o próximo "(" ou o fim da string. A ordem do resultado segue a posição na carga.
func tokenizeHuman(s string) []Element {
	type found struct {
		pos int
		el  Element
	}
	var hits []found
	for ai, def := range definitions {
		tag := "(" + def.Code + ")"
		idx := strings.Index(s, tag)
		if idx < 0 {
			continue
		}
		rest := s[idx+len(tag):]
		if end := strings.IndexByte(rest, '('); end >= 0 {
			rest = rest[:end]
		}
		value := strings.TrimSpace(strings.Trim(rest, string(Separator)))
		if value == "" {
			continue
		}
		hits = append(hits, found{pos: idx, el: Element{AI: ai, Value: value}})
	}

	// insertion sort: no máximo um elemento por AI
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	elems := make([]Element, 0, len(hits))
	for _, h := range hits {
		elems = append(elems, h.el)
	}
	return elems
}

// tokenizeCompact percorre a carga da esquerda para a direita lendo um AI de
// 2 dígitos por vez. Um AI desconhecido ou um campo fixo truncado encerra a
// leitura e mantém o que já foi extraído.
func tokenizeCompact(s string) []Element {
	// Sem nenhum FNC1 na carga, o leitor descartou os separadores: os campos
	// variáveis terminam no próximo AI conhecido.
	missingSeparators := strings.IndexRune(s, Separator) < 0

	var elems []Element
	pos := 0
	for pos+2 <= len(s) {
		ai, ok := Lookup(s[pos : pos+2])
		if !ok {
			break
		}
		pos += 2
		def := ai.Def()

		if def.Kind == Fixed {
			if pos+def.Length > len(s) {
				break
			}
			elems = append(elems, Element{AI: ai, Value: s[pos : pos+def.Length]})
			pos += def.Length
			// alguns leitores emitem FNC1 também após campos fixos
			if pos < len(s) && s[pos] == Separator {
				pos++
			}
			continue
		}

		rest := s[pos:]
		if end := strings.IndexRune(rest, Separator); end >= 0 {
			elems = append(elems, Element{AI: ai, Value: rest[:end]})
			pos += end + 1
			continue
		}
		if missingSeparators {
			if end := nextBoundary(rest); end > 0 {
				elems = append(elems, Element{AI: ai, Value: rest[:end]})
				pos += end
				continue
			}
		}
		elems = append(elems, Element{AI: ai, Value: rest})
		pos = len(s)
	}
	return elems
}

// nextBoundary devolve a posição (>= 1) do próximo AI do conjunto de fronteira
// que possa iniciar um campo completo, ou -1.
func nextBoundary(rest string) int {
	for i := 1; i+2 <= len(rest); i++ {
		code := rest[i : i+2]
		if !fallbackBoundary[code] {
			continue
		}
		ai, _ := Lookup(code)
		def := ai.Def()
		tail := rest[i+2:]
		if def.Kind == Fixed {
			if len(tail) < def.Length || !isDigits(tail[:def.Length]) {
				continue
			}
		} else if tail == "" {
			continue
		}
		return i
	}
	return -1
}
