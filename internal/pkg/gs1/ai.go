// Package gs1 implementa o codec de Application Identifiers (AI) do GS1:
// normalização e validação de GTIN, construção de SSCC, montagem da carga
// canônica e leitura das duas representações textuais (legível com
// parênteses e compacta com FNC1).
//
// O pacote é puro e sem estado; todas as funções podem ser chamadas de forma
// concorrente.
package gs1

import "strings"

// Separator é o byte FNC1 (GS, 0x1D) que termina campos de tamanho variável.
const Separator = '\x1d'

// separatorVariants são representações textuais do FNC1 emitidas por leitores
// e sistemas que não conseguem transportar o byte de controle.
var separatorVariants = []string{"<GS>", "{GS}", `\x1d`, `\x1D`, "␝", "^]"}

// symbologyIDs são os prefixos de transmissão (AIM) que alguns leitores
// adicionam antes da carga.
var symbologyIDs = []string{"]C1", "]d2", "]Q3", "]e0", "]J1"}

// Kind indica se o campo tem tamanho fixo ou variável.
type Kind int

const (
	Fixed Kind = iota
	Variable
)

// AI é o conjunto fechado de Application Identifiers reconhecidos pelo codec.
type AI int

const (
	AIUnknown AI = iota
	AISSCC
	AIGTIN
	AIBatch
	AIMfgDate
	AIExpiryDate
	AISerial
	AICount
	AIContainedUnits
	AIMRP
	AISKU
	AICompany
)

// Definition descreve um AI: código de 2 dígitos, tipo e tamanho.
// Para campos fixos, Length é exato; para variáveis, é o máximo.
type Definition struct {
	Code     string
	Kind     Kind
	Length   int
	Semantic string
}

// MaxVariableLength é o teto aplicado pelo encoder a todos os campos variáveis.
const MaxVariableLength = 20

var definitions = map[AI]Definition{
	AISSCC:           {Code: "00", Kind: Fixed, Length: 18, Semantic: "SSCC"},
	AIGTIN:           {Code: "01", Kind: Fixed, Length: 14, Semantic: "GTIN"},
	AIBatch:          {Code: "10", Kind: Variable, Length: MaxVariableLength, Semantic: "Batch"},
	AIMfgDate:        {Code: "11", Kind: Fixed, Length: 6, Semantic: "MfgDate"},
	AIExpiryDate:     {Code: "17", Kind: Fixed, Length: 6, Semantic: "ExpiryDate"},
	AISerial:         {Code: "21", Kind: Variable, Length: MaxVariableLength, Semantic: "Serial"},
	AICount:          {Code: "30", Kind: Variable, Length: 8, Semantic: "Count"},
	AIContainedUnits: {Code: "37", Kind: Variable, Length: 8, Semantic: "ContainedUnits"},
	AIMRP:            {Code: "91", Kind: Variable, Length: MaxVariableLength, Semantic: "MRP"},
	AISKU:            {Code: "92", Kind: Variable, Length: MaxVariableLength, Semantic: "SKU"},
	AICompany:        {Code: "93", Kind: Variable, Length: MaxVariableLength, Semantic: "Company"},
}

var byCode = func() map[string]AI {
	m := make(map[string]AI, len(definitions))
	for ai, def := range definitions {
		m[def.Code] = ai
	}
	return m
}()

// fallbackBoundary é o conjunto de AIs procurado como fronteira quando o
// leitor não emitiu o FNC1 entre campos variáveis.
var fallbackBoundary = map[string]bool{
	"01": true, "10": true, "11": true, "17": true, "21": true, "30": true, "37": true,
}

// humanMarkers identificam a representação legível.
var humanMarkers = []string{"(01)", "(10)", "(17)"}

// Lookup devolve o AI para um código de 2 dígitos.
func Lookup(code string) (AI, bool) {
	ai, ok := byCode[code]
	return ai, ok
}

// Def devolve a definição do AI.
func (a AI) Def() Definition {
	return definitions[a]
}

// Code devolve o código de 2 dígitos do AI.
func (a AI) Code() string {
	return definitions[a].Code
}

func (a AI) String() string {
	if d, ok := definitions[a]; ok {
		return d.Semantic
	}
	return "Unknown"
}

// collapseSeparators troca as variantes textuais do FNC1 pelo byte canônico.
func collapseSeparators(s string) string {
	for _, v := range separatorVariants {
		if strings.Contains(s, v) {
			s = strings.ReplaceAll(s, v, string(Separator))
		}
	}
	return s
}

// stripTransmissionMarker remove o identificador de simbologia e um FNC1 inicial.
func stripTransmissionMarker(s string) string {
	for _, id := range symbologyIDs {
		if strings.HasPrefix(s, id) {
			s = s[len(id):]
			break
		}
	}
	return strings.TrimLeft(s, string(Separator))
}

// isHumanReadable aplica a detecção de formato: qualquer marcador entre
// parênteses conhecido indica a forma legível.
func isHumanReadable(s string) bool {
	for _, m := range humanMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
