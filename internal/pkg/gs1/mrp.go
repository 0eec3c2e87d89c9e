package gs1

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// NormalizeMRP converte um preço digitado livremente em uma string numérica
// com duas casas decimais.
//
// Regras de separador:
//   - com "." e "," presentes, o mais à direita é o separador decimal;
//   - só ",": vira decimal quando a última vírgula tem até 2 dígitos depois dela,
//     caso contrário todas as vírgulas são de milhar;
//   - mais de um ".": todos os pontos são de milhar.
//
// Só dígitos, separadores e espaços são aceitos; sinal, letras e símbolos
// de moeda resultam em ErrInvalidMRP.
func NormalizeMRP(input string) (string, error) {
	var b strings.Builder
	for _, r := range input {
		switch {
		case (r >= '0' && r <= '9') || r == '.' || r == ',':
			b.WriteRune(r)
		case unicode.IsSpace(r):
		default:
			return "", fieldErr("mrp", ErrInvalidMRP)
		}
	}
	s := b.String()
	if strings.IndexAny(s, "0123456789") < 0 {
		return "", fieldErr("mrp", ErrInvalidMRP)
	}

	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if len(s)-lastComma-1 <= 2 {
			s = strings.ReplaceAll(s[:lastComma], ",", "") + "." + s[lastComma+1:]
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", fieldErr("mrp", ErrInvalidMRP)
	}
	return d.StringFixed(2), nil
}
