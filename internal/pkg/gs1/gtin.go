package gs1

import (
	"strings"
)

const (
	gtinMinDigits = 8
	gtinDigits    = 14
)

// CheckDigit calcula o dígito verificador GS1 Módulo 10 para a base informada.
// O dígito mais à direita da base recebe peso 3, alternando com 1.
func CheckDigit(base string) (int, error) {
	if !isDigits(base) {
		return 0, ErrInvalidLength
	}
	sum := 0
	weight := 3
	for i := len(base) - 1; i >= 0; i-- {
		sum += int(base[i]-'0') * weight
		weight = 4 - weight // alterna 3 e 1
	}
	return (10 - sum%10) % 10, nil
}

// hasValidCheckDigit confere o último dígito de uma sequência numérica.
func hasValidCheckDigit(code string) bool {
	if len(code) < 2 || !isDigits(code) {
		return false
	}
	want, err := CheckDigit(code[:len(code)-1])
	if err != nil {
		return false
	}
	return int(code[len(code)-1]-'0') == want
}

// NormalizeGTIN remove caracteres não numéricos e completa com zeros à
// esquerda até 14 dígitos. Não confere o dígito verificador.
func NormalizeGTIN(input string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(input); i++ {
		if input[i] >= '0' && input[i] <= '9' {
			b.WriteByte(input[i])
		}
	}
	digits := b.String()
	if len(digits) < gtinMinDigits || len(digits) > gtinDigits {
		return "", fieldErr("gtin", ErrInvalidLength)
	}
	return strings.Repeat("0", gtinDigits-len(digits)) + digits, nil
}

// ValidateGTIN normaliza o GTIN para 14 dígitos e valida o dígito verificador.
func ValidateGTIN(input string) (string, error) {
	gtin, err := NormalizeGTIN(input)
	if err != nil {
		return "", err
	}
	if !hasValidCheckDigit(gtin) {
		return "", fieldErr("gtin", ErrInvalidChecksum)
	}
	return gtin, nil
}
