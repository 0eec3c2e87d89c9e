package gs1

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ssccDigits       = 18
	minPrefixDigits  = 7
	maxPrefixDigits  = 9
	ssccPayloadWidth = ssccDigits - 2 // extensão e dígito verificador ficam de fora
)

// SerialWidth devolve quantos dígitos de referência serial cabem no SSCC
// para um prefixo de empresa com o tamanho informado.
func SerialWidth(prefixLen int) int {
	return ssccPayloadWidth - prefixLen
}

// MaxSerial devolve o maior serial representável para o prefixo.
func MaxSerial(companyPrefix string) int64 {
	var max int64 = 1
	for i := 0; i < SerialWidth(len(companyPrefix)); i++ {
		max *= 10
	}
	return max - 1
}

// ValidateCompanyPrefix confere que o prefixo tem de 7 a 9 dígitos.
func ValidateCompanyPrefix(prefix string) error {
	if len(prefix) < minPrefixDigits || len(prefix) > maxPrefixDigits || !isDigits(prefix) {
		return fieldErr("company_prefix", ErrInvalidPrefix)
	}
	return nil
}

// SSCC monta o código de 18 dígitos: extensão + prefixo + referência serial
// completada com zeros + dígito verificador.
func SSCC(extension int, companyPrefix string, serial int64) (string, error) {
	if extension < 0 || extension > 9 {
		return "", fieldErr("extension_digit", ErrInvalidExtension)
	}
	if err := ValidateCompanyPrefix(companyPrefix); err != nil {
		return "", err
	}
	if serial < 0 || serial > MaxSerial(companyPrefix) {
		return "", fieldErr("serial", fmt.Errorf("%w: %d", ErrSerialOverflow, serial))
	}

	width := SerialWidth(len(companyPrefix))
	ref := strconv.FormatInt(serial, 10)

	var b strings.Builder
	b.Grow(ssccDigits)
	b.WriteByte(byte('0' + extension))
	b.WriteString(companyPrefix)
	b.WriteString(strings.Repeat("0", width-len(ref)))
	b.WriteString(ref)

	check, err := CheckDigit(b.String())
	if err != nil {
		return "", fieldErr("sscc", err)
	}
	b.WriteByte(byte('0' + check))
	return b.String(), nil
}

// ValidateSSCC confere tamanho e dígito verificador de um SSCC.
func ValidateSSCC(code string) error {
	if len(code) != ssccDigits || !isDigits(code) {
		return fieldErr("sscc", ErrInvalidLength)
	}
	if !hasValidCheckDigit(code) {
		return fieldErr("sscc", ErrInvalidChecksum)
	}
	return nil
}
