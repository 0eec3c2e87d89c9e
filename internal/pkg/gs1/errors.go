package gs1

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField        = errors.New("campo obrigatório ausente")
	ErrExceedsMaxLength    = errors.New("excede o tamanho máximo")
	ErrContainsSeparator   = errors.New("contém o separador FNC1")
	ErrContainsParenthesis = errors.New("contém parênteses")
	ErrInvalidLength       = errors.New("tamanho inválido")
	ErrInvalidChecksum     = errors.New("dígito verificador inválido")
	ErrInvalidDate         = errors.New("data de calendário inválida")
	ErrDateOutOfRange      = errors.New("ano fora do intervalo 1950..2049")
	ErrInvalidMRP          = errors.New("MRP não numérico")
	ErrInvalidPrefix       = errors.New("prefixo de empresa inválido")
	ErrInvalidExtension    = errors.New("dígito de extensão inválido")
	ErrSerialOverflow      = errors.New("serial não cabe na referência do SSCC")
)

// FieldError associa um erro sentinela ao campo que o provocou.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("gs1: %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}
