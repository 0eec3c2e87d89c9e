package gs1

import (
	"fmt"
	"time"
)

// Date é uma data de calendário sem fuso horário.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

var dateLayouts = []string{"2006-01-02", "02-01-2006"}

// ParseDate aceita YYYY-MM-DD ou DD-MM-YYYY.
func ParseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, ErrInvalidDate
}

// DateOf extrai a data de calendário de um time.Time.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero indica que a data não foi informada.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Valid confere se a data existe no calendário e se o ano cabe em dois dígitos
// do intervalo de pivô (1950..2049).
func (d Date) Valid() bool {
	return d.Check() == nil
}

// Check distingue o ano fora do pivô (ErrDateOutOfRange) da data inexistente
// no calendário (ErrInvalidDate).
func (d Date) Check() error {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	if DateOf(t) != d {
		return ErrInvalidDate
	}
	if d.Year < 1950 || d.Year > 2049 {
		return ErrDateOutOfRange
	}
	return nil
}

// YYMMDD devolve a forma de 6 dígitos usada na carga.
func (d Date) YYMMDD() string {
	return fmt.Sprintf("%02d%02d%02d", d.Year%100, int(d.Month), d.Day)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// displayDate converte YYMMDD em DD-MM-YYYY com o pivô de século em 50.
// Retorna false quando o valor não tem exatamente 6 dígitos.
func displayDate(yymmdd string) (string, bool) {
	if len(yymmdd) != 6 || !isDigits(yymmdd) {
		return "", false
	}
	yy := int(yymmdd[0]-'0')*10 + int(yymmdd[1]-'0')
	year := 1900 + yy
	if yy < 50 {
		year = 2000 + yy
	}
	return fmt.Sprintf("%s-%s-%04d", yymmdd[4:6], yymmdd[2:4], year), true
}
