package gs1

import (
	"strings"
	"unicode"
)

// Normalize reduz uma carga a uma forma canônica comparável: variantes do FNC1
// unificadas, espaços removidos e parênteses eliminados. Segmentos (AI)valor
// viram a forma compacta, com FNC1 após cada valor variável seguido de outro
// segmento. Nenhum conteúdo é descartado: texto antes do primeiro "(", AIs
// desconhecidos e AIs repetidos permanecem na saída. Um FNC1 logo após um
// campo fixo é removido, nas duas formas.
func Normalize(payload string) string {
	s := collapseSeparators(payload)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = stripTransmissionMarker(s)

	if isHumanReadable(s) {
		s = humanToCompact(s)
	} else {
		s = dropFixedSeparators(strings.NewReplacer("(", "", ")", "").Replace(s))
	}
	return strings.TrimRight(s, string(Separator))
}

// Compare indica se as duas cargas representam os mesmos dados,
// independente da representação textual usada por cada lado.
func Compare(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// humanToCompact reescreve cada segmento "(código)valor" como "códigovalor".
// AIs desconhecidos são tratados como variáveis.
func humanToCompact(s string) string {
	var b strings.Builder

	start := strings.IndexByte(s, '(')
	b.WriteString(s[:start])
	s = s[start:]

	for s != "" {
		// s começa em "("
		closeIdx := strings.IndexByte(s, ')')
		if closeIdx < 0 {
			b.WriteString(strings.ReplaceAll(s, "(", ""))
			break
		}
		code := strings.ReplaceAll(s[1:closeIdx], "(", "")
		rest := s[closeIdx+1:]

		value := rest
		next := strings.IndexByte(rest, '(')
		if next >= 0 {
			value = rest[:next]
			s = rest[next:]
		} else {
			s = ""
		}
		value = strings.Trim(strings.ReplaceAll(value, ")", ""), string(Separator))

		b.WriteString(code)
		b.WriteString(value)

		fixed := false
		if ai, ok := Lookup(code); ok {
			fixed = ai.Def().Kind == Fixed
		}
		if !fixed && s != "" {
			b.WriteRune(Separator)
		}
	}
	return b.String()
}

// dropFixedSeparators percorre a forma compacta e remove o FNC1 emitido por
// alguns leitores após campos fixos. Ao encontrar um AI desconhecido ou um
// campo truncado, o restante é copiado sem alterações.
func dropFixedSeparators(s string) string {
	var b strings.Builder
	pos := 0
	for pos+2 <= len(s) {
		ai, ok := Lookup(s[pos : pos+2])
		if !ok {
			break
		}
		def := ai.Def()

		if def.Kind == Fixed {
			end := pos + 2 + def.Length
			if end > len(s) {
				break
			}
			b.WriteString(s[pos:end])
			pos = end
			if pos < len(s) && s[pos] == Separator {
				pos++
			}
			continue
		}

		sep := strings.IndexRune(s[pos:], Separator)
		if sep < 0 {
			break
		}
		b.WriteString(s[pos : pos+sep+1])
		pos += sep + 1
	}
	b.WriteString(s[pos:])
	return b.String()
}
