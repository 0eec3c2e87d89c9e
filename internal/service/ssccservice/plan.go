package ssccservice

import (
	"fmt"

	"gotrace/internal/domain"
	apperror "gotrace/internal/errors"
)

// Limits são os tetos aplicados antes de qualquer recurso ser tocado.
type Limits struct {
	MaxPerEntry   int // Por grupo de nível
	MaxPerRequest int // Soma de todos os níveis
}

// DefaultLimits reproduz os valores de referência.
var DefaultLimits = Limits{MaxPerEntry: 1000, MaxPerRequest: 10000}

// Plan é a demanda de códigos calculada a partir de uma requisição válida.
type Plan struct {
	Levels []domain.Level
	Counts map[domain.Level]int
	Total  int
}

// BuildPlan valida a hierarquia e as multiplicidades e calcula a contagem por nível:
// count(L) = pallets × Π multiplicidade(M) para todo nível M acima de L.
// Não consulta colaboradores.
func BuildPlan(req domain.GenerationRequest, limits Limits) (Plan, error) {
	levels := req.RequestedLevels()
	if len(levels) == 0 {
		return Plan{}, apperror.NewHierarchyViolationError("ao menos um nível (box, carton ou pallet) deve ser solicitado")
	}

	// Cada nível solicitado exige todos os níveis inferiores.
	for _, l := range levels {
		for _, lower := range domain.Levels {
			if lower >= l {
				break
			}
			if !req.Requested(lower) {
				return Plan{}, apperror.NewHierarchyViolationError(fmt.Sprintf("%s requer %s na mesma requisição", l, lower))
			}
		}
	}

	if req.Pallets <= 0 {
		return Plan{}, apperror.NewValidationError("pallets deve ser um inteiro positivo")
	}
	for _, l := range domain.Levels {
		if req.Multiplicity(l) < 0 {
			return Plan{}, apperror.NewValidationError(fmt.Sprintf("multiplicidade de %s não pode ser negativa", l))
		}
	}

	plan := Plan{Levels: levels, Counts: make(map[domain.Level]int, len(levels))}
	for _, l := range levels {
		count := int64(req.Pallets)
		for _, upper := range domain.Levels {
			if upper <= l {
				continue
			}
			m := req.Multiplicity(upper)
			if m <= 0 {
				return Plan{}, apperror.NewValidationError(fmt.Sprintf(
					"%s deve ser um inteiro positivo quando %s é solicitado", multiplicityField(upper), l))
			}
			count = saturatingMul(count, int64(m), int64(limits.MaxPerRequest)+1)
		}

		if count > int64(limits.MaxPerEntry) {
			return Plan{}, apperror.NewLimitExceededError(
				fmt.Sprintf("%d códigos de %s excedem o máximo de %d por entrada", count, l, limits.MaxPerEntry),
				int64(limits.MaxPerEntry), count)
		}
		plan.Counts[l] = int(count)
		plan.Total += int(count)
	}

	if plan.Total > limits.MaxPerRequest {
		return Plan{}, apperror.NewLimitExceededError(
			fmt.Sprintf("%d códigos excedem o máximo de %d por requisição", plan.Total, limits.MaxPerRequest),
			int64(limits.MaxPerRequest), int64(plan.Total))
	}
	return plan, nil
}

// saturatingMul devolve a*b limitado a ceil (a, b > 0).
func saturatingMul(a, b, ceil int64) int64 {
	if a >= ceil || b >= ceil || a > ceil/b {
		return ceil
	}
	return a * b
}

func multiplicityField(l domain.Level) string {
	switch l {
	case domain.LevelBox:
		return "units_per_box"
	case domain.LevelCarton:
		return "boxes_per_carton"
	case domain.LevelPallet:
		return "cartons_per_pallet"
	}
	return l.String()
}
