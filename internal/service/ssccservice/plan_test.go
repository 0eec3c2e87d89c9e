package ssccservice_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotrace/internal/domain"
	apperror "gotrace/internal/errors"
	"gotrace/internal/service/ssccservice"
)

func TestBuildPlan_ReferenceExample(t *testing.T) {
	plan, err := ssccservice.BuildPlan(domain.GenerationRequest{
		GenerateBox:      true,
		GenerateCarton:   true,
		Pallets:          2,
		BoxesPerCarton:   3,
		CartonsPerPallet: 4,
	}, ssccservice.DefaultLimits)

	require.NoError(t, err)
	assert.Equal(t, []domain.Level{domain.LevelBox, domain.LevelCarton}, plan.Levels)
	assert.Equal(t, 24, plan.Counts[domain.LevelBox])
	assert.Equal(t, 8, plan.Counts[domain.LevelCarton])
	assert.Equal(t, 32, plan.Total)
}

func TestBuildPlan_AllLevelsAndBoxOnly(t *testing.T) {
	all := domain.GenerationRequest{
		GenerateBox: true, GenerateCarton: true, GeneratePallet: true,
		Pallets: 2, UnitsPerBox: 10, BoxesPerCarton: 3, CartonsPerPallet: 4,
	}
	plan, err := ssccservice.BuildPlan(all, ssccservice.DefaultLimits)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Counts[domain.LevelPallet])
	assert.Equal(t, 34, plan.Total)

	boxOnly := domain.GenerationRequest{GenerateBox: true, Pallets: 1, BoxesPerCarton: 6, CartonsPerPallet: 5}
	plan, err = ssccservice.BuildPlan(boxOnly, ssccservice.DefaultLimits)
	require.NoError(t, err)
	assert.Equal(t, 30, plan.Total)
}

func TestBuildPlan_Fail_Hierarchy(t *testing.T) {
	cases := map[string]domain.GenerationRequest{
		"nenhum nível":      {Pallets: 1, BoxesPerCarton: 1, CartonsPerPallet: 1},
		"carton sem box":    {GenerateCarton: true, Pallets: 1, BoxesPerCarton: 1, CartonsPerPallet: 1},
		"pallet sem box":    {GenerateCarton: true, GeneratePallet: true, Pallets: 1, BoxesPerCarton: 1, CartonsPerPallet: 1},
		"pallet sem carton": {GenerateBox: true, GeneratePallet: true, Pallets: 1, BoxesPerCarton: 1, CartonsPerPallet: 1},
		"pallet sozinho":    {GeneratePallet: true, Pallets: 1, CartonsPerPallet: 1},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ssccservice.BuildPlan(req, ssccservice.DefaultLimits)
			assert.IsType(t, &apperror.HierarchyViolationError{}, err)
		})
	}

	_, err := ssccservice.BuildPlan(domain.GenerationRequest{GenerateCarton: true, Pallets: 1, CartonsPerPallet: 1}, ssccservice.DefaultLimits)
	assert.Contains(t, err.Error(), "carton requer box")
}

func TestBuildPlan_Fail_Multiplicities(t *testing.T) {
	_, err := ssccservice.BuildPlan(domain.GenerationRequest{GenerateBox: true, BoxesPerCarton: 1, CartonsPerPallet: 1}, ssccservice.DefaultLimits)
	assert.IsType(t, &apperror.ValidationError{}, err, "pallets zero")

	_, err = ssccservice.BuildPlan(domain.GenerationRequest{GenerateBox: true, GenerateCarton: true, Pallets: 1, CartonsPerPallet: 4}, ssccservice.DefaultLimits)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "boxes_per_carton")

	_, err = ssccservice.BuildPlan(domain.GenerationRequest{GenerateBox: true, Pallets: 1, UnitsPerBox: -1, BoxesPerCarton: 1, CartonsPerPallet: 1}, ssccservice.DefaultLimits)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

func TestBuildPlan_Fail_Ceilings(t *testing.T) {
	// 2 × 30 × 20 = 1200 caixas numa única entrada.
	_, err := ssccservice.BuildPlan(domain.GenerationRequest{
		GenerateBox: true, Pallets: 2, BoxesPerCarton: 30, CartonsPerPallet: 20,
	}, ssccservice.DefaultLimits)
	assert.IsType(t, &apperror.LimitExceededError{}, err)

	// Cada grupo cabe na entrada, mas a soma excede a requisição.
	_, err = ssccservice.BuildPlan(domain.GenerationRequest{
		GenerateBox: true, GenerateCarton: true, Pallets: 10, BoxesPerCarton: 10, CartonsPerPallet: 10,
	}, ssccservice.Limits{MaxPerEntry: 1000, MaxPerRequest: 1000})
	assert.IsType(t, &apperror.LimitExceededError{}, err)

	// Valores gigantes não estouram a aritmética.
	_, err = ssccservice.BuildPlan(domain.GenerationRequest{
		GenerateBox: true, Pallets: math.MaxInt32, BoxesPerCarton: math.MaxInt32, CartonsPerPallet: math.MaxInt32,
	}, ssccservice.DefaultLimits)
	assert.IsType(t, &apperror.LimitExceededError{}, err)
}
