package gs1_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotrace/internal/pkg/gs1"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, referencePayload, gs1.Normalize(referencePayload))
	assert.Equal(t, referencePayload, gs1.Normalize("(01)08901234567895 (17)251231 (11)250115 (10)B1 (21)S1"))
	assert.Equal(t, referencePayload, gs1.Normalize("]C1"+"0108901234567895172512311125011510B1{GS}21S1\x1d"))
}

func TestCompare_FormatEquivalence(t *testing.T) {
	f := sampleFields()
	f.MRP = "149,9"
	f.SKU = "SKU-1"

	compact, err := gs1.Encode(f)
	require.NoError(t, err)
	human, err := gs1.EncodeHumanReadable(f)
	require.NoError(t, err)

	assert.True(t, gs1.Compare(compact, human))
	assert.True(t, gs1.Compare(compact, gs1.HumanReadable(compact)))
	assert.True(t, gs1.Compare(human, compact))
}

func TestCompare_DetectsDifferentData(t *testing.T) {
	f := sampleFields()
	compact, err := gs1.Encode(f)
	require.NoError(t, err)

	f.Serial = "S2"
	other, err := gs1.EncodeHumanReadable(f)
	require.NoError(t, err)

	assert.False(t, gs1.Compare(compact, other))
}

func TestNormalize_DropsSeparatorAfterFixedField(t *testing.T) {
	got := gs1.Normalize("0108901234567895\x1d17251231\x1d11250115\x1d10B1\x1d21S1")
	assert.Equal(t, referencePayload, got)
}

func TestNormalize_KeepsEveryHumanSegment(t *testing.T) {
	got := gs1.Normalize("(01)08901234567895(10)B1(99)EXTRA(10)B2")
	assert.Equal(t, "0108901234567895"+"10B1\x1d"+"99EXTRA\x1d"+"10B2", got)
}

func TestCompare_DetectsExtraContent(t *testing.T) {
	base := "(01)08901234567895(17)251231(11)250115(10)B1(21)S1"

	tests := []struct {
		name  string
		other string
	}{
		{"AI desconhecido no fim", base + "(99)TAMPERED"},
		{"texto antes do primeiro AI", "JUNK" + base},
		{"AI repetido", base + "(21)S2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, gs1.Compare(base, tt.other))
		})
	}
	assert.True(t, gs1.Compare(base, referencePayload))
}
