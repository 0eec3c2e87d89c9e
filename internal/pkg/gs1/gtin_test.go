package gs1_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotrace/internal/pkg/gs1"
)

func TestCheckDigit_KnownValues(t *testing.T) {
	cases := map[string]int{
		"400638133393":      1, // EAN-13 4006381333931
		"890123456789":      0,
		"10614141123456789": 7, // SSCC 106141411234567897
	}
	for base, want := range cases {
		got, err := gs1.CheckDigit(base)
		require.NoError(t, err, base)
		assert.Equal(t, want, got, base)
	}
}

func TestCheckDigit_RejectsNonDigits(t *testing.T) {
	_, err := gs1.CheckDigit("12a4")
	assert.Error(t, err)
}

func TestValidateGTIN_Success_PadsTo14(t *testing.T) {
	got, err := gs1.ValidateGTIN("4006381333931")
	assert.NoError(t, err)
	assert.Equal(t, "04006381333931", got)
}

func TestValidateGTIN_Success_StripsNonDigits(t *testing.T) {
	got, err := gs1.ValidateGTIN(" 400-6381-33393 1 ")
	assert.NoError(t, err)
	assert.Equal(t, "04006381333931", got)
}

func TestValidateGTIN_Fail_Length(t *testing.T) {
	for _, in := range []string{"", "1234567", "123456789012345"} {
		_, err := gs1.ValidateGTIN(in)
		assert.True(t, errors.Is(err, gs1.ErrInvalidLength), "entrada %q", in)
	}
}

func TestValidateGTIN_Fail_Checksum(t *testing.T) {
	_, err := gs1.ValidateGTIN("8901234567895")
	assert.True(t, errors.Is(err, gs1.ErrInvalidChecksum))

	var fe *gs1.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "gtin", fe.Field)
}

// Qualquer troca de um único dígito de um GTIN válido deve ser rejeitada:
// os pesos 3 e 1 são coprimos com 10.
func TestValidateGTIN_SingleDigitMutationRejected(t *testing.T) {
	valid := "04006381333931"
	_, err := gs1.ValidateGTIN(valid)
	require.NoError(t, err)

	for pos := 0; pos < len(valid); pos++ {
		for d := byte('0'); d <= '9'; d++ {
			if valid[pos] == d {
				continue
			}
			mutated := []byte(valid)
			mutated[pos] = d
			_, err := gs1.ValidateGTIN(string(mutated))
			assert.Error(t, err, "mutação %s deveria falhar", mutated)
		}
	}
}

func TestNormalizeGTIN_DoesNotVerifyChecksum(t *testing.T) {
	got, err := gs1.NormalizeGTIN("8901234567895")
	assert.NoError(t, err)
	assert.Equal(t, "08901234567895", got)
}
