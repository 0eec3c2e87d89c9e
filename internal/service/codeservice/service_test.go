package codeservice_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotrace/internal/domain"
	apperror "gotrace/internal/errors"
	"gotrace/internal/pkg/gs1"
	"gotrace/internal/pkg/logger"
	"gotrace/internal/service/codeservice"
)

const compactReference = "0108901234567895" + "17251231" + "11250115" + "10B1\x1d21S1"

func referenceRequest() domain.EncodeRequest {
	return domain.EncodeRequest{
		GTIN:       "8901234567895",
		ExpiryDate: "2025-12-31",
		MfgDate:    "15-01-2025",
		BatchNo:    "B1",
		SerialNo:   "S1",
	}
}

func TestEncodeLabel_Success(t *testing.T) {
	svc := codeservice.NewService(gs1.Encoder{}, logger.Nop())

	label, err := svc.EncodeLabel(context.Background(), referenceRequest())

	require.NoError(t, err)
	assert.Equal(t, compactReference, label.Payload)
	assert.Equal(t, "(01)08901234567895(17)251231(11)250115(10)B1(21)S1", label.HumanReadable)
	assert.Equal(t, "08901234567895", label.GTIN)
}

func TestEncodeLabel_Fail_FieldErrors(t *testing.T) {
	svc := codeservice.NewService(gs1.Encoder{}, logger.Nop())

	tests := []struct {
		name   string
		mutate func(*domain.EncodeRequest)
		field  string
		cause  error
	}{
		{"lote ausente", func(r *domain.EncodeRequest) { r.BatchNo = "" }, "batch", gs1.ErrMissingField},
		{"validade ausente", func(r *domain.EncodeRequest) { r.ExpiryDate = " " }, "expiry_date", gs1.ErrMissingField},
		{"validade inexistente", func(r *domain.EncodeRequest) { r.ExpiryDate = "2025-02-30" }, "expiry_date", gs1.ErrInvalidDate},
		{"validade fora do pivô", func(r *domain.EncodeRequest) { r.ExpiryDate = "2050-01-01" }, "expiry_date", gs1.ErrDateOutOfRange},
		{"fabricação malformada", func(r *domain.EncodeRequest) { r.MfgDate = "2025/01/15" }, "mfg_date", gs1.ErrInvalidDate},
		{"serial longo", func(r *domain.EncodeRequest) { r.SerialNo = "S123456789012345678901" }, "serial", gs1.ErrExceedsMaxLength},
		{"mrp não numérico", func(r *domain.EncodeRequest) { r.MRP = "grátis" }, "mrp", gs1.ErrInvalidMRP},
		{"lote com parênteses", func(r *domain.EncodeRequest) { r.BatchNo = "B(10)" }, "batch", gs1.ErrContainsParenthesis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := referenceRequest()
			tt.mutate(&req)

			label, err := svc.EncodeLabel(context.Background(), req)

			assert.Empty(t, label.Payload)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.cause), err.Error())
			assert.Contains(t, err.Error(), tt.field)

			status, _, reason, _ := apperror.MapToHTTPStatus(err)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, apperror.ReasonInvalidInput, reason)
		})
	}
}

func TestEncodeLabel_ChecksumVerification(t *testing.T) {
	req := referenceRequest()

	// O dígito verificador correto de 890123456789 é 0.
	_, err := codeservice.NewService(gs1.Encoder{}, logger.Nop()).EncodeLabel(context.Background(), req)
	assert.NoError(t, err)

	_, err = codeservice.NewService(gs1.Encoder{VerifyChecksum: true}, logger.Nop()).EncodeLabel(context.Background(), req)
	assert.True(t, errors.Is(err, gs1.ErrInvalidChecksum))

	req.GTIN = "8901234567890"
	label, err := codeservice.NewService(gs1.Encoder{VerifyChecksum: true}, logger.Nop()).EncodeLabel(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "08901234567890", label.GTIN)
}

func TestDecodeScan(t *testing.T) {
	svc := codeservice.NewService(gs1.Encoder{}, logger.Nop())

	t.Run("compacta", func(t *testing.T) {
		got := svc.DecodeScan(context.Background(), compactReference)
		assert.True(t, got.Parsed)
		assert.Equal(t, gs1.FormatCompact, got.Format)
		assert.Equal(t, "08901234567895", got.GTIN)
		assert.Equal(t, "B1", got.BatchNo)
		assert.Equal(t, "S1", got.SerialNo)
	})

	t.Run("irreconhecível preserva o conteúdo", func(t *testing.T) {
		got := svc.DecodeScan(context.Background(), "hello world")
		assert.False(t, got.Parsed)
		assert.Equal(t, "hello world", got.Raw)
	})

	t.Run("vazia", func(t *testing.T) {
		got := svc.DecodeScan(context.Background(), "")
		assert.False(t, got.Parsed)
	})
}

func TestVerifyScan(t *testing.T) {
	svc := codeservice.NewService(gs1.Encoder{}, logger.Nop())

	t.Run("mesma carga em formatos diferentes", func(t *testing.T) {
		res := svc.VerifyScan(context.Background(), domain.VerifyRequest{
			Expected: compactReference,
			Scanned:  "]C1(01)08901234567895 (17)251231 (11)250115 (10)B1 (21)S1",
		})
		assert.True(t, res.Match)
		assert.True(t, res.ScanParsed)
		assert.Equal(t, compactReference, res.Scanned)
	})

	t.Run("lote divergente", func(t *testing.T) {
		res := svc.VerifyScan(context.Background(), domain.VerifyRequest{
			Expected: compactReference,
			Scanned:  "(01)08901234567895(17)251231(11)250115(10)B2(21)S1",
		})
		assert.False(t, res.Match)
		assert.True(t, res.ScanParsed)
	})

	t.Run("ambos vazios não conferem", func(t *testing.T) {
		res := svc.VerifyScan(context.Background(), domain.VerifyRequest{})
		assert.False(t, res.Match)
		assert.False(t, res.ScanParsed)
	})
}

func TestValidateGTIN(t *testing.T) {
	svc := codeservice.NewService(gs1.Encoder{}, logger.Nop())

	res, err := svc.ValidateGTIN(context.Background(), "4006381333931")
	require.NoError(t, err)
	assert.Equal(t, domain.GTINResponse{GTIN: "04006381333931", Valid: true}, res)

	_, err = svc.ValidateGTIN(context.Background(), "4006381333932")
	assert.True(t, errors.Is(err, gs1.ErrInvalidChecksum))

	_, err = svc.ValidateGTIN(context.Background(), "1234567")
	assert.True(t, errors.Is(err, gs1.ErrInvalidLength))
	var valErr *apperror.ValidationError
	assert.True(t, errors.As(err, &valErr))
}
