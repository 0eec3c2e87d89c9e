package code_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotrace/internal/api/code"
	"gotrace/internal/domain"
	apperror "gotrace/internal/errors"
	"gotrace/internal/pkg/gs1"
	"gotrace/internal/pkg/logger"
	"gotrace/internal/service/codeservice"
)

func newHandler() *code.Handler {
	return code.NewHandler(codeservice.NewService(gs1.Encoder{}, logger.Nop()), logger.Nop())
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestEncodeHandler(t *testing.T) {
	h := newHandler()

	rec := post(h.EncodeHandler, `{"gtin":"8901234567895","expiry_date":"2025-12-31","mfg_date":"2025-01-15","batch_no":"B1","serial_no":"S1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var label domain.Label
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &label))
	assert.Equal(t, "0108901234567895172512311125011510B1\x1d21S1", label.Payload)
	assert.Equal(t, "(01)08901234567895(17)251231(11)250115(10)B1(21)S1", label.HumanReadable)
}

func TestEncodeHandler_MissingField(t *testing.T) {
	h := newHandler()

	rec := post(h.EncodeHandler, `{"gtin":"8901234567895","expiry_date":"2025-12-31","mfg_date":"2025-01-15","serial_no":"S1"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperror.ReasonInvalidInput, body.Reason)
	assert.Contains(t, body.Message, "batch")
}

func TestEncodeHandler_MalformedJSON(t *testing.T) {
	rec := post(newHandler().EncodeHandler, `{"gtin":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEncodeHandler_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/gs1/encode", nil)
	rec := httptest.NewRecorder()

	newHandler().EncodeHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDecodeHandler(t *testing.T) {
	h := newHandler()

	t.Run("legível", func(t *testing.T) {
		rec := post(h.DecodeHandler, `{"raw":"(01)08901234567895(17)251231(10)B1"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var got gs1.ParsedFields
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, got.Parsed)
		assert.Equal(t, gs1.FormatHumanReadable, got.Format)
		assert.Equal(t, "B1", got.BatchNo)
	})

	t.Run("irreconhecível", func(t *testing.T) {
		rec := post(h.DecodeHandler, `{"raw":"hello"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var got gs1.ParsedFields
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.False(t, got.Parsed)
		assert.Equal(t, "hello", got.Raw)
	})
}

func TestVerifyHandler(t *testing.T) {
	rec := post(newHandler().VerifyHandler,
		`{"expected":"0108901234567895172512311125011510B1\u001d21S1","scanned":"(01)08901234567895(17)251231(11)250115(10)B1(21)S1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.VerifyResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Match)
}

func TestValidateGTINHandler(t *testing.T) {
	h := newHandler()

	rec := post(h.ValidateGTINHandler, `{"gtin":"4006381333931"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.GTINResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "04006381333931", got.GTIN)

	rec = post(h.ValidateGTINHandler, `{"gtin":"4006381333932"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
