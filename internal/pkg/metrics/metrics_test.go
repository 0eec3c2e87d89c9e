package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"gotrace/internal/pkg/metrics"
)

func TestHandler_ExposesCounters(t *testing.T) {
	metrics.CodesGenerated("carton", 8)
	metrics.QuotaRefunded("persisting")
	metrics.Decoded("compact", false)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `gotrace_sscc_codes_generated_total{level="carton"}`)
	assert.Contains(t, body, `gotrace_quota_refunds_total{stage="persisting"} 1`)
	assert.Contains(t, body, `gotrace_gs1_decodes_total{format="compact",parsed="false"} 1`)
}
