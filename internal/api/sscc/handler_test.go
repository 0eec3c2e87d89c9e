package sscc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gotrace/internal/api/sscc"
	"gotrace/internal/domain"
	apperror "gotrace/internal/errors"
	"gotrace/internal/pkg/logger"
	"gotrace/internal/pkg/middleware"
	"gotrace/internal/pkg/token"
)

type MockSSCCService struct {
	mock.Mock
}

func (m *MockSSCCService) Generate(ctx domain.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.GenerationResult), args.Error(1)
}

func (m *MockSSCCService) AddOnQuota(ctx domain.Context, companyID string, qty int64) (int64, error) {
	args := m.Called(ctx, companyID, qty)
	return args.Get(0).(int64), args.Error(1)
}

const secret = "segredo-de-teste"

// authorized envolve o handler com o middleware de autenticação e devolve um token válido.
func authorized(t *testing.T, h http.HandlerFunc, role domain.UserRole) (http.HandlerFunc, string) {
	t.Helper()
	svc := token.NewService(secret, time.Minute)
	tok, err := svc.GenerateToken("u-1", "acme", string(role))
	require.NoError(t, err)
	return middleware.NewAuthMiddleware(svc)(h), tok
}

func send(h http.HandlerFunc, tok, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestGenerateHandler_CompanyFromClaims(t *testing.T) {
	svc := new(MockSSCCService)
	h := sscc.NewHandler(svc, logger.Nop())

	result := domain.GenerationResult{
		Pallets:       []domain.GeneratedCode{{Level: domain.LevelPallet, SSCC: "106141410000000019", Serial: 1, Sequence: 1}},
		TotalCount:    1,
		FirstSerial:   1,
		CompanyPrefix: "0614141",
	}
	svc.On("Generate", mock.Anything, mock.MatchedBy(func(req domain.GenerationRequest) bool {
		return req.CompanyID == "acme" && req.SKU == "SKU-1" && req.Pallets == 1
	})).Return(result, nil).Once()

	handler, tok := authorized(t, h.GenerateHandler, domain.RoleOperator)
	rec := send(handler, tok, `{"company_id":"outra","sku":"SKU-1","batch_no":"B1","pallets":1,"generate_box":true}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.GenerationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.TotalCount)
	assert.Equal(t, "106141410000000019", got.Pallets[0].SSCC)
	svc.AssertExpectations(t)
}

func TestGenerateHandler_ErrorBodies(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{"hierarquia", apperror.NewHierarchyViolationError("carton requer box"), http.StatusUnprocessableEntity, apperror.ReasonHierarchyViolation},
		{"cota", apperror.NewQuotaExhaustedError(32, 10), http.StatusPaymentRequired, apperror.ReasonQuotaExceeded},
		{"limite", apperror.NewLimitExceededError("limite mensal", 100, 120), http.StatusForbidden, apperror.ReasonLimitExceeded},
		{"gravação", apperror.NewStorageError("falha", context.DeadlineExceeded), http.StatusInternalServerError, apperror.ReasonStorageFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSSCCService)
			svc.On("Generate", mock.Anything, mock.Anything).Return(domain.GenerationResult{}, tt.err).Once()
			handler, tok := authorized(t, sscc.NewHandler(svc, logger.Nop()).GenerateHandler, domain.RoleOperator)

			rec := send(handler, tok, `{"sku":"SKU-1","batch_no":"B1","pallets":1,"generate_box":true}`)

			require.Equal(t, tt.status, rec.Code)
			var body domain.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, tt.reason, body.Reason)
		})
	}
}

func TestGenerateHandler_WithoutToken(t *testing.T) {
	svc := new(MockSSCCService)
	handler, _ := authorized(t, sscc.NewHandler(svc, logger.Nop()).GenerateHandler, domain.RoleOperator)

	rec := send(handler, "", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerateHandler_MalformedJSON(t *testing.T) {
	svc := new(MockSSCCService)
	handler, tok := authorized(t, sscc.NewHandler(svc, logger.Nop()).GenerateHandler, domain.RoleOperator)

	rec := send(handler, tok, `{"sku":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestAddOnHandler(t *testing.T) {
	svc := new(MockSSCCService)
	svc.On("AddOnQuota", mock.Anything, "acme", int64(500)).Return(int64(568), nil).Once()
	handler, tok := authorized(t, sscc.NewHandler(svc, logger.Nop()).AddOnHandler, domain.RoleAdmin)

	rec := send(handler, tok, `{"quantity":500}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.AddOnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.AddOnResponse{CompanyID: "acme", Balance: 568}, got)
	svc.AssertExpectations(t)
}

func TestAddOnHandler_SameCompanyExplicit(t *testing.T) {
	svc := new(MockSSCCService)
	svc.On("AddOnQuota", mock.Anything, "acme", int64(10)).Return(int64(78), nil).Once()
	handler, tok := authorized(t, sscc.NewHandler(svc, logger.Nop()).AddOnHandler, domain.RoleAdmin)

	rec := send(handler, tok, `{"company_id":"acme","quantity":10}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestAddOnHandler_Fail_OtherCompany(t *testing.T) {
	svc := new(MockSSCCService)
	handler, tok := authorized(t, sscc.NewHandler(svc, logger.Nop()).AddOnHandler, domain.RoleAdmin)

	rec := send(handler, tok, `{"company_id":"concorrente","quantity":500}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "FORBIDDEN", body.Category)
	svc.AssertNotCalled(t, "AddOnQuota", mock.Anything, mock.Anything, mock.Anything)
}
