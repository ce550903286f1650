// internal/api/router_test.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruitcenter-events/internal/common/logger"
	purgenotifications "fruitcenter-events/internal/workers/admin/purge-notifications"
	verificationemail "fruitcenter-events/internal/workers/communication/verification-email"
	createorder "fruitcenter-events/internal/workers/payments/create-order"
	fruitadvisor "fruitcenter-events/internal/workers/suggestions/fruit-advisor"
)

type stubSuggestions struct {
	response *fruitadvisor.SuggestionResponse
	err      error
	calls    int
}

func (s *stubSuggestions) Execute(ctx context.Context, input *fruitadvisor.SuggestionRequest) (*fruitadvisor.SuggestionResponse, error) {
	s.calls++
	return s.response, s.err
}

type stubPayments struct {
	order map[string]interface{}
	err   error
	calls int
}

func (s *stubPayments) Execute(input *createorder.CreateOrderRequest) (map[string]interface{}, error) {
	s.calls++
	return s.order, s.err
}

type stubVerification struct {
	result *verificationemail.VerificationResult
	err    error
}

func (s *stubVerification) Execute(ctx context.Context, input *verificationemail.VerificationRequest) (*verificationemail.VerificationResult, error) {
	return s.result, s.err
}

type stubPurge struct {
	result *purgenotifications.PurgeResult
	err    error
}

func (s *stubPurge) Execute(ctx context.Context) (*purgenotifications.PurgeResult, error) {
	return s.result, s.err
}

type stubs struct {
	suggestions  *stubSuggestions
	payments     *stubPayments
	verification *stubVerification
	purge        *stubPurge
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &stubs{
		suggestions:  &stubSuggestions{},
		payments:     &stubPayments{},
		verification: &stubVerification{},
		purge:        &stubPurge{},
	}
	engine := NewRouter(Services{
		Suggestions:  s.suggestions,
		Payments:     s.payments,
		Verification: s.verification,
		Purge:        s.purge,
	}, logger.NewTestLogger(t))
	return engine, s
}

func doJSON(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSuggestions_Success(t *testing.T) {
	engine, s := newTestRouter(t)
	s.suggestions.response = &fruitadvisor.SuggestionResponse{
		Answer:    "Eat mangoes.",
		Success:   true,
		Timestamp: "2026-03-01T12:00:00Z",
	}

	w := doJSON(engine, http.MethodPost, "/suggestions",
		`{"orderSummary":"mangoes","peopleCount":2,"userMessage":"what next?"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp fruitadvisor.SuggestionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Eat mangoes.", resp.Answer)
	assert.True(t, resp.Success)
	assert.False(t, resp.Fallback)
}

func TestMalformedBodyRejectedWithoutSideEffects(t *testing.T) {
	engine, s := newTestRouter(t)

	for _, path := range []string{"/suggestions", "/payments/orders", "/auth/verification-code"} {
		w := doJSON(engine, http.MethodPost, path, `{"amount":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid request body")
	}
	assert.Equal(t, 0, s.suggestions.calls)
	assert.Equal(t, 0, s.payments.calls)
}

func TestSuggestions_MissingFields(t *testing.T) {
	engine, s := newTestRouter(t)
	s.suggestions.err = fruitadvisor.ErrMissingFields

	w := doJSON(engine, http.MethodPost, "/suggestions", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields")
}

func TestSuggestions_UpstreamFailure(t *testing.T) {
	engine, s := newTestRouter(t)
	s.suggestions.err = errors.New("connection refused")

	w := doJSON(engine, http.MethodPost, "/suggestions", `{"orderSummary":"x","userMessage":"y"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSuggestions_WrongMethodHasNoSideEffects(t *testing.T) {
	engine, s := newTestRouter(t)

	w := doJSON(engine, http.MethodGet, "/suggestions", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, 0, s.suggestions.calls)
}

func TestPayments_Success(t *testing.T) {
	engine, s := newTestRouter(t)
	s.payments.order = map[string]interface{}{"id": "order_1", "amount": float64(49900)}

	w := doJSON(engine, http.MethodPost, "/payments/orders", `{"amount":49900}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "order_1")
}

func TestPayments_MissingAmount(t *testing.T) {
	engine, s := newTestRouter(t)
	s.payments.err = createorder.ErrAmountRequired

	w := doJSON(engine, http.MethodPost, "/payments/orders", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Amount is required")
}

func TestPayments_ProviderFailure(t *testing.T) {
	engine, s := newTestRouter(t)
	s.payments.err = createorder.ErrProviderFailed

	w := doJSON(engine, http.MethodPost, "/payments/orders", `{"amount":100}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPayments_WrongMethodHasNoSideEffects(t *testing.T) {
	engine, s := newTestRouter(t)

	w := doJSON(engine, http.MethodPut, "/payments/orders", `{"amount":100}`)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, 0, s.payments.calls)
}

func TestVerification_Success(t *testing.T) {
	engine, s := newTestRouter(t)
	s.verification.result = &verificationemail.VerificationResult{Success: true}

	w := doJSON(engine, http.MethodPost, "/auth/verification-code",
		`{"email":"a@b.com","code":"123456"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestVerification_SendFailureReturnsBadGateway(t *testing.T) {
	engine, s := newTestRouter(t)
	s.verification.err = verificationemail.ErrEmailSendFailed

	w := doJSON(engine, http.MethodPost, "/auth/verification-code",
		`{"email":"a@b.com","code":"123456"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPurge_BothMethodsAccepted(t *testing.T) {
	engine, s := newTestRouter(t)
	s.purge.result = &purgenotifications.PurgeResult{
		Success: true,
		Message: "Successfully deleted 3 test notifications",
		Count:   3,
	}

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		w := doJSON(engine, method, "/admin/notifications/purge", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Successfully deleted 3 test notifications")
	}
}

func TestPurge_FailureReturnsServerError(t *testing.T) {
	engine, s := newTestRouter(t)
	s.purge.err = errors.New("database unavailable")

	w := doJSON(engine, http.MethodGet, "/admin/notifications/purge", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestMetricsEndpointExposed(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doJSON(engine, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
