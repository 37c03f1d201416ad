package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
	ledgerErrors "github.com/Xario13/MoneyTracker/internal/ledger/errors"
)

func TestHandlePayBill_Success(t *testing.T) {
	mockAccounts := &MockAccountService{}
	mockBilling := &MockBillingService{
		Payment: &domain.Transaction{
			ID:       "t1",
			Title:    domain.CreditCardPaymentTitle,
			Category: domain.BillsCategory,
			Amount:   -80,
		},
	}
	handler := NewCardHandler(mockAccounts, mockBilling, respondJSON, respondError, nil)

	body := `{"amount":80,"sourceType":"savings"}`
	req := authedRequest(http.MethodPost, "/api/protected/ledger/cards/c1/payments", body)
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()

	handler.HandlePayBill(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "c1", mockBilling.LastCardID)
	assert.Equal(t, 80.0, mockBilling.LastAmount)
	assert.Equal(t, "savings", mockBilling.LastSourceType)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "success", response["status"])
	data, ok := response["data"].(map[string]interface{})
	assert.True(t, ok, "Expected 'data' to be a map in the response")
	assert.Equal(t, domain.CreditCardPaymentTitle, data["title"])
}

func TestHandlePayBill_InvalidAmount(t *testing.T) {
	mockBilling := &MockBillingService{Err: ledgerErrors.ErrInvalidPaymentAmount}
	handler := NewCardHandler(&MockAccountService{}, mockBilling, respondJSON, respondError, nil)

	body := `{"amount":0,"sourceType":"savings"}`
	req := authedRequest(http.MethodPost, "/api/protected/ledger/cards/c1/payments", body)
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()

	handler.HandlePayBill(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandlePayBill_InsufficientSource(t *testing.T) {
	mockBilling := &MockBillingService{Err: ledgerErrors.ErrInsufficientSourceFunds}
	handler := NewCardHandler(&MockAccountService{}, mockBilling, respondJSON, respondError, nil)

	body := `{"amount":50,"sourceType":"fund","sourceId":"f1"}`
	req := authedRequest(http.MethodPost, "/api/protected/ledger/cards/c1/payments", body)
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()

	handler.HandlePayBill(w, req)
	assert.Equal(t, http.StatusConflict, w.Result().StatusCode)
}

func TestHandleCreateCard_Success(t *testing.T) {
	mockAccounts := &MockAccountService{
		Card: &domain.CreditCard{ID: "c1", Name: "Visa", Balance: 150},
	}
	handler := NewCardHandler(mockAccounts, &MockBillingService{}, respondJSON, respondError, nil)

	body := `{"name":"Visa","balance":150,"billDate":"2026-10-01T00:00:00Z"}`
	req := authedRequest(http.MethodPost, "/api/protected/ledger/cards", body)
	w := httptest.NewRecorder()

	handler.HandleCreateCard(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "test-user-id", mockAccounts.LastUserID)
}

func TestHandleDeleteCard_MissingID(t *testing.T) {
	handler := NewCardHandler(&MockAccountService{}, &MockBillingService{}, respondJSON, respondError, nil)

	req := authedRequest(http.MethodDelete, "/api/protected/ledger/cards/", "")
	w := httptest.NewRecorder()

	handler.HandleDeleteCard(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}
