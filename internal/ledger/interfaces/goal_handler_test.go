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

func TestHandleAllocate_Success(t *testing.T) {
	mockService := &MockGoalService{}
	handler := NewGoalHandler(mockService, respondJSON, respondError, nil)

	body := `{"amount":300}`
	req := authedRequest(http.MethodPost, "/api/protected/ledger/goals/g1/allocate", body)
	req.SetPathValue("id", "g1")
	w := httptest.NewRecorder()

	handler.HandleAllocate(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, "g1", mockService.LastGoalID)
	assert.Equal(t, 300.0, mockService.LastAmount)
}

func TestHandleAllocate_GoalReached(t *testing.T) {
	mockService := &MockGoalService{Err: ledgerErrors.ErrGoalAlreadyReached}
	handler := NewGoalHandler(mockService, respondJSON, respondError, nil)

	body := `{"amount":10}`
	req := authedRequest(http.MethodPost, "/api/protected/ledger/goals/g1/allocate", body)
	req.SetPathValue("id", "g1")
	w := httptest.NewRecorder()

	handler.HandleAllocate(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "error", response["status"])
}

func TestHandleDeallocate_InvalidAmount(t *testing.T) {
	mockService := &MockGoalService{Err: ledgerErrors.ErrInvalidDeallocation}
	handler := NewGoalHandler(mockService, respondJSON, respondError, nil)

	body := `{"amount":-5}`
	req := authedRequest(http.MethodPost, "/api/protected/ledger/goals/g1/deallocate", body)
	req.SetPathValue("id", "g1")
	w := httptest.NewRecorder()

	handler.HandleDeallocate(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandleCreateGoal_Success(t *testing.T) {
	mockService := &MockGoalService{
		Goal: &domain.SavingsGoal{ID: "g1", Title: "Laptop", TargetAmount: 1000},
	}
	handler := NewGoalHandler(mockService, respondJSON, respondError, nil)

	body := `{"title":"Laptop","targetAmount":1000}`
	req := authedRequest(http.MethodPost, "/api/protected/ledger/goals", body)
	w := httptest.NewRecorder()

	handler.HandleCreateGoal(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	data, ok := response["data"].(map[string]interface{})
	assert.True(t, ok, "Expected 'data' to be a map in the response")
	assert.Equal(t, "Laptop", data["title"])
}

func TestHandleComplete_Success(t *testing.T) {
	mockService := &MockGoalService{}
	handler := NewGoalHandler(mockService, respondJSON, respondError, nil)

	req := authedRequest(http.MethodPost, "/api/protected/ledger/goals/g1/complete", "")
	req.SetPathValue("id", "g1")
	w := httptest.NewRecorder()

	handler.HandleComplete(w, req)
	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, "g1", mockService.CompletedID)
}

func TestHandleGetCreditGoals_Success(t *testing.T) {
	mockService := &MockGoalService{
		CreditGoals: []domain.CreditGoal{
			{ID: "credit-goal-c1", CreditCardID: "c1", TargetAmount: 120, CurrentAmount: 80},
		},
	}
	handler := NewGoalHandler(mockService, respondJSON, respondError, nil)

	req := authedRequest(http.MethodGet, "/api/protected/ledger/credit-goals", "")
	w := httptest.NewRecorder()

	handler.HandleGetCreditGoals(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	data, ok := response["data"].([]interface{})
	assert.True(t, ok, "Expected 'data' to be an array in the response")
	assert.Len(t, data, 1)
}
