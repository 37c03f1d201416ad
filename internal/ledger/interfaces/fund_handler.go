package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Xario13/MoneyTracker/internal/ledger/application"
	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
	ledgerErrors "github.com/Xario13/MoneyTracker/internal/ledger/errors"
)

type AccountServiceInterface interface {
	AddFund(userID string, input application.FundInput) (*domain.Fund, error)
	UpdateFund(userID, fundID string, updates application.FundUpdate) error
	DeleteFund(userID, fundID string) error
	ListFunds(userID string) ([]domain.Fund, error)
	AddCreditCard(userID string, input application.CreditCardInput) (*domain.CreditCard, error)
	UpdateCreditCard(userID, cardID string, updates application.CreditCardUpdate) error
	DeleteCreditCard(userID, cardID string) error
	ListCreditCards(userID string) ([]domain.CreditCard, error)
	UpdateFinancialData(userID string, updates application.FinancialDataUpdate) error
	GetFinancialData(userID string) (domain.FinancialData, error)
}

type FundHandler struct {
	service        AccountServiceInterface
	respondJSON    func(w http.ResponseWriter, status int, payload interface{})
	respondError   func(w http.ResponseWriter, status int, message string)
	persistWarning func(userID string) error
}

func NewFundHandler(
	service AccountServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
	persistWarning func(userID string) error,
) *FundHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Service and responders must not be nil")
		return nil
	}
	return &FundHandler{
		service:        service,
		respondJSON:    respondJSON,
		respondError:   respondError,
		persistWarning: persistWarning,
	}
}

func (h *FundHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case ledgerErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case ledgerErrors.IsConflictError(err):
		h.respondError(w, http.StatusConflict, err.Error())
	default:
		log.Println("Fund handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *FundHandler) HandleCreateFund(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req struct {
		Name    string  `json:"name"`
		Balance float64 `json:"balance"`
		Emoji   string  `json:"emoji"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fund, err := h.service.AddFund(userID, application.FundInput{
		Name:    req.Name,
		Balance: req.Balance,
		Emoji:   req.Emoji,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Fund successfully created.",
		"data":    fund,
	}))
}

func (h *FundHandler) HandleGetFunds(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	funds, err := h.service.ListFunds(userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   funds,
	})
}

func (h *FundHandler) HandleUpdateFund(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	fundID := r.PathValue("id")
	if fundID == "" {
		h.respondError(w, http.StatusBadRequest, "Fund ID is required")
		return
	}
	var req struct {
		Name    *string  `json:"name"`
		Balance *float64 `json:"balance"`
		Emoji   *string  `json:"emoji"`
		Color   *string  `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.UpdateFund(userID, fundID, application.FundUpdate{
		Name:    req.Name,
		Balance: req.Balance,
		Emoji:   req.Emoji,
		Color:   req.Color,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Fund successfully updated.",
	}))
}

func (h *FundHandler) HandleDeleteFund(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	fundID := r.PathValue("id")
	if fundID == "" {
		h.respondError(w, http.StatusBadRequest, "Fund ID is required")
		return
	}
	if err := h.service.DeleteFund(userID, fundID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Fund successfully deleted. Remaining balance moved to savings.",
	}))
}

func (h *FundHandler) HandleGetFinancialData(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	financialData, err := h.service.GetFinancialData(userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   financialData,
	})
}

func (h *FundHandler) HandleUpdateFinancialData(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req struct {
		SavingBalance        *float64   `json:"savingBalance"`
		MonthlySpendingLimit *float64   `json:"monthlySpendingLimit"`
		MonthlyIncome        *float64   `json:"monthlyIncome"`
		IncomeStartDate      *time.Time `json:"incomeStartDate"`
		HasRecurringIncome   *bool      `json:"hasRecurringIncome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.UpdateFinancialData(userID, application.FinancialDataUpdate{
		SavingBalance:        req.SavingBalance,
		MonthlySpendingLimit: req.MonthlySpendingLimit,
		MonthlyIncome:        req.MonthlyIncome,
		IncomeStartDate:      req.IncomeStartDate,
		HasRecurringIncome:   req.HasRecurringIncome,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Financial data successfully updated.",
	}))
}
