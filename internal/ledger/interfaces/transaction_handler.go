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

type TransactionServiceInterface interface {
	AddTransaction(userID string, input application.TransactionInput) (application.AddResult, error)
	UpdateTransaction(userID, transactionID string, updates application.TransactionUpdate) (*domain.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	ListTransactions(userID string) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	service        TransactionServiceInterface
	respondJSON    func(w http.ResponseWriter, status int, payload interface{})
	respondError   func(w http.ResponseWriter, status int, message string)
	persistWarning func(userID string) error
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
	persistWarning func(userID string) error,
) *TransactionHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Service and responders must not be nil")
		return nil
	}
	return &TransactionHandler{
		service:        service,
		respondJSON:    respondJSON,
		respondError:   respondError,
		persistWarning: persistWarning,
	}
}

// transactionRequest carries the explicit target: a fund, a card, or savings.
// An expense with none of the three is rejected rather than silently routed.
type transactionRequest struct {
	Title        string     `json:"title"`
	Notes        string     `json:"notes"`
	Category     string     `json:"category"`
	Amount       float64    `json:"amount"`
	Type         string     `json:"type"`
	FundID       *string    `json:"fundId"`
	CreditCardID *string    `json:"creditCardId"`
	ToSavings    bool       `json:"toSavings"`
	Date         *time.Time `json:"date"`
}

func (req *transactionRequest) target() (domain.Target, error) {
	switch {
	case req.FundID != nil && req.CreditCardID != nil:
		return domain.Target{}, ledgerErrors.NewValidationError("At most one of fundId or creditCardId may be set")
	case req.FundID != nil:
		return domain.FundTarget(*req.FundID), nil
	case req.CreditCardID != nil:
		return domain.CardTarget(*req.CreditCardID), nil
	case req.ToSavings:
		return domain.SavingsTarget(), nil
	case req.Type == domain.TypeIncome:
		return domain.SavingsTarget(), nil
	default:
		return domain.Target{}, ledgerErrors.ErrExpenseRequiresTarget
	}
}

func (h *TransactionHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case ledgerErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case ledgerErrors.IsConflictError(err):
		h.respondError(w, http.StatusConflict, err.Error())
	default:
		log.Println("Transaction handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *TransactionHandler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	target, err := req.target()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := application.TransactionInput{
		Title:    req.Title,
		Notes:    req.Notes,
		Category: req.Category,
		Amount:   req.Amount,
		Type:     req.Type,
		Target:   target,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	result, err := h.service.AddTransaction(userID, input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if result.NeedsConfirmation {
		h.respondJSON(w, http.StatusConflict, map[string]interface{}{
			"status": "needs_confirmation",
			"data": map[string]interface{}{
				"overage":          result.Overage,
				"availableSources": result.AvailableSources,
			},
		})
		return
	}

	h.respondJSON(w, http.StatusCreated, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    result.Transaction,
	}))
}

func (h *TransactionHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactions, err := h.service.ListTransactions(userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transactions,
	})
}

type transactionUpdateRequest struct {
	Title        *string    `json:"title"`
	Notes        *string    `json:"notes"`
	Category     *string    `json:"category"`
	Amount       *float64   `json:"amount"`
	Type         *string    `json:"type"`
	FundID       *string    `json:"fundId"`
	CreditCardID *string    `json:"creditCardId"`
	ToSavings    *bool      `json:"toSavings"`
	Date         *time.Time `json:"date"`
}

func (req *transactionUpdateRequest) target() (*domain.Target, error) {
	if req.FundID == nil && req.CreditCardID == nil && req.ToSavings == nil {
		return nil, nil
	}
	if req.FundID != nil && req.CreditCardID != nil {
		return nil, ledgerErrors.NewValidationError("At most one of fundId or creditCardId may be set")
	}
	var target domain.Target
	switch {
	case req.FundID != nil:
		target = domain.FundTarget(*req.FundID)
	case req.CreditCardID != nil:
		target = domain.CardTarget(*req.CreditCardID)
	default:
		target = domain.SavingsTarget()
	}
	return &target, nil
}

func (h *TransactionHandler) HandleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactionID := r.PathValue("id")
	if transactionID == "" {
		h.respondError(w, http.StatusBadRequest, "Transaction ID is required")
		return
	}
	var req transactionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	target, err := req.target()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.service.UpdateTransaction(userID, transactionID, application.TransactionUpdate{
		Title:    req.Title,
		Notes:    req.Notes,
		Category: req.Category,
		Amount:   req.Amount,
		Type:     req.Type,
		Target:   target,
		Date:     req.Date,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully updated.",
		"data":    updated,
	}))
}

func (h *TransactionHandler) HandleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactionID := r.PathValue("id")
	if transactionID == "" {
		h.respondError(w, http.StatusBadRequest, "Transaction ID is required")
		return
	}
	if err := h.service.DeleteTransaction(userID, transactionID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully deleted.",
	}))
}
