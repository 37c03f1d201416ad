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

type BillingServiceInterface interface {
	PayCreditCardBill(userID, cardID string, amount float64, sourceType, sourceID string) (*domain.Transaction, error)
}

type CardHandler struct {
	accounts       AccountServiceInterface
	billing        BillingServiceInterface
	respondJSON    func(w http.ResponseWriter, status int, payload interface{})
	respondError   func(w http.ResponseWriter, status int, message string)
	persistWarning func(userID string) error
}

func NewCardHandler(
	accounts AccountServiceInterface,
	billing BillingServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
	persistWarning func(userID string) error,
) *CardHandler {
	if accounts == nil || billing == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Services and responders must not be nil")
		return nil
	}
	return &CardHandler{
		accounts:       accounts,
		billing:        billing,
		respondJSON:    respondJSON,
		respondError:   respondError,
		persistWarning: persistWarning,
	}
}

func (h *CardHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case ledgerErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case ledgerErrors.IsConflictError(err):
		h.respondError(w, http.StatusConflict, err.Error())
	default:
		log.Println("Card handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *CardHandler) HandleCreateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req struct {
		Name     string    `json:"name"`
		Balance  float64   `json:"balance"`
		Limit    *float64  `json:"limit"`
		BillDate time.Time `json:"billDate"`
		Emoji    string    `json:"emoji"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	card, err := h.accounts.AddCreditCard(userID, application.CreditCardInput{
		Name:     req.Name,
		Balance:  req.Balance,
		Limit:    req.Limit,
		BillDate: req.BillDate,
		Emoji:    req.Emoji,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Credit card successfully created.",
		"data":    card,
	}))
}

func (h *CardHandler) HandleGetCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	cards, err := h.accounts.ListCreditCards(userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   cards,
	})
}

func (h *CardHandler) HandleUpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	cardID := r.PathValue("id")
	if cardID == "" {
		h.respondError(w, http.StatusBadRequest, "Card ID is required")
		return
	}
	var req struct {
		Name     *string    `json:"name"`
		Balance  *float64   `json:"balance"`
		Limit    *float64   `json:"limit"`
		BillDate *time.Time `json:"billDate"`
		Emoji    *string    `json:"emoji"`
		Color    *string    `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.accounts.UpdateCreditCard(userID, cardID, application.CreditCardUpdate{
		Name:     req.Name,
		Balance:  req.Balance,
		Limit:    req.Limit,
		BillDate: req.BillDate,
		Emoji:    req.Emoji,
		Color:    req.Color,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Credit card successfully updated.",
	}))
}

func (h *CardHandler) HandleDeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	cardID := r.PathValue("id")
	if cardID == "" {
		h.respondError(w, http.StatusBadRequest, "Card ID is required")
		return
	}
	if err := h.accounts.DeleteCreditCard(userID, cardID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Credit card successfully deleted.",
	}))
}

// HandlePayBill pays part or all of a card's outstanding balance from a fund
// or the savings pool.
func (h *CardHandler) HandlePayBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	cardID := r.PathValue("id")
	if cardID == "" {
		h.respondError(w, http.StatusBadRequest, "Card ID is required")
		return
	}
	var req struct {
		Amount     float64 `json:"amount"`
		SourceType string  `json:"sourceType"`
		SourceID   string  `json:"sourceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	payment, err := h.billing.PayCreditCardBill(userID, cardID, req.Amount, req.SourceType, req.SourceID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Bill payment successfully recorded.",
		"data":    payment,
	}))
}
