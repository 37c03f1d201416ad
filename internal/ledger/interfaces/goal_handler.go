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

type GoalServiceInterface interface {
	AddSavingsGoal(userID string, input application.SavingsGoalInput) (*domain.SavingsGoal, error)
	UpdateSavingsGoal(userID, goalID string, updates application.SavingsGoalUpdate) error
	DeleteSavingsGoal(userID, goalID string) error
	AddMoneyToGoal(userID, goalID string, amount float64) error
	DeallocateFromGoal(userID, goalID string, amount float64) error
	MarkGoalCompleted(userID, goalID string) error
	ListSavingsGoals(userID string) ([]domain.SavingsGoal, error)
	ListCreditGoals(userID string) ([]domain.CreditGoal, error)
}

type GoalHandler struct {
	service        GoalServiceInterface
	respondJSON    func(w http.ResponseWriter, status int, payload interface{})
	respondError   func(w http.ResponseWriter, status int, message string)
	persistWarning func(userID string) error
}

func NewGoalHandler(
	service GoalServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
	persistWarning func(userID string) error,
) *GoalHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Service and responders must not be nil")
		return nil
	}
	return &GoalHandler{
		service:        service,
		respondJSON:    respondJSON,
		respondError:   respondError,
		persistWarning: persistWarning,
	}
}

func (h *GoalHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case ledgerErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case ledgerErrors.IsConflictError(err):
		h.respondError(w, http.StatusConflict, err.Error())
	default:
		log.Println("Goal handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *GoalHandler) HandleCreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req struct {
		Title        string    `json:"title"`
		TargetAmount float64   `json:"targetAmount"`
		Emoji        string    `json:"emoji"`
		Deadline     time.Time `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.service.AddSavingsGoal(userID, application.SavingsGoalInput{
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		Emoji:        req.Emoji,
		Deadline:     req.Deadline,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal successfully created.",
		"data":    goal,
	}))
}

func (h *GoalHandler) HandleGetGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goals, err := h.service.ListSavingsGoals(userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   goals,
	})
}

func (h *GoalHandler) HandleGetCreditGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goals, err := h.service.ListCreditGoals(userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   goals,
	})
}

func (h *GoalHandler) HandleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID := r.PathValue("id")
	if goalID == "" {
		h.respondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}
	var req struct {
		Title        *string    `json:"title"`
		TargetAmount *float64   `json:"targetAmount"`
		Emoji        *string    `json:"emoji"`
		Deadline     *time.Time `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.UpdateSavingsGoal(userID, goalID, application.SavingsGoalUpdate{
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		Emoji:        req.Emoji,
		Deadline:     req.Deadline,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal successfully updated.",
	}))
}

func (h *GoalHandler) HandleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID := r.PathValue("id")
	if goalID == "" {
		h.respondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}
	if err := h.service.DeleteSavingsGoal(userID, goalID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal successfully deleted.",
	}))
}

type goalAmountRequest struct {
	Amount float64 `json:"amount"`
}

func (h *GoalHandler) HandleAllocate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID := r.PathValue("id")
	if goalID == "" {
		h.respondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}
	var req goalAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.service.AddMoneyToGoal(userID, goalID, req.Amount); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Money successfully allocated to goal.",
	}))
}

func (h *GoalHandler) HandleDeallocate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID := r.PathValue("id")
	if goalID == "" {
		h.respondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}
	var req goalAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.service.DeallocateFromGoal(userID, goalID, req.Amount); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Money successfully deallocated from goal.",
	}))
}

func (h *GoalHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID := r.PathValue("id")
	if goalID == "" {
		h.respondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}
	if err := h.service.MarkGoalCompleted(userID, goalID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, withPersistWarning(h.persistWarning, userID, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal marked as completed.",
	}))
}
