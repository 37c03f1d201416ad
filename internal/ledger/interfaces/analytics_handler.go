package interfaces

import (
	"log"
	"net/http"

	"github.com/Xario13/MoneyTracker/internal/ledger/application"
	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
)

type AnalyticsServiceInterface interface {
	GetSummary(userID string) (application.Summary, error)
	MonthlySpending(userID, fundID string) (float64, error)
	CategorySpendingBreakdown(userID, fundID string) ([]application.CategorySpending, error)
	ListCategories() []domain.Category
}

type AnalyticsHandler struct {
	service      AnalyticsServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewAnalyticsHandler(
	service AnalyticsServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *AnalyticsHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Service and responders must not be nil")
		return nil
	}
	return &AnalyticsHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *AnalyticsHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	summary, err := h.service.GetSummary(userID)
	if err != nil {
		log.Println("Analytics handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// HandleGetSpending returns this month's spending, optionally for one fund via
// the fundId query parameter.
func (h *AnalyticsHandler) HandleGetSpending(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	fundID := r.URL.Query().Get("fundId")
	spending, err := h.service.MonthlySpending(userID, fundID)
	if err != nil {
		log.Println("Analytics handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]float64{"monthlySpending": spending},
	})
}

func (h *AnalyticsHandler) HandleGetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	fundID := r.URL.Query().Get("fundId")
	breakdown, err := h.service.CategorySpendingBreakdown(userID, fundID)
	if err != nil {
		log.Println("Analytics handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   breakdown,
	})
}

func (h *AnalyticsHandler) HandleGetCategories(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   h.service.ListCategories(),
	})
}
