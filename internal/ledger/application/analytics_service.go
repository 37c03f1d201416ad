package application

import (
	"math"
	"sort"
	"time"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
	"github.com/Xario13/MoneyTracker/internal/ledger/store"
)

// AnalyticsService derives read-only summaries from the ledger. Credit card
// bill payments are excluded from spending figures so paying a bill does not
// double-count expenses already charged to the card.
type AnalyticsService struct {
	store *store.Store
	now   func() time.Time
}

func NewAnalyticsService(s *store.Store) *AnalyticsService {
	return &AnalyticsService{store: s, now: time.Now}
}

// CategorySpending is one category's share of total spending.
type CategorySpending struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Summary bundles the dashboard figures into one response.
type Summary struct {
	TotalBalance    float64 `json:"totalBalance"`
	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlySpending float64 `json:"monthlySpending"`
	SavingsRate     float64 `json:"savingsRate"`
}

func isBillPayment(t domain.Transaction) bool {
	return t.Category == domain.BillsCategory && t.Title == domain.CreditCardPaymentTitle
}

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// TotalBalance sums fund balances and the savings pool. Credit card balances
// are debt, not holdings, and are excluded.
func (s *AnalyticsService) TotalBalance(userID string) (float64, error) {
	var total float64
	err := s.store.View(userID, func(data *store.UserData) error {
		for _, fund := range data.Funds {
			total += fund.Balance
		}
		total += data.FinancialData.SavingBalance
		return nil
	})
	return domain.RoundToTwoDecimalPlaces(total), err
}

// MonthlySpending sums this calendar month's expenses, optionally restricted
// to one fund. Bill payments are excluded.
func (s *AnalyticsService) MonthlySpending(userID, fundID string) (float64, error) {
	monthStart := startOfMonth(s.now())
	var total float64
	err := s.store.View(userID, func(data *store.UserData) error {
		for _, t := range data.Transactions {
			if t.Type != domain.TypeExpense || t.Date.Before(monthStart) || isBillPayment(t) {
				continue
			}
			if fundID != "" && (t.FundID == nil || *t.FundID != fundID) {
				continue
			}
			total += math.Abs(t.Amount)
		}
		return nil
	})
	return domain.RoundToTwoDecimalPlaces(total), err
}

// MonthlyIncome sums this calendar month's income transactions.
func (s *AnalyticsService) MonthlyIncome(userID string) (float64, error) {
	monthStart := startOfMonth(s.now())
	var total float64
	err := s.store.View(userID, func(data *store.UserData) error {
		for _, t := range data.Transactions {
			if t.Type == domain.TypeIncome && !t.Date.Before(monthStart) {
				total += t.Amount
			}
		}
		return nil
	})
	return domain.RoundToTwoDecimalPlaces(total), err
}

// CategorySpendingBreakdown groups all expense transactions by category with
// each category's percentage of the total. Optionally restricted to one fund.
func (s *AnalyticsService) CategorySpendingBreakdown(userID, fundID string) ([]CategorySpending, error) {
	totals := make(map[string]float64)
	var totalSpent float64
	err := s.store.View(userID, func(data *store.UserData) error {
		for _, t := range data.Transactions {
			if t.Type != domain.TypeExpense || isBillPayment(t) {
				continue
			}
			if fundID != "" && (t.FundID == nil || *t.FundID != fundID) {
				continue
			}
			amount := math.Abs(t.Amount)
			totals[t.Category] += amount
			totalSpent += amount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	breakdown := make([]CategorySpending, 0, len(totals))
	for category, amount := range totals {
		entry := CategorySpending{Category: category, Amount: domain.RoundToTwoDecimalPlaces(amount)}
		if totalSpent > 0 {
			entry.Percentage = amount / totalSpent * 100
		}
		breakdown = append(breakdown, entry)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Amount > breakdown[j].Amount
	})
	return breakdown, nil
}

// SavingsRate is the share of the configured monthly income left over after
// this month's spending. Zero when no monthly income is configured.
func (s *AnalyticsService) SavingsRate(userID string) (float64, error) {
	var income float64
	err := s.store.View(userID, func(data *store.UserData) error {
		income = data.FinancialData.MonthlyIncome
		return nil
	})
	if err != nil {
		return 0, err
	}
	if income <= 0 {
		return 0, nil
	}
	spending, err := s.MonthlySpending(userID, "")
	if err != nil {
		return 0, err
	}
	return (income - spending) / income * 100, nil
}

// GetSummary bundles the dashboard figures.
func (s *AnalyticsService) GetSummary(userID string) (Summary, error) {
	balance, err := s.TotalBalance(userID)
	if err != nil {
		return Summary{}, err
	}
	income, err := s.MonthlyIncome(userID)
	if err != nil {
		return Summary{}, err
	}
	spending, err := s.MonthlySpending(userID, "")
	if err != nil {
		return Summary{}, err
	}
	rate, err := s.SavingsRate(userID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		TotalBalance:    balance,
		MonthlyIncome:   income,
		MonthlySpending: spending,
		SavingsRate:     rate,
	}, nil
}

// ListCategories returns the built-in category set.
func (s *AnalyticsService) ListCategories() []domain.Category {
	return domain.DefaultCategories
}
