package domain

import (
	"math"
	"time"
)

// SavingsGoal claims a portion of the single savings pool. CurrentAmount is an
// allocation claim, not a separate balance: the invariant is that the sum of
// all CurrentAmount values never exceeds FinancialData.SavingBalance.
type SavingsGoal struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	Emoji         string    `json:"emoji"`
	Color         string    `json:"color"`
	Deadline      time.Time `json:"deadline"`
	Completed     bool      `json:"completed,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreditGoal is the auto-managed payoff tracker paired 1:1 with a credit card.
// TargetAmount mirrors the card's outstanding balance; CurrentAmount is the
// cumulative amount paid toward it. Not independently user-editable.
type CreditGoal struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	CreditCardID  string    `json:"creditCardId"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	Deadline      time.Time `json:"deadline"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TotalAllocated sums the allocation claims of all goals, completed included.
// Completed goals keep their claim until explicitly deleted.
func TotalAllocated(goals []SavingsGoal) float64 {
	var total float64
	for _, g := range goals {
		total += g.CurrentAmount
	}
	return total
}

// RebalanceGoals scales every goal's allocation down proportionally when the
// savings balance has shrunk below the total allocated. Each allocation is
// floored so the new total never overshoots the balance, and the scaling
// ratio is held in [0, 1] so no allocation ever goes negative. Returns the
// goals unchanged (and false) when no rebalance is needed.
func RebalanceGoals(goals []SavingsGoal, balance float64, now time.Time) ([]SavingsGoal, bool) {
	if len(goals) == 0 {
		return goals, false
	}
	totalAllocated := TotalAllocated(goals)
	if totalAllocated <= balance {
		return goals, false
	}

	ratio := balance / totalAllocated
	if ratio < 0 {
		ratio = 0
	}
	rebalanced := make([]SavingsGoal, len(goals))
	for i, g := range goals {
		g.CurrentAmount = math.Floor(g.CurrentAmount * ratio)
		g.UpdatedAt = now
		rebalanced[i] = g
	}
	return rebalanced, true
}
