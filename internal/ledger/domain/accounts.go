package domain

import "time"

// Fund is a named cash account, e.g. "Main Wallet".
type Fund struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Balance   float64   `json:"balance"`
	Color     string    `json:"color"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreditCard tracks an outstanding balance owed. The balance only grows
// through expenses charged to the card and only shrinks through bill payments.
type CreditCard struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	Balance   float64    `json:"balance"`
	Limit     *float64   `json:"limit,omitempty"`
	BillDate  time.Time  `json:"billDate"`
	Color     string     `json:"color"`
	Emoji     string     `json:"emoji,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FinancialData is the per-user singleton holding the pooled savings balance
// that savings goals claim allocations from.
type FinancialData struct {
	UserID               string     `json:"userId"`
	SavingBalance        float64    `json:"savingBalance"`
	MonthlySpendingLimit float64    `json:"monthlySpendingLimit"`
	MonthlyIncome        float64    `json:"monthlyIncome,omitempty"`
	IncomeStartDate      *time.Time `json:"incomeStartDate,omitempty"`
	HasRecurringIncome   bool       `json:"hasRecurringIncome"`
	LastIncomeAppliedAt  *time.Time `json:"lastIncomeAppliedAt,omitempty"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}
