package domain

import (
	"math"
	"time"

	ledgerErrors "github.com/Xario13/MoneyTracker/internal/ledger/errors"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is a single income or expense entry. Amount is signed: negative
// for expenses, positive for income. Exactly one balance reflects it — a fund,
// a credit card, or the savings pool when neither reference is set.
type Transaction struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Notes        string    `json:"notes,omitempty"`
	Category     string    `json:"category"`
	Amount       float64   `json:"amount"`
	Type         string    `json:"type"`
	FundID       *string   `json:"fundId,omitempty"`
	CreditCardID *string   `json:"creditCardId,omitempty"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func IsValidTransactionType(transactionType string) bool {
	return transactionType == TypeIncome || transactionType == TypeExpense
}

// TargetKind enumerates the closed set of balances a transaction can hit.
type TargetKind int

const (
	TargetSavings TargetKind = iota
	TargetFund
	TargetCard
)

// Target identifies the one balance a transaction applies to. Using a tagged
// type instead of nullable-field inference lets the ledger's reversal and
// reapply logic switch on a closed set.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id,omitempty"`
}

func FundTarget(id string) Target { return Target{Kind: TargetFund, ID: id} }
func CardTarget(id string) Target { return Target{Kind: TargetCard, ID: id} }
func SavingsTarget() Target       { return Target{Kind: TargetSavings} }

// Target derives the transaction's target from its account references.
func (t *Transaction) Target() Target {
	switch {
	case t.FundID != nil:
		return FundTarget(*t.FundID)
	case t.CreditCardID != nil:
		return CardTarget(*t.CreditCardID)
	default:
		return SavingsTarget()
	}
}

// SetTarget writes the account references matching the given target.
func (t *Transaction) SetTarget(target Target) {
	t.FundID = nil
	t.CreditCardID = nil
	switch target.Kind {
	case TargetFund:
		id := target.ID
		t.FundID = &id
	case TargetCard:
		id := target.ID
		t.CreditCardID = &id
	}
}

func (t *Transaction) Validate() error {
	if !IsValidTransactionType(t.Type) {
		return ledgerErrors.NewValidationError("Type must be 'income' or 'expense'")
	}
	if t.Amount == 0 {
		return ledgerErrors.NewValidationError("Amount must not be zero")
	}
	if t.FundID != nil && t.CreditCardID != nil {
		return ledgerErrors.NewValidationError("At most one of fundId or creditCardId may be set")
	}
	if t.Type == TypeIncome && t.CreditCardID != nil {
		return ledgerErrors.NewValidationError("Income cannot target a credit card")
	}
	if len(t.Title) > 200 {
		return ledgerErrors.NewValidationError("Title must be of length less than 200")
	}
	return nil
}

// ClampToZero is the floor policy for balances that must never go negative,
// such as a credit card balance after a reversal. A shortfall is silently
// absorbed.
func ClampToZero(balance float64) float64 {
	if balance < 0 {
		return 0
	}
	return balance
}

// CapToRemaining is the named overshoot policy for goal allocation: amounts
// beyond what the goal still needs are dropped, not rejected.
func CapToRemaining(amount, remaining float64) float64 {
	return math.Min(amount, remaining)
}

// RoundToTwoDecimalPlaces normalizes a monetary amount.
func RoundToTwoDecimalPlaces(amount float64) float64 {
	return math.Round(amount*100) / 100
}
