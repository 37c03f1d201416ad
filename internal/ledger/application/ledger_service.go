package application

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
	ledgerErrors "github.com/Xario13/MoneyTracker/internal/ledger/errors"
	"github.com/Xario13/MoneyTracker/internal/ledger/store"
)

// TransactionInput describes a transaction as submitted by the caller. Amount
// is unsigned; the ledger applies the sign from Type. Target must be explicit:
// an expense routed to savings is only admitted when the caller says so.
type TransactionInput struct {
	Title    string
	Notes    string
	Category string
	Amount   float64
	Type     string
	Target   domain.Target
	Date     time.Time
}

// FundingSource describes an account that could cover an expense overage.
type FundingSource struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	Type    string  `json:"type"`
}

// AddResult is the structured outcome of AddTransaction. When an expense
// exceeds the target fund's balance, no state is mutated and the result
// carries the overage plus the accounts the caller could re-route it to.
type AddResult struct {
	Success           bool
	NeedsConfirmation bool
	Overage           float64
	AvailableSources  []FundingSource
	Transaction       *domain.Transaction
}

// LedgerService applies, reverses, and re-applies transaction effects against
// the account store. Edits always run as reverse-then-reapply, even when the
// target is unchanged, so amount edits need no same-account special case.
type LedgerService struct {
	store *store.Store
	now   func() time.Time
}

func NewLedgerService(s *store.Store) *LedgerService {
	return &LedgerService{store: s, now: time.Now}
}

func (s *LedgerService) buildTransaction(userID string, input TransactionInput, now time.Time) (*domain.Transaction, error) {
	amount := domain.RoundToTwoDecimalPlaces(math.Abs(input.Amount))
	if input.Type == domain.TypeExpense {
		amount = -amount
	}
	date := input.Date
	if date.IsZero() {
		date = now
	}
	transaction := &domain.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     input.Title,
		Notes:     input.Notes,
		Category:  input.Category,
		Amount:    amount,
		Type:      input.Type,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	transaction.SetTarget(input.Target)
	if err := transaction.Validate(); err != nil {
		return nil, err
	}
	return transaction, nil
}

// AddTransaction admits the transaction all-or-nothing. An expense against a
// fund or the savings pool that cannot afford it returns a needs-confirmation
// result without touching any balance; an expense against a credit card is
// always admitted. The target is resolved before any state changes.
func (s *LedgerService) AddTransaction(userID string, input TransactionInput) (AddResult, error) {
	now := s.now()
	transaction, err := s.buildTransaction(userID, input, now)
	if err != nil {
		return AddResult{}, err
	}

	var result AddResult
	err = s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		if err := resolveTarget(data, input.Target); err != nil {
			return nil, err
		}
		amount := math.Abs(transaction.Amount)
		if transaction.Type == domain.TypeExpense {
			switch input.Target.Kind {
			case domain.TargetFund:
				fund := findFund(data, input.Target.ID)
				if amount > fund.Balance {
					result = AddResult{
						NeedsConfirmation: true,
						Overage:           domain.RoundToTwoDecimalPlaces(amount - fund.Balance),
						AvailableSources:  availableSources(data, fund.ID, false),
					}
					return nil, nil
				}
			case domain.TargetSavings:
				if amount > data.FinancialData.SavingBalance {
					result = AddResult{
						NeedsConfirmation: true,
						Overage:           domain.RoundToTwoDecimalPlaces(amount - data.FinancialData.SavingBalance),
						AvailableSources:  availableSources(data, "", true),
					}
					return nil, nil
				}
			}
		}

		changes := newChangeSet()
		data.Transactions = append([]domain.Transaction{*transaction}, data.Transactions...)
		changes.add(domain.CollectionTransactions)
		if err := applyEffect(data, transaction, +1, now, changes); err != nil {
			return nil, err
		}
		rebalanceGoals(data, now, changes)
		result = AddResult{Success: true, Transaction: transaction}
		return changes.collections(), nil
	})
	if err != nil {
		return AddResult{}, err
	}
	return result, nil
}

// TransactionUpdate holds the fields an edit may change; nil means unchanged.
type TransactionUpdate struct {
	Title    *string
	Notes    *string
	Category *string
	Amount   *float64
	Type     *string
	Target   *domain.Target
	Date     *time.Time
}

// UpdateTransaction reverses the original transaction's effect, replaces the
// record with the merged updates, then applies the new effect against the new
// target. Both phases always run.
func (s *LedgerService) UpdateTransaction(userID, transactionID string, updates TransactionUpdate) (*domain.Transaction, error) {
	now := s.now()
	var updated *domain.Transaction
	err := s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		original := findTransaction(data, transactionID)
		if original == nil {
			return nil, ledgerErrors.ErrTransactionNotFound
		}

		merged := *original
		if updates.Title != nil {
			merged.Title = *updates.Title
		}
		if updates.Notes != nil {
			merged.Notes = *updates.Notes
		}
		if updates.Category != nil {
			merged.Category = *updates.Category
		}
		if updates.Type != nil {
			merged.Type = *updates.Type
		}
		if updates.Amount != nil {
			merged.Amount = domain.RoundToTwoDecimalPlaces(math.Abs(*updates.Amount))
		} else {
			merged.Amount = math.Abs(merged.Amount)
		}
		if merged.Type == domain.TypeExpense {
			merged.Amount = -merged.Amount
		}
		if updates.Target != nil {
			merged.SetTarget(*updates.Target)
		}
		if updates.Date != nil {
			merged.Date = *updates.Date
		}
		merged.UpdatedAt = now
		if err := merged.Validate(); err != nil {
			return nil, err
		}
		// Both the old and the new target must resolve before either phase
		// touches a balance.
		if err := resolveTarget(data, original.Target()); err != nil {
			return nil, err
		}
		if err := resolveTarget(data, merged.Target()); err != nil {
			return nil, err
		}

		changes := newChangeSet()
		if err := applyEffect(data, original, -1, now, changes); err != nil {
			return nil, err
		}
		*original = merged
		changes.add(domain.CollectionTransactions)
		if err := applyEffect(data, original, +1, now, changes); err != nil {
			return nil, err
		}
		rebalanceGoals(data, now, changes)
		updated = original
		return changes.collections(), nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTransaction reverses the transaction's effect and removes the record.
func (s *LedgerService) DeleteTransaction(userID, transactionID string) error {
	now := s.now()
	return s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		transaction := findTransaction(data, transactionID)
		if transaction == nil {
			return nil, ledgerErrors.ErrTransactionNotFound
		}

		changes := newChangeSet()
		if err := applyEffect(data, transaction, -1, now, changes); err != nil {
			return nil, err
		}
		remaining := make([]domain.Transaction, 0, len(data.Transactions)-1)
		for _, t := range data.Transactions {
			if t.ID != transactionID {
				remaining = append(remaining, t)
			}
		}
		data.Transactions = remaining
		changes.add(domain.CollectionTransactions)
		rebalanceGoals(data, now, changes)
		return changes.collections(), nil
	})
}

// ListTransactions returns the user's transactions, newest first.
func (s *LedgerService) ListTransactions(userID string) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := s.store.View(userID, func(data *store.UserData) error {
		transactions = append([]domain.Transaction(nil), data.Transactions...)
		return nil
	})
	return transactions, err
}

func availableSources(data *store.UserData, excludeFundID string, excludeSavings bool) []FundingSource {
	var sources []FundingSource
	for _, fund := range data.Funds {
		if fund.ID != excludeFundID && fund.Balance > 0 {
			sources = append(sources, FundingSource{
				ID:      fund.ID,
				Name:    fund.Name,
				Balance: fund.Balance,
				Type:    "fund",
			})
		}
	}
	if !excludeSavings && data.FinancialData.SavingBalance > 0 {
		sources = append(sources, FundingSource{
			ID:      "savings",
			Name:    "Savings",
			Balance: data.FinancialData.SavingBalance,
			Type:    "savings",
		})
	}
	return sources
}
