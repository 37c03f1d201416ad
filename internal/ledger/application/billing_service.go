package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
	ledgerErrors "github.com/Xario13/MoneyTracker/internal/ledger/errors"
	"github.com/Xario13/MoneyTracker/internal/ledger/store"
)

// SourceFund and SourceSavings name the accounts a bill payment can draw from.
const (
	SourceFund    = "fund"
	SourceSavings = "savings"
)

// BillingService pays credit card bills out of a fund or the savings pool.
type BillingService struct {
	store *store.Store
	now   func() time.Time
}

func NewBillingService(s *store.Store) *BillingService {
	return &BillingService{store: s, now: time.Now}
}

// PayCreditCardBill moves amount from the source account onto the card's
// outstanding balance. All checks run before any balance moves, so a failed
// payment leaves every account untouched. The payment is recorded as a
// synthetic expense transaction and counted toward the card's payoff tracker.
func (s *BillingService) PayCreditCardBill(userID, cardID string, amount float64, sourceType, sourceID string) (*domain.Transaction, error) {
	amount = domain.RoundToTwoDecimalPlaces(amount)
	now := s.now()
	var payment *domain.Transaction
	err := s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		card := findCard(data, cardID)
		if card == nil {
			return nil, ledgerErrors.ErrCardNotFound
		}
		if amount <= 0 || amount > card.Balance {
			return nil, ledgerErrors.ErrInvalidPaymentAmount
		}

		var sourceFund *domain.Fund
		switch sourceType {
		case SourceFund:
			sourceFund = findFund(data, sourceID)
			if sourceFund == nil {
				return nil, ledgerErrors.ErrFundNotFound
			}
			if sourceFund.Balance < amount {
				return nil, ledgerErrors.ErrInsufficientSourceFunds
			}
		case SourceSavings:
			if data.FinancialData.SavingBalance < amount {
				return nil, ledgerErrors.ErrInsufficientSourceFunds
			}
		default:
			return nil, ledgerErrors.NewValidationError("Source type must be fund or savings")
		}

		changes := newChangeSet()
		card.Balance = domain.ClampToZero(domain.RoundToTwoDecimalPlaces(card.Balance - amount))
		card.UpdatedAt = now
		changes.add(domain.CollectionCreditCards)
		syncCreditGoalTarget(data, card, now, changes)

		transaction := domain.Transaction{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     domain.CreditCardPaymentTitle,
			Category:  domain.BillsCategory,
			Amount:    -amount,
			Type:      domain.TypeExpense,
			Date:      now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if sourceFund != nil {
			sourceFund.Balance = domain.RoundToTwoDecimalPlaces(sourceFund.Balance - amount)
			sourceFund.UpdatedAt = now
			changes.add(domain.CollectionFunds)
			fundID := sourceFund.ID
			transaction.FundID = &fundID
		} else {
			data.FinancialData.SavingBalance = domain.RoundToTwoDecimalPlaces(
				data.FinancialData.SavingBalance - amount)
			data.FinancialData.UpdatedAt = now
			changes.add(domain.CollectionFinancialData)
			rebalanceGoals(data, now, changes)
		}

		data.Transactions = append([]domain.Transaction{transaction}, data.Transactions...)
		changes.add(domain.CollectionTransactions)

		if goal := findCreditGoal(data, card.ID); goal != nil {
			goal.CurrentAmount = domain.RoundToTwoDecimalPlaces(goal.CurrentAmount + amount)
			goal.UpdatedAt = now
			changes.add(domain.CollectionCreditGoals)
		}

		payment = &data.Transactions[0]
		return changes.collections(), nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
