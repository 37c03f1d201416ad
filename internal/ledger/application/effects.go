package application

import (
	"time"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
	ledgerErrors "github.com/Xario13/MoneyTracker/internal/ledger/errors"
	"github.com/Xario13/MoneyTracker/internal/ledger/store"
)

// changeSet accumulates the collections a mutation touched, deduplicated and
// in first-touch order so persistence stays deterministic.
type changeSet struct {
	seen  map[domain.Collection]bool
	order []domain.Collection
}

func newChangeSet() *changeSet {
	return &changeSet{seen: make(map[domain.Collection]bool)}
}

func (c *changeSet) add(collections ...domain.Collection) {
	for _, collection := range collections {
		if !c.seen[collection] {
			c.seen[collection] = true
			c.order = append(c.order, collection)
		}
	}
}

func (c *changeSet) collections() []domain.Collection {
	return c.order
}

func findFund(data *store.UserData, fundID string) *domain.Fund {
	for i := range data.Funds {
		if data.Funds[i].ID == fundID {
			return &data.Funds[i]
		}
	}
	return nil
}

func findCard(data *store.UserData, cardID string) *domain.CreditCard {
	for i := range data.CreditCards {
		if data.CreditCards[i].ID == cardID {
			return &data.CreditCards[i]
		}
	}
	return nil
}

func findSavingsGoal(data *store.UserData, goalID string) *domain.SavingsGoal {
	for i := range data.SavingsGoals {
		if data.SavingsGoals[i].ID == goalID {
			return &data.SavingsGoals[i]
		}
	}
	return nil
}

func findCreditGoal(data *store.UserData, cardID string) *domain.CreditGoal {
	for i := range data.CreditGoals {
		if data.CreditGoals[i].CreditCardID == cardID {
			return &data.CreditGoals[i]
		}
	}
	return nil
}

func findTransaction(data *store.UserData, transactionID string) *domain.Transaction {
	for i := range data.Transactions {
		if data.Transactions[i].ID == transactionID {
			return &data.Transactions[i]
		}
	}
	return nil
}

// syncCreditGoalTarget keeps the paired payoff tracker's target mirroring the
// card's outstanding balance.
func syncCreditGoalTarget(data *store.UserData, card *domain.CreditCard, now time.Time, changes *changeSet) {
	goal := findCreditGoal(data, card.ID)
	if goal == nil {
		return
	}
	goal.TargetAmount = card.Balance
	goal.UpdatedAt = now
	changes.add(domain.CollectionCreditGoals)
}

// resolveTarget confirms the account a transaction targets exists. Every
// target is resolved before a mutation touches any balance, so a bad target
// can never leave a half-applied transaction behind.
func resolveTarget(data *store.UserData, target domain.Target) error {
	switch target.Kind {
	case domain.TargetFund:
		if findFund(data, target.ID) == nil {
			return ledgerErrors.ErrFundNotFound
		}
	case domain.TargetCard:
		if findCard(data, target.ID) == nil {
			return ledgerErrors.ErrCardNotFound
		}
	}
	return nil
}

// applyEffect applies a transaction's signed amount to exactly one balance.
// direction is +1 to apply and -1 to reverse; reversal of a card charge is
// clamped at zero per the ClampToZero policy.
func applyEffect(data *store.UserData, transaction *domain.Transaction, direction float64, now time.Time, changes *changeSet) error {
	amount := transaction.Amount * direction
	target := transaction.Target()

	switch target.Kind {
	case domain.TargetFund:
		fund := findFund(data, target.ID)
		if fund == nil {
			return ledgerErrors.ErrFundNotFound
		}
		fund.Balance = domain.RoundToTwoDecimalPlaces(fund.Balance + amount)
		fund.UpdatedAt = now
		changes.add(domain.CollectionFunds)
	case domain.TargetCard:
		card := findCard(data, target.ID)
		if card == nil {
			return ledgerErrors.ErrCardNotFound
		}
		// A charge increases the amount owed, so the card moves opposite to
		// the signed transaction amount.
		card.Balance = domain.ClampToZero(domain.RoundToTwoDecimalPlaces(card.Balance - amount))
		card.UpdatedAt = now
		changes.add(domain.CollectionCreditCards)
		syncCreditGoalTarget(data, card, now, changes)
	case domain.TargetSavings:
		data.FinancialData.SavingBalance = domain.RoundToTwoDecimalPlaces(data.FinancialData.SavingBalance + amount)
		data.FinancialData.UpdatedAt = now
		changes.add(domain.CollectionFinancialData)
	}
	return nil
}

// rebalanceGoals enforces the allocation invariant after any savings change.
func rebalanceGoals(data *store.UserData, now time.Time, changes *changeSet) {
	goals, changed := domain.RebalanceGoals(data.SavingsGoals, data.FinancialData.SavingBalance, now)
	if changed {
		data.SavingsGoals = goals
		changes.add(domain.CollectionSavingsGoals)
	}
}
