package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
	ledgerErrors "github.com/Xario13/MoneyTracker/internal/ledger/errors"
	"github.com/Xario13/MoneyTracker/internal/ledger/store"
)

// AccountService manages funds, credit cards, and the per-user financial data
// singleton.
type AccountService struct {
	store *store.Store
	now   func() time.Time
}

func NewAccountService(s *store.Store) *AccountService {
	return &AccountService{store: s, now: time.Now}
}

// FundInput describes a new fund. Color is assigned from the palette.
type FundInput struct {
	Name    string
	Balance float64
	Emoji   string
}

func (s *AccountService) AddFund(userID string, input FundInput) (*domain.Fund, error) {
	if input.Name == "" {
		return nil, ledgerErrors.NewValidationError("Name is required")
	}
	if input.Balance < 0 {
		return nil, ledgerErrors.NewValidationError("Balance cannot be negative")
	}

	now := s.now()
	var created *domain.Fund
	err := s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		fund := domain.Fund{
			ID:        uuid.NewString(),
			UserID:    userID,
			Name:      input.Name,
			Balance:   domain.RoundToTwoDecimalPlaces(input.Balance),
			Color:     nextColor(fundColors(data.Funds)),
			Emoji:     input.Emoji,
			CreatedAt: now,
			UpdatedAt: now,
		}
		data.Funds = append(data.Funds, fund)
		created = &data.Funds[len(data.Funds)-1]
		return []domain.Collection{domain.CollectionFunds}, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FundUpdate holds the editable fund fields; nil means unchanged.
type FundUpdate struct {
	Name    *string
	Balance *float64
	Emoji   *string
	Color   *string
}

func (s *AccountService) UpdateFund(userID, fundID string, updates FundUpdate) error {
	now := s.now()
	return s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		fund := findFund(data, fundID)
		if fund == nil {
			return nil, ledgerErrors.ErrFundNotFound
		}
		if updates.Name != nil {
			fund.Name = *updates.Name
		}
		if updates.Balance != nil {
			if *updates.Balance < 0 {
				return nil, ledgerErrors.NewValidationError("Balance cannot be negative")
			}
			fund.Balance = domain.RoundToTwoDecimalPlaces(*updates.Balance)
		}
		if updates.Emoji != nil {
			fund.Emoji = *updates.Emoji
		}
		if updates.Color != nil {
			fund.Color = *updates.Color
		}
		fund.UpdatedAt = now
		return []domain.Collection{domain.CollectionFunds}, nil
	})
}

// DeleteFund removes the fund and transfers any remaining balance into the
// savings pool so no money disappears from the ledger.
func (s *AccountService) DeleteFund(userID, fundID string) error {
	now := s.now()
	return s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		fund := findFund(data, fundID)
		if fund == nil {
			return nil, ledgerErrors.ErrFundNotFound
		}

		changes := newChangeSet()
		if fund.Balance > 0 {
			data.FinancialData.SavingBalance = domain.RoundToTwoDecimalPlaces(
				data.FinancialData.SavingBalance + fund.Balance)
			data.FinancialData.UpdatedAt = now
			changes.add(domain.CollectionFinancialData)
		}
		remaining := make([]domain.Fund, 0, len(data.Funds)-1)
		for _, f := range data.Funds {
			if f.ID != fundID {
				remaining = append(remaining, f)
			}
		}
		data.Funds = remaining
		changes.add(domain.CollectionFunds)
		return changes.collections(), nil
	})
}

func (s *AccountService) ListFunds(userID string) ([]domain.Fund, error) {
	var funds []domain.Fund
	err := s.store.View(userID, func(data *store.UserData) error {
		funds = append([]domain.Fund(nil), data.Funds...)
		return nil
	})
	return funds, err
}

// CreditCardInput describes a new credit card. Balance is the amount already
// owed on it at the time it is added.
type CreditCardInput struct {
	Name     string
	Balance  float64
	Limit    *float64
	BillDate time.Time
	Emoji    string
}

// AddCreditCard creates the card together with its paired payoff tracker. The
// tracker targets the card's current balance and starts at zero paid.
func (s *AccountService) AddCreditCard(userID string, input CreditCardInput) (*domain.CreditCard, error) {
	if input.Name == "" {
		return nil, ledgerErrors.NewValidationError("Name is required")
	}
	if input.Balance < 0 {
		return nil, ledgerErrors.NewValidationError("Balance cannot be negative")
	}

	now := s.now()
	var created *domain.CreditCard
	err := s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		card := domain.CreditCard{
			ID:        uuid.NewString(),
			UserID:    userID,
			Name:      input.Name,
			Balance:   domain.RoundToTwoDecimalPlaces(input.Balance),
			Limit:     input.Limit,
			BillDate:  input.BillDate,
			Color:     nextColor(cardColors(data.CreditCards)),
			Emoji:     input.Emoji,
			CreatedAt: now,
			UpdatedAt: now,
		}
		data.CreditCards = append(data.CreditCards, card)
		created = &data.CreditCards[len(data.CreditCards)-1]

		data.CreditGoals = append(data.CreditGoals, domain.CreditGoal{
			ID:           "credit-goal-" + card.ID,
			UserID:       userID,
			CreditCardID: card.ID,
			TargetAmount: card.Balance,
			Deadline:     card.BillDate,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		return []domain.Collection{domain.CollectionCreditCards, domain.CollectionCreditGoals}, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreditCardUpdate holds the editable card fields; nil means unchanged.
type CreditCardUpdate struct {
	Name     *string
	Balance  *float64
	Limit    *float64
	BillDate *time.Time
	Emoji    *string
	Color    *string
}

func (s *AccountService) UpdateCreditCard(userID, cardID string, updates CreditCardUpdate) error {
	now := s.now()
	return s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		card := findCard(data, cardID)
		if card == nil {
			return nil, ledgerErrors.ErrCardNotFound
		}

		changes := newChangeSet()
		changes.add(domain.CollectionCreditCards)
		if updates.Name != nil {
			card.Name = *updates.Name
		}
		if updates.Balance != nil {
			if *updates.Balance < 0 {
				return nil, ledgerErrors.NewValidationError("Balance cannot be negative")
			}
			card.Balance = domain.RoundToTwoDecimalPlaces(*updates.Balance)
			syncCreditGoalTarget(data, card, now, changes)
		}
		if updates.Limit != nil {
			card.Limit = updates.Limit
		}
		if updates.BillDate != nil {
			card.BillDate = *updates.BillDate
			if goal := findCreditGoal(data, card.ID); goal != nil {
				goal.Deadline = *updates.BillDate
				goal.UpdatedAt = now
				changes.add(domain.CollectionCreditGoals)
			}
		}
		if updates.Emoji != nil {
			card.Emoji = *updates.Emoji
		}
		if updates.Color != nil {
			card.Color = *updates.Color
		}
		card.UpdatedAt = now
		return changes.collections(), nil
	})
}

// DeleteCreditCard removes the card and its paired payoff tracker.
func (s *AccountService) DeleteCreditCard(userID, cardID string) error {
	return s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		if findCard(data, cardID) == nil {
			return nil, ledgerErrors.ErrCardNotFound
		}
		cards := make([]domain.CreditCard, 0, len(data.CreditCards)-1)
		for _, c := range data.CreditCards {
			if c.ID != cardID {
				cards = append(cards, c)
			}
		}
		data.CreditCards = cards

		goals := make([]domain.CreditGoal, 0, len(data.CreditGoals))
		for _, g := range data.CreditGoals {
			if g.CreditCardID != cardID {
				goals = append(goals, g)
			}
		}
		data.CreditGoals = goals
		return []domain.Collection{domain.CollectionCreditCards, domain.CollectionCreditGoals}, nil
	})
}

func (s *AccountService) ListCreditCards(userID string) ([]domain.CreditCard, error) {
	var cards []domain.CreditCard
	err := s.store.View(userID, func(data *store.UserData) error {
		cards = append([]domain.CreditCard(nil), data.CreditCards...)
		return nil
	})
	return cards, err
}

// FinancialDataUpdate holds the editable financial data fields; nil means
// unchanged.
type FinancialDataUpdate struct {
	SavingBalance        *float64
	MonthlySpendingLimit *float64
	MonthlyIncome        *float64
	IncomeStartDate      *time.Time
	HasRecurringIncome   *bool
}

// UpdateFinancialData edits the singleton. Setting the savings balance
// directly can shrink the pool below the total allocated to goals, so a
// rebalance runs afterwards.
func (s *AccountService) UpdateFinancialData(userID string, updates FinancialDataUpdate) error {
	now := s.now()
	return s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		changes := newChangeSet()
		changes.add(domain.CollectionFinancialData)
		if updates.SavingBalance != nil {
			if *updates.SavingBalance < 0 {
				return nil, ledgerErrors.NewValidationError("Saving balance cannot be negative")
			}
			data.FinancialData.SavingBalance = domain.RoundToTwoDecimalPlaces(*updates.SavingBalance)
		}
		if updates.MonthlySpendingLimit != nil {
			data.FinancialData.MonthlySpendingLimit = *updates.MonthlySpendingLimit
		}
		if updates.MonthlyIncome != nil {
			data.FinancialData.MonthlyIncome = *updates.MonthlyIncome
		}
		if updates.IncomeStartDate != nil {
			data.FinancialData.IncomeStartDate = updates.IncomeStartDate
		}
		if updates.HasRecurringIncome != nil {
			data.FinancialData.HasRecurringIncome = *updates.HasRecurringIncome
		}
		data.FinancialData.UpdatedAt = now
		rebalanceGoals(data, now, changes)
		return changes.collections(), nil
	})
}

// GetFinancialData returns the singleton.
func (s *AccountService) GetFinancialData(userID string) (domain.FinancialData, error) {
	var fd domain.FinancialData
	err := s.store.View(userID, func(data *store.UserData) error {
		fd = data.FinancialData
		return nil
	})
	return fd, err
}

// ApplyRecurringIncome credits the monthly income into savings for every
// loaded user whose recurring income is due this month. Idempotent within a
// calendar month via LastIncomeAppliedAt.
func (s *AccountService) ApplyRecurringIncome(now time.Time) error {
	for _, userID := range s.store.UserIDs() {
		err := s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
			fd := &data.FinancialData
			if !fd.HasRecurringIncome || fd.MonthlyIncome <= 0 {
				return nil, nil
			}
			if fd.IncomeStartDate != nil && now.Before(*fd.IncomeStartDate) {
				return nil, nil
			}
			if fd.LastIncomeAppliedAt != nil && sameMonth(*fd.LastIncomeAppliedAt, now) {
				return nil, nil
			}

			fd.SavingBalance = domain.RoundToTwoDecimalPlaces(fd.SavingBalance + fd.MonthlyIncome)
			applied := now
			fd.LastIncomeAppliedAt = &applied
			fd.UpdatedAt = now

			transaction := domain.Transaction{
				ID:        uuid.NewString(),
				UserID:    userID,
				Title:     "Monthly Income",
				Category:  domain.SalaryCategory,
				Amount:    fd.MonthlyIncome,
				Type:      domain.TypeIncome,
				Date:      now,
				CreatedAt: now,
				UpdatedAt: now,
			}
			data.Transactions = append([]domain.Transaction{transaction}, data.Transactions...)
			return []domain.Collection{domain.CollectionFinancialData, domain.CollectionTransactions}, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func fundColors(funds []domain.Fund) []string {
	colors := make([]string, len(funds))
	for i, f := range funds {
		colors[i] = f.Color
	}
	return colors
}

func cardColors(cards []domain.CreditCard) []string {
	colors := make([]string, len(cards))
	for i, c := range cards {
		colors[i] = c.Color
	}
	return colors
}
