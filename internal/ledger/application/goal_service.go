package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
	ledgerErrors "github.com/Xario13/MoneyTracker/internal/ledger/errors"
	"github.com/Xario13/MoneyTracker/internal/ledger/store"
)

// GoalService partitions the savings balance across savings goals. Allocation
// is a claim on the single pool, never a transfer: deallocating or deleting a
// goal frees the claim without moving money.
type GoalService struct {
	store *store.Store
	now   func() time.Time
}

func NewGoalService(s *store.Store) *GoalService {
	return &GoalService{store: s, now: time.Now}
}

// SavingsGoalInput describes a new savings goal.
type SavingsGoalInput struct {
	Title        string
	TargetAmount float64
	Emoji        string
	Deadline     time.Time
}

func (s *GoalService) AddSavingsGoal(userID string, input SavingsGoalInput) (*domain.SavingsGoal, error) {
	if input.Title == "" {
		return nil, ledgerErrors.NewValidationError("Title is required")
	}
	if input.TargetAmount <= 0 {
		return nil, ledgerErrors.NewValidationError("Target amount must be positive")
	}

	now := s.now()
	var created *domain.SavingsGoal
	err := s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		goal := domain.SavingsGoal{
			ID:           uuid.NewString(),
			UserID:       userID,
			Title:        input.Title,
			TargetAmount: domain.RoundToTwoDecimalPlaces(input.TargetAmount),
			Emoji:        input.Emoji,
			Color:        nextColor(goalColors(data.SavingsGoals)),
			Deadline:     input.Deadline,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		data.SavingsGoals = append(data.SavingsGoals, goal)
		created = &data.SavingsGoals[len(data.SavingsGoals)-1]
		return []domain.Collection{domain.CollectionSavingsGoals}, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SavingsGoalUpdate holds the editable goal fields; nil means unchanged.
type SavingsGoalUpdate struct {
	Title        *string
	TargetAmount *float64
	Emoji        *string
	Deadline     *time.Time
}

func (s *GoalService) UpdateSavingsGoal(userID, goalID string, updates SavingsGoalUpdate) error {
	now := s.now()
	return s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		goal := findSavingsGoal(data, goalID)
		if goal == nil {
			return nil, ledgerErrors.ErrGoalNotFound
		}
		if updates.Title != nil {
			goal.Title = *updates.Title
		}
		if updates.TargetAmount != nil {
			if *updates.TargetAmount <= 0 {
				return nil, ledgerErrors.NewValidationError("Target amount must be positive")
			}
			goal.TargetAmount = domain.RoundToTwoDecimalPlaces(*updates.TargetAmount)
		}
		if updates.Emoji != nil {
			goal.Emoji = *updates.Emoji
		}
		if updates.Deadline != nil {
			goal.Deadline = *updates.Deadline
		}
		goal.UpdatedAt = now
		return []domain.Collection{domain.CollectionSavingsGoals}, nil
	})
}

// DeleteSavingsGoal removes the goal. Its allocation claim is freed by
// removal alone; the savings balance is untouched.
func (s *GoalService) DeleteSavingsGoal(userID, goalID string) error {
	return s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		if findSavingsGoal(data, goalID) == nil {
			return nil, ledgerErrors.ErrGoalNotFound
		}
		remaining := make([]domain.SavingsGoal, 0, len(data.SavingsGoals)-1)
		for _, g := range data.SavingsGoals {
			if g.ID != goalID {
				remaining = append(remaining, g)
			}
		}
		data.SavingsGoals = remaining
		return []domain.Collection{domain.CollectionSavingsGoals}, nil
	})
}

// AddMoneyToGoal increases the goal's claim on savings. The amount is capped
// to what the goal still needs (CapToRemaining policy); the capped amount must
// fit in the unallocated portion of the savings balance.
func (s *GoalService) AddMoneyToGoal(userID, goalID string, amount float64) error {
	if amount <= 0 {
		return ledgerErrors.NewValidationError("Amount must be positive")
	}
	now := s.now()
	return s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		goal := findSavingsGoal(data, goalID)
		if goal == nil {
			return nil, ledgerErrors.ErrGoalNotFound
		}

		unallocated := data.FinancialData.SavingBalance - domain.TotalAllocated(data.SavingsGoals)
		remaining := goal.TargetAmount - goal.CurrentAmount
		if remaining <= 0 {
			return nil, ledgerErrors.ErrGoalAlreadyReached
		}
		capped := domain.CapToRemaining(amount, remaining)
		if capped > unallocated {
			return nil, ledgerErrors.ErrInsufficientUnallocated
		}

		goal.CurrentAmount = domain.RoundToTwoDecimalPlaces(goal.CurrentAmount + capped)
		goal.UpdatedAt = now
		return []domain.Collection{domain.CollectionSavingsGoals}, nil
	})
}

// DeallocateFromGoal frees part of the goal's claim. The savings balance does
// not change: the money was never physically separated from the pool.
func (s *GoalService) DeallocateFromGoal(userID, goalID string, amount float64) error {
	now := s.now()
	return s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		goal := findSavingsGoal(data, goalID)
		if goal == nil {
			return nil, ledgerErrors.ErrGoalNotFound
		}
		if amount <= 0 || amount > goal.CurrentAmount {
			return nil, ledgerErrors.ErrInvalidDeallocation
		}
		goal.CurrentAmount = domain.RoundToTwoDecimalPlaces(goal.CurrentAmount - amount)
		goal.UpdatedAt = now
		return []domain.Collection{domain.CollectionSavingsGoals}, nil
	})
}

// MarkGoalCompleted flags the goal. Completed goals keep their allocation
// claim until deleted.
func (s *GoalService) MarkGoalCompleted(userID, goalID string) error {
	now := s.now()
	return s.store.Mutate(userID, func(data *store.UserData) ([]domain.Collection, error) {
		goal := findSavingsGoal(data, goalID)
		if goal == nil {
			return nil, ledgerErrors.ErrGoalNotFound
		}
		goal.Completed = true
		goal.UpdatedAt = now
		return []domain.Collection{domain.CollectionSavingsGoals}, nil
	})
}

// ListSavingsGoals returns the user's savings goals.
func (s *GoalService) ListSavingsGoals(userID string) ([]domain.SavingsGoal, error) {
	var goals []domain.SavingsGoal
	err := s.store.View(userID, func(data *store.UserData) error {
		goals = append([]domain.SavingsGoal(nil), data.SavingsGoals...)
		return nil
	})
	return goals, err
}

// ListCreditGoals returns the auto-managed payoff trackers.
func (s *GoalService) ListCreditGoals(userID string) ([]domain.CreditGoal, error) {
	var goals []domain.CreditGoal
	err := s.store.View(userID, func(data *store.UserData) error {
		goals = append([]domain.CreditGoal(nil), data.CreditGoals...)
		return nil
	})
	return goals, err
}

func goalColors(goals []domain.SavingsGoal) []string {
	colors := make([]string, len(goals))
	for i, g := range goals {
		colors[i] = g.Color
	}
	return colors
}
