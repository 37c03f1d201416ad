package interfaces

import (
	"github.com/Xario13/MoneyTracker/internal/ledger/application"
	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
)

type MockGoalService struct {
	Goal        *domain.SavingsGoal
	Goals       []domain.SavingsGoal
	CreditGoals []domain.CreditGoal
	Err         error

	LastGoalID  string
	LastAmount  float64
	CompletedID string
	DeletedID   string
}

func (m *MockGoalService) AddSavingsGoal(userID string, input application.SavingsGoalInput) (*domain.SavingsGoal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Goal, nil
}

func (m *MockGoalService) UpdateSavingsGoal(userID, goalID string, updates application.SavingsGoalUpdate) error {
	m.LastGoalID = goalID
	return m.Err
}

func (m *MockGoalService) DeleteSavingsGoal(userID, goalID string) error {
	m.DeletedID = goalID
	return m.Err
}

func (m *MockGoalService) AddMoneyToGoal(userID, goalID string, amount float64) error {
	m.LastGoalID = goalID
	m.LastAmount = amount
	return m.Err
}

func (m *MockGoalService) DeallocateFromGoal(userID, goalID string, amount float64) error {
	m.LastGoalID = goalID
	m.LastAmount = amount
	return m.Err
}

func (m *MockGoalService) MarkGoalCompleted(userID, goalID string) error {
	m.CompletedID = goalID
	return m.Err
}

func (m *MockGoalService) ListSavingsGoals(userID string) ([]domain.SavingsGoal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Goals, nil
}

func (m *MockGoalService) ListCreditGoals(userID string) ([]domain.CreditGoal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.CreditGoals, nil
}
