package interfaces

import (
	"github.com/Xario13/MoneyTracker/internal/ledger/application"
	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
)

type MockAccountService struct {
	Fund          *domain.Fund
	Funds         []domain.Fund
	Card          *domain.CreditCard
	Cards         []domain.CreditCard
	FinancialData domain.FinancialData
	Err           error

	LastUserID string
	DeletedID  string
}

func (m *MockAccountService) AddFund(userID string, input application.FundInput) (*domain.Fund, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Fund, nil
}

func (m *MockAccountService) UpdateFund(userID, fundID string, updates application.FundUpdate) error {
	m.LastUserID = userID
	return m.Err
}

func (m *MockAccountService) DeleteFund(userID, fundID string) error {
	m.LastUserID = userID
	m.DeletedID = fundID
	return m.Err
}

func (m *MockAccountService) ListFunds(userID string) ([]domain.Fund, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Funds, nil
}

func (m *MockAccountService) AddCreditCard(userID string, input application.CreditCardInput) (*domain.CreditCard, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Card, nil
}

func (m *MockAccountService) UpdateCreditCard(userID, cardID string, updates application.CreditCardUpdate) error {
	m.LastUserID = userID
	return m.Err
}

func (m *MockAccountService) DeleteCreditCard(userID, cardID string) error {
	m.LastUserID = userID
	m.DeletedID = cardID
	return m.Err
}

func (m *MockAccountService) ListCreditCards(userID string) ([]domain.CreditCard, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Cards, nil
}

func (m *MockAccountService) UpdateFinancialData(userID string, updates application.FinancialDataUpdate) error {
	m.LastUserID = userID
	return m.Err
}

func (m *MockAccountService) GetFinancialData(userID string) (domain.FinancialData, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return domain.FinancialData{}, m.Err
	}
	return m.FinancialData, nil
}
