package interfaces

import (
	"github.com/Xario13/MoneyTracker/internal/ledger/application"
	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
)

type MockTransactionService struct {
	Result       application.AddResult
	Transactions []domain.Transaction
	Updated      *domain.Transaction
	Err          error

	LastUserID string
	LastInput  application.TransactionInput
	DeletedID  string
}

func (m *MockTransactionService) AddTransaction(userID string, input application.TransactionInput) (application.AddResult, error) {
	m.LastUserID = userID
	m.LastInput = input
	if m.Err != nil {
		return application.AddResult{}, m.Err
	}
	return m.Result, nil
}

func (m *MockTransactionService) UpdateTransaction(userID, transactionID string, updates application.TransactionUpdate) (*domain.Transaction, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Updated, nil
}

func (m *MockTransactionService) DeleteTransaction(userID, transactionID string) error {
	m.LastUserID = userID
	m.DeletedID = transactionID
	return m.Err
}

func (m *MockTransactionService) ListTransactions(userID string) ([]domain.Transaction, error) {
	m.LastUserID = userID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Transactions, nil
}
