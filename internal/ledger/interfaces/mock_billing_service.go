package interfaces

import "github.com/Xario13/MoneyTracker/internal/ledger/domain"

type MockBillingService struct {
	Payment *domain.Transaction
	Err     error

	LastCardID     string
	LastAmount     float64
	LastSourceType string
	LastSourceID   string
}

func (m *MockBillingService) PayCreditCardBill(userID, cardID string, amount float64, sourceType, sourceID string) (*domain.Transaction, error) {
	m.LastCardID = cardID
	m.LastAmount = amount
	m.LastSourceType = sourceType
	m.LastSourceID = sourceID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payment, nil
}
