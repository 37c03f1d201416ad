package application

import (
	"context"
	"testing"
	"time"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
	"github.com/Xario13/MoneyTracker/internal/ledger/infrastructure"
	"github.com/Xario13/MoneyTracker/internal/ledger/store"
)

const testUserID = "test-user-id"

type testEnv struct {
	gateway   *infrastructure.MockGateway
	store     *store.Store
	ledger    *LedgerService
	goals     *GoalService
	accounts  *AccountService
	billing   *BillingService
	analytics *AnalyticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gateway := infrastructure.NewMockGateway()
	s := store.New(gateway)
	s.OnPersistError = func(string, string, error) {}
	if err := s.LoadUser(context.Background(), testUserID); err != nil {
		t.Fatalf("could not load test user: %v", err)
	}
	return &testEnv{
		gateway:   gateway,
		store:     s,
		ledger:    NewLedgerService(s),
		goals:     NewGoalService(s),
		accounts:  NewAccountService(s),
		billing:   NewBillingService(s),
		analytics: NewAnalyticsService(s),
	}
}

func (e *testEnv) flush(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.store.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func (e *testEnv) snapshot(t *testing.T) store.UserData {
	t.Helper()
	var data store.UserData
	err := e.store.View(testUserID, func(d *store.UserData) error {
		data = *d
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	return data
}

func (e *testEnv) addFund(t *testing.T, name string, balance float64) *domain.Fund {
	t.Helper()
	fund, err := e.accounts.AddFund(testUserID, FundInput{Name: name, Balance: balance})
	if err != nil {
		t.Fatalf("add fund %s: %v", name, err)
	}
	return fund
}

func (e *testEnv) addCard(t *testing.T, name string, balance float64) *domain.CreditCard {
	t.Helper()
	card, err := e.accounts.AddCreditCard(testUserID, CreditCardInput{
		Name:     name,
		Balance:  balance,
		BillDate: time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("add card %s: %v", name, err)
	}
	return card
}

func (e *testEnv) setSavings(t *testing.T, balance float64) {
	t.Helper()
	if err := e.accounts.UpdateFinancialData(testUserID, FinancialDataUpdate{SavingBalance: &balance}); err != nil {
		t.Fatalf("set savings: %v", err)
	}
}

func (e *testEnv) addGoal(t *testing.T, title string, target float64) *domain.SavingsGoal {
	t.Helper()
	goal, err := e.goals.AddSavingsGoal(testUserID, SavingsGoalInput{Title: title, TargetAmount: target})
	if err != nil {
		t.Fatalf("add goal %s: %v", title, err)
	}
	return goal
}

// totalMoney sums every real holding: funds plus savings. Card balances are
// debt and excluded.
func totalMoney(data store.UserData) float64 {
	total := data.FinancialData.SavingBalance
	for _, f := range data.Funds {
		total += f.Balance
	}
	return total
}
