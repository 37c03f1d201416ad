package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	ledgerErrors "github.com/Xario13/MoneyTracker/internal/ledger/errors"
)

func TestAddFund_AssignsPaletteColors(t *testing.T) {
	env := newTestEnv(t)
	a := env.addFund(t, "Wallet", 100)
	b := env.addFund(t, "Backup", 50)

	assert.Equal(t, "#ff6b6b", a.Color)
	assert.Equal(t, "#4ecdc4", b.Color)
}

func TestAddFund_Validation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.accounts.AddFund(testUserID, FundInput{Name: "", Balance: 10})
	assert.True(t, ledgerErrors.IsValidationError(err))

	_, err = env.accounts.AddFund(testUserID, FundInput{Name: "Wallet", Balance: -1})
	assert.True(t, ledgerErrors.IsValidationError(err))
}

func TestDeleteFund_TransfersBalanceToSavings(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 100)
	fund := env.addFund(t, "Wallet", 250)

	before := totalMoney(env.snapshot(t))
	assert.NoError(t, env.accounts.DeleteFund(testUserID, fund.ID))

	data := env.snapshot(t)
	assert.Empty(t, data.Funds)
	assert.Equal(t, 350.0, data.FinancialData.SavingBalance)
	assert.Equal(t, before, totalMoney(data))
}

func TestDeleteFund_EmptyFundLeavesSavingsAlone(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 100)
	fund := env.addFund(t, "Wallet", 0)

	assert.NoError(t, env.accounts.DeleteFund(testUserID, fund.ID))
	assert.Equal(t, 100.0, env.snapshot(t).FinancialData.SavingBalance)
}

func TestAddCreditCard_CreatesPairedPayoffTracker(t *testing.T) {
	env := newTestEnv(t)
	billDate := time.Now().AddDate(0, 1, 0)
	card, err := env.accounts.AddCreditCard(testUserID, CreditCardInput{
		Name:     "Visa",
		Balance:  150,
		BillDate: billDate,
	})
	assert.NoError(t, err)

	data := env.snapshot(t)
	assert.Len(t, data.CreditGoals, 1)
	goal := data.CreditGoals[0]
	assert.Equal(t, card.ID, goal.CreditCardID)
	assert.Equal(t, 150.0, goal.TargetAmount)
	assert.Equal(t, 0.0, goal.CurrentAmount)
	assert.Equal(t, billDate, goal.Deadline)
}

func TestUpdateCreditCard_BalanceEditSyncsTracker(t *testing.T) {
	env := newTestEnv(t)
	card := env.addCard(t, "Visa", 150)

	newBalance := 90.0
	assert.NoError(t, env.accounts.UpdateCreditCard(testUserID, card.ID, CreditCardUpdate{
		Balance: &newBalance,
	}))

	data := env.snapshot(t)
	assert.Equal(t, 90.0, data.CreditCards[0].Balance)
	assert.Equal(t, 90.0, data.CreditGoals[0].TargetAmount)
}

func TestDeleteCreditCard_RemovesPairedTracker(t *testing.T) {
	env := newTestEnv(t)
	card := env.addCard(t, "Visa", 150)

	assert.NoError(t, env.accounts.DeleteCreditCard(testUserID, card.ID))

	data := env.snapshot(t)
	assert.Empty(t, data.CreditCards)
	assert.Empty(t, data.CreditGoals)
}

func TestUpdateFinancialData_NegativeSavingsRejected(t *testing.T) {
	env := newTestEnv(t)
	negative := -5.0
	err := env.accounts.UpdateFinancialData(testUserID, FinancialDataUpdate{SavingBalance: &negative})
	assert.True(t, ledgerErrors.IsValidationError(err))
}

func TestApplyRecurringIncome_OncePerMonth(t *testing.T) {
	env := newTestEnv(t)
	enabled := true
	income := 1000.0
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, env.accounts.UpdateFinancialData(testUserID, FinancialDataUpdate{
		MonthlyIncome:      &income,
		HasRecurringIncome: &enabled,
		IncomeStartDate:    &start,
	}))

	march := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	assert.NoError(t, env.accounts.ApplyRecurringIncome(march))
	assert.Equal(t, 1000.0, env.snapshot(t).FinancialData.SavingBalance)

	// A second run in the same month is a no-op.
	assert.NoError(t, env.accounts.ApplyRecurringIncome(march.AddDate(0, 0, 10)))
	data := env.snapshot(t)
	assert.Equal(t, 1000.0, data.FinancialData.SavingBalance)
	assert.Len(t, data.Transactions, 1)

	// The next month credits again.
	assert.NoError(t, env.accounts.ApplyRecurringIncome(march.AddDate(0, 1, 0)))
	data = env.snapshot(t)
	assert.Equal(t, 2000.0, data.FinancialData.SavingBalance)
	assert.Len(t, data.Transactions, 2)
}

func TestApplyRecurringIncome_RespectsStartDateAndFlag(t *testing.T) {
	env := newTestEnv(t)
	income := 1000.0
	enabled := true
	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, env.accounts.UpdateFinancialData(testUserID, FinancialDataUpdate{
		MonthlyIncome:      &income,
		HasRecurringIncome: &enabled,
		IncomeStartDate:    &start,
	}))

	before := time.Date(2026, time.May, 15, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, env.accounts.ApplyRecurringIncome(before))
	assert.Equal(t, 0.0, env.snapshot(t).FinancialData.SavingBalance)

	disabled := false
	assert.NoError(t, env.accounts.UpdateFinancialData(testUserID, FinancialDataUpdate{
		HasRecurringIncome: &disabled,
	}))
	assert.NoError(t, env.accounts.ApplyRecurringIncome(start.AddDate(0, 1, 0)))
	assert.Equal(t, 0.0, env.snapshot(t).FinancialData.SavingBalance)
}
