package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
	ledgerErrors "github.com/Xario13/MoneyTracker/internal/ledger/errors"
)

func TestAddTransaction_IncomeToFund(t *testing.T) {
	env := newTestEnv(t)
	fund := env.addFund(t, "Main Wallet", 100)

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Paycheck",
		Category: "Salary",
		Amount:   250.50,
		Type:     domain.TypeIncome,
		Target:   domain.FundTarget(fund.ID),
	})
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 250.50, result.Transaction.Amount)

	data := env.snapshot(t)
	assert.Equal(t, 350.50, data.Funds[0].Balance)
	assert.Len(t, data.Transactions, 1)
}

func TestAddTransaction_ExpenseWithinFundBalance(t *testing.T) {
	env := newTestEnv(t)
	fund := env.addFund(t, "Main Wallet", 100)

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Groceries",
		Category: "Groceries",
		Amount:   40,
		Type:     domain.TypeExpense,
		Target:   domain.FundTarget(fund.ID),
	})
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, -40.0, result.Transaction.Amount)

	data := env.snapshot(t)
	assert.Equal(t, 60.0, data.Funds[0].Balance)
}

func TestAddTransaction_OverageNeedsConfirmationWithoutMutation(t *testing.T) {
	env := newTestEnv(t)
	fund := env.addFund(t, "Main Wallet", 100)
	other := env.addFund(t, "Backup", 500)
	env.setSavings(t, 200)

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "New Phone",
		Category: "Shopping",
		Amount:   150,
		Type:     domain.TypeExpense,
		Target:   domain.FundTarget(fund.ID),
	})
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.True(t, result.NeedsConfirmation)
	assert.Equal(t, 50.0, result.Overage)

	data := env.snapshot(t)
	assert.Equal(t, 100.0, data.Funds[0].Balance)
	assert.Empty(t, data.Transactions)

	// Offered sources exclude the overdrawn fund itself.
	assert.Len(t, result.AvailableSources, 2)
	assert.Equal(t, other.ID, result.AvailableSources[0].ID)
	assert.Equal(t, "fund", result.AvailableSources[0].Type)
	assert.Equal(t, "savings", result.AvailableSources[1].ID)
	assert.Equal(t, 200.0, result.AvailableSources[1].Balance)
}

func TestAddTransaction_CardExpenseAlwaysAdmitted(t *testing.T) {
	env := newTestEnv(t)
	card := env.addCard(t, "Visa", 0)

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Dinner",
		Category: "Food & Dining",
		Amount:   900,
		Type:     domain.TypeExpense,
		Target:   domain.CardTarget(card.ID),
	})
	assert.NoError(t, err)
	assert.True(t, result.Success)

	data := env.snapshot(t)
	assert.Equal(t, 900.0, data.CreditCards[0].Balance)
	// The paired payoff tracker mirrors the new outstanding balance.
	assert.Equal(t, 900.0, data.CreditGoals[0].TargetAmount)
}

func TestAddTransaction_IncomeToCardRejected(t *testing.T) {
	env := newTestEnv(t)
	card := env.addCard(t, "Visa", 100)

	_, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Refund",
		Category: "Other Income",
		Amount:   50,
		Type:     domain.TypeIncome,
		Target:   domain.CardTarget(card.ID),
	})
	assert.True(t, ledgerErrors.IsValidationError(err))

	data := env.snapshot(t)
	assert.Equal(t, 100.0, data.CreditCards[0].Balance)
}

func TestAddTransaction_ExpenseToSavings(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 300)

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Vacation Deposit",
		Category: "Travel",
		Amount:   120,
		Type:     domain.TypeExpense,
		Target:   domain.SavingsTarget(),
	})
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 180.0, env.snapshot(t).FinancialData.SavingBalance)
}

func TestAddTransaction_UnknownFund(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Ghost",
		Category: "Shopping",
		Amount:   10,
		Type:     domain.TypeExpense,
		Target:   domain.FundTarget("missing"),
	})
	assert.ErrorIs(t, err, ledgerErrors.ErrFundNotFound)
}

func TestAddTransaction_SavingsExpenseOverPoolNeedsConfirmation(t *testing.T) {
	env := newTestEnv(t)
	backup := env.addFund(t, "Backup", 500)
	env.setSavings(t, 100)
	goal := env.addGoal(t, "Laptop", 1000)
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goal.ID, 40))

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Emergency",
		Category: "Health & Medical",
		Amount:   150,
		Type:     domain.TypeExpense,
		Target:   domain.SavingsTarget(),
	})
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.True(t, result.NeedsConfirmation)
	assert.Equal(t, 50.0, result.Overage)

	// The pool can never go negative, so no goal allocation can either.
	data := env.snapshot(t)
	assert.Equal(t, 100.0, data.FinancialData.SavingBalance)
	assert.Equal(t, 40.0, data.SavingsGoals[0].CurrentAmount)
	assert.Empty(t, data.Transactions)

	// The overdrawn pool is not offered as a source for itself.
	assert.Len(t, result.AvailableSources, 1)
	assert.Equal(t, backup.ID, result.AvailableSources[0].ID)
	assert.Equal(t, "fund", result.AvailableSources[0].Type)
}

func TestAddTransaction_UnknownIncomeFundLeavesNoRecord(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Paycheck",
		Category: "Salary",
		Amount:   250,
		Type:     domain.TypeIncome,
		Target:   domain.FundTarget("no-such-fund"),
	})
	assert.ErrorIs(t, err, ledgerErrors.ErrFundNotFound)
	assert.Empty(t, env.snapshot(t).Transactions)
}

func TestUpdateTransaction_AmountEditReversesThenReapplies(t *testing.T) {
	env := newTestEnv(t)
	fund := env.addFund(t, "Main Wallet", 100)

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Groceries",
		Category: "Groceries",
		Amount:   40,
		Type:     domain.TypeExpense,
		Target:   domain.FundTarget(fund.ID),
	})
	assert.NoError(t, err)

	newAmount := 70.0
	_, err = env.ledger.UpdateTransaction(testUserID, result.Transaction.ID, TransactionUpdate{
		Amount: &newAmount,
	})
	assert.NoError(t, err)
	assert.Equal(t, 30.0, env.snapshot(t).Funds[0].Balance)
}

func TestUpdateTransaction_SameValuesIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	fund := env.addFund(t, "Main Wallet", 100)

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Groceries",
		Category: "Groceries",
		Amount:   40,
		Type:     domain.TypeExpense,
		Target:   domain.FundTarget(fund.ID),
	})
	assert.NoError(t, err)
	before := env.snapshot(t).Funds[0].Balance

	sameAmount := 40.0
	sameTarget := domain.FundTarget(fund.ID)
	_, err = env.ledger.UpdateTransaction(testUserID, result.Transaction.ID, TransactionUpdate{
		Amount: &sameAmount,
		Target: &sameTarget,
	})
	assert.NoError(t, err)
	assert.Equal(t, before, env.snapshot(t).Funds[0].Balance)
}

func TestUpdateTransaction_RetargetMovesEffect(t *testing.T) {
	env := newTestEnv(t)
	fundA := env.addFund(t, "Wallet A", 100)
	fundB := env.addFund(t, "Wallet B", 100)

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Groceries",
		Category: "Groceries",
		Amount:   40,
		Type:     domain.TypeExpense,
		Target:   domain.FundTarget(fundA.ID),
	})
	assert.NoError(t, err)

	target := domain.FundTarget(fundB.ID)
	_, err = env.ledger.UpdateTransaction(testUserID, result.Transaction.ID, TransactionUpdate{
		Target: &target,
	})
	assert.NoError(t, err)

	data := env.snapshot(t)
	assert.Equal(t, 100.0, data.Funds[0].Balance)
	assert.Equal(t, 60.0, data.Funds[1].Balance)
}

func TestUpdateTransaction_UnknownTargetLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	fund := env.addFund(t, "Main Wallet", 100)

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Groceries",
		Category: "Groceries",
		Amount:   40,
		Type:     domain.TypeExpense,
		Target:   domain.FundTarget(fund.ID),
	})
	assert.NoError(t, err)
	assert.Equal(t, 60.0, env.snapshot(t).Funds[0].Balance)

	target := domain.FundTarget("no-such-fund")
	_, err = env.ledger.UpdateTransaction(testUserID, result.Transaction.ID, TransactionUpdate{
		Target: &target,
	})
	assert.ErrorIs(t, err, ledgerErrors.ErrFundNotFound)

	// The failed edit neither reversed the original effect nor rewrote the
	// record.
	data := env.snapshot(t)
	assert.Equal(t, 60.0, data.Funds[0].Balance)
	assert.Equal(t, domain.TargetFund, data.Transactions[0].Target().Kind)
	assert.Equal(t, fund.ID, data.Transactions[0].Target().ID)
}

func TestUpdateTransaction_TypeFlipResignsAmount(t *testing.T) {
	env := newTestEnv(t)
	fund := env.addFund(t, "Main Wallet", 100)

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Entry",
		Category: "Other Income",
		Amount:   40,
		Type:     domain.TypeExpense,
		Target:   domain.FundTarget(fund.ID),
	})
	assert.NoError(t, err)
	assert.Equal(t, 60.0, env.snapshot(t).Funds[0].Balance)

	newType := domain.TypeIncome
	updated, err := env.ledger.UpdateTransaction(testUserID, result.Transaction.ID, TransactionUpdate{
		Type: &newType,
	})
	assert.NoError(t, err)
	assert.Equal(t, 40.0, updated.Amount)
	assert.Equal(t, 140.0, env.snapshot(t).Funds[0].Balance)
}

func TestDeleteTransaction_ReversesEffect(t *testing.T) {
	env := newTestEnv(t)
	fund := env.addFund(t, "Main Wallet", 100)

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Groceries",
		Category: "Groceries",
		Amount:   40,
		Type:     domain.TypeExpense,
		Target:   domain.FundTarget(fund.ID),
	})
	assert.NoError(t, err)

	assert.NoError(t, env.ledger.DeleteTransaction(testUserID, result.Transaction.ID))

	data := env.snapshot(t)
	assert.Equal(t, 100.0, data.Funds[0].Balance)
	assert.Empty(t, data.Transactions)
}

func TestDeleteTransaction_SavingsExpenseRestoresPool(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 300)

	result, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Withdrawal",
		Category: "Shopping",
		Amount:   120,
		Type:     domain.TypeExpense,
		Target:   domain.SavingsTarget(),
	})
	assert.NoError(t, err)
	assert.Equal(t, 180.0, env.snapshot(t).FinancialData.SavingBalance)

	assert.NoError(t, env.ledger.DeleteTransaction(testUserID, result.Transaction.ID))
	assert.Equal(t, 300.0, env.snapshot(t).FinancialData.SavingBalance)
}

func TestAddTransaction_SavingsDropTriggersRebalance(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 400)
	goalA := env.addGoal(t, "Laptop", 1000)
	goalB := env.addGoal(t, "Trip", 1000)
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalA.ID, 100))
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalB.ID, 300))

	// Spending 200 from savings leaves the pool below the 400 allocated.
	_, err := env.ledger.AddTransaction(testUserID, TransactionInput{
		Title:    "Emergency",
		Category: "Health & Medical",
		Amount:   200,
		Type:     domain.TypeExpense,
		Target:   domain.SavingsTarget(),
	})
	assert.NoError(t, err)

	data := env.snapshot(t)
	assert.Equal(t, 200.0, data.FinancialData.SavingBalance)
	assert.Equal(t, 50.0, data.SavingsGoals[0].CurrentAmount)
	assert.Equal(t, 150.0, data.SavingsGoals[1].CurrentAmount)
}

func TestTransactionsAreNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	fund := env.addFund(t, "Main Wallet", 100)

	for _, title := range []string{"first", "second", "third"} {
		_, err := env.ledger.AddTransaction(testUserID, TransactionInput{
			Title:    title,
			Category: "Shopping",
			Amount:   1,
			Type:     domain.TypeExpense,
			Target:   domain.FundTarget(fund.ID),
		})
		assert.NoError(t, err)
	}

	transactions, err := env.ledger.ListTransactions(testUserID)
	assert.NoError(t, err)
	assert.Equal(t, "third", transactions[0].Title)
	assert.Equal(t, "first", transactions[2].Title)
}
