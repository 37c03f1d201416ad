package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ledgerErrors "github.com/Xario13/MoneyTracker/internal/ledger/errors"
)

func TestAddMoneyToGoal_ClaimsUnallocatedSavings(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 500)
	goal := env.addGoal(t, "Laptop", 1000)

	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goal.ID, 300))

	data := env.snapshot(t)
	assert.Equal(t, 300.0, data.SavingsGoals[0].CurrentAmount)
	// Allocation is a claim, not a transfer.
	assert.Equal(t, 500.0, data.FinancialData.SavingBalance)
}

func TestAddMoneyToGoal_CapsAtRemaining(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 500)
	goal := env.addGoal(t, "Laptop", 250)

	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goal.ID, 400))
	assert.Equal(t, 250.0, env.snapshot(t).SavingsGoals[0].CurrentAmount)
}

func TestAddMoneyToGoal_RejectsWhenReached(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 500)
	goal := env.addGoal(t, "Laptop", 200)
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goal.ID, 200))

	err := env.goals.AddMoneyToGoal(testUserID, goal.ID, 10)
	assert.ErrorIs(t, err, ledgerErrors.ErrGoalAlreadyReached)
}

func TestAddMoneyToGoal_RejectsOverUnallocated(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 100)
	goalA := env.addGoal(t, "Laptop", 1000)
	goalB := env.addGoal(t, "Trip", 1000)
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalA.ID, 80))

	// Only 20 of the pool is unclaimed.
	err := env.goals.AddMoneyToGoal(testUserID, goalB.ID, 50)
	assert.ErrorIs(t, err, ledgerErrors.ErrInsufficientUnallocated)
	assert.Equal(t, 0.0, env.snapshot(t).SavingsGoals[1].CurrentAmount)
}

func TestAddMoneyToGoal_CappedAmountMustStillFit(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 100)
	goalA := env.addGoal(t, "Laptop", 1000)
	goalB := env.addGoal(t, "Trip", 30)
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalA.ID, 80))

	// Capped to the 30 still needed, which exceeds the 20 unclaimed.
	err := env.goals.AddMoneyToGoal(testUserID, goalB.ID, 500)
	assert.ErrorIs(t, err, ledgerErrors.ErrInsufficientUnallocated)

	// A request capped below the unclaimed portion goes through.
	assert.NoError(t, env.goals.DeallocateFromGoal(testUserID, goalA.ID, 60))
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalB.ID, 500))
	assert.Equal(t, 30.0, env.snapshot(t).SavingsGoals[1].CurrentAmount)
}

func TestDeallocateFromGoal_FreesClaimWithoutMovingMoney(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 500)
	goal := env.addGoal(t, "Laptop", 1000)
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goal.ID, 300))

	assert.NoError(t, env.goals.DeallocateFromGoal(testUserID, goal.ID, 100))

	data := env.snapshot(t)
	assert.Equal(t, 200.0, data.SavingsGoals[0].CurrentAmount)
	assert.Equal(t, 500.0, data.FinancialData.SavingBalance)
}

func TestDeallocateFromGoal_RejectsInvalidAmounts(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 500)
	goal := env.addGoal(t, "Laptop", 1000)
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goal.ID, 100))

	assert.ErrorIs(t, env.goals.DeallocateFromGoal(testUserID, goal.ID, 0), ledgerErrors.ErrInvalidDeallocation)
	assert.ErrorIs(t, env.goals.DeallocateFromGoal(testUserID, goal.ID, -5), ledgerErrors.ErrInvalidDeallocation)
	assert.ErrorIs(t, env.goals.DeallocateFromGoal(testUserID, goal.ID, 150), ledgerErrors.ErrInvalidDeallocation)
}

func TestDeleteSavingsGoal_FreesClaimImplicitly(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 100)
	goalA := env.addGoal(t, "Laptop", 1000)
	goalB := env.addGoal(t, "Trip", 1000)
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalA.ID, 90))

	// Pool is nearly fully claimed; deleting the goal frees its claim.
	assert.ErrorIs(t, env.goals.AddMoneyToGoal(testUserID, goalB.ID, 50), ledgerErrors.ErrInsufficientUnallocated)
	assert.NoError(t, env.goals.DeleteSavingsGoal(testUserID, goalA.ID))
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalB.ID, 50))

	data := env.snapshot(t)
	assert.Equal(t, 100.0, data.FinancialData.SavingBalance)
	assert.Len(t, data.SavingsGoals, 1)
}

func TestMarkGoalCompleted_KeepsClaim(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 100)
	goalA := env.addGoal(t, "Laptop", 80)
	goalB := env.addGoal(t, "Trip", 1000)
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalA.ID, 80))
	assert.NoError(t, env.goals.MarkGoalCompleted(testUserID, goalA.ID))

	data := env.snapshot(t)
	assert.True(t, data.SavingsGoals[0].Completed)
	assert.Equal(t, 80.0, data.SavingsGoals[0].CurrentAmount)

	// The completed goal still counts against the pool.
	assert.ErrorIs(t, env.goals.AddMoneyToGoal(testUserID, goalB.ID, 50), ledgerErrors.ErrInsufficientUnallocated)
}

func TestLoweringSavingsBalanceRebalancesProportionally(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 400)
	goalA := env.addGoal(t, "Laptop", 1000)
	goalB := env.addGoal(t, "Trip", 1000)
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalA.ID, 100))
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalB.ID, 300))

	env.setSavings(t, 200)

	data := env.snapshot(t)
	assert.Equal(t, 50.0, data.SavingsGoals[0].CurrentAmount)
	assert.Equal(t, 150.0, data.SavingsGoals[1].CurrentAmount)
}

func TestRebalanceFlooringNeverOvershoots(t *testing.T) {
	env := newTestEnv(t)
	env.setSavings(t, 100)
	goalA := env.addGoal(t, "A", 1000)
	goalB := env.addGoal(t, "B", 1000)
	goalC := env.addGoal(t, "C", 1000)
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalA.ID, 33))
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalB.ID, 33))
	assert.NoError(t, env.goals.AddMoneyToGoal(testUserID, goalC.ID, 34))

	env.setSavings(t, 50)

	data := env.snapshot(t)
	var total float64
	for _, g := range data.SavingsGoals {
		total += g.CurrentAmount
	}
	assert.LessOrEqual(t, total, 50.0)
}

func TestGoalColorsAssignedFromPalette(t *testing.T) {
	env := newTestEnv(t)
	a := env.addGoal(t, "A", 100)
	b := env.addGoal(t, "B", 100)
	assert.NotEmpty(t, a.Color)
	assert.NotEmpty(t, b.Color)
	assert.NotEqual(t, a.Color, b.Color)
}
