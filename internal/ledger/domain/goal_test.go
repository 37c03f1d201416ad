package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRebalanceGoals_NoOpWhenPoolCoversAllocations(t *testing.T) {
	goals := []SavingsGoal{
		{ID: "a", CurrentAmount: 100},
		{ID: "b", CurrentAmount: 200},
	}
	rebalanced, changed := RebalanceGoals(goals, 300, time.Now())
	assert.False(t, changed)
	assert.Equal(t, goals, rebalanced)
}

func TestRebalanceGoals_ScalesDownProportionallyWithFloor(t *testing.T) {
	goals := []SavingsGoal{
		{ID: "a", CurrentAmount: 100},
		{ID: "b", CurrentAmount: 300},
	}
	rebalanced, changed := RebalanceGoals(goals, 200, time.Now())
	assert.True(t, changed)
	assert.Equal(t, 50.0, rebalanced[0].CurrentAmount)
	assert.Equal(t, 150.0, rebalanced[1].CurrentAmount)
}

func TestRebalanceGoals_NegativePoolClampsAllocationsToZero(t *testing.T) {
	goals := []SavingsGoal{
		{ID: "a", CurrentAmount: 40},
		{ID: "b", CurrentAmount: 60},
	}
	rebalanced, changed := RebalanceGoals(goals, -50, time.Now())
	assert.True(t, changed)
	for _, g := range rebalanced {
		assert.Equal(t, 0.0, g.CurrentAmount)
	}
}
