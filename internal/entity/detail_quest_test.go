package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_DetailQuest_SetCount_clamp(t *testing.T) {
	detail := &DetailQuest{Type: DetailCount, TargetCount: 3}

	detail.SetCount(-5)
	require.Equal(t, 0, detail.Count)
	require.Equal(t, DetailProceed, detail.State)

	detail.SetCount(99)
	require.Equal(t, 3, detail.Count)
	require.Equal(t, DetailComplete, detail.State)

	detail.SetCount(2)
	require.Equal(t, 2, detail.Count)
	require.Equal(t, DetailProceed, detail.State)
}

func Test_DetailQuest_Interact(t *testing.T) {
	check := &DetailQuest{Type: DetailCheck, TargetCount: 1}

	check.Interact()
	require.True(t, check.IsComplete())

	// Interacting with a completed detail resets it.
	check.Interact()
	require.Equal(t, 0, check.Count)
	require.False(t, check.IsComplete())

	count := &DetailQuest{Type: DetailCount, TargetCount: 2}
	count.Interact()
	require.Equal(t, 1, count.Count)
	count.Interact()
	require.True(t, count.IsComplete())
}
