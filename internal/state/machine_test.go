package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
)

func TestCanTransition(t *testing.T) {
	// 合法流转
	assert.True(t, CanTransition(models.StatusPending, models.StatusConfirmed))
	assert.True(t, CanTransition(models.StatusPending, models.StatusCancelled))
	assert.True(t, CanTransition(models.StatusConfirmed, models.StatusCompleted))
	assert.True(t, CanTransition(models.StatusConfirmed, models.StatusCancelled))

	// 非法流转
	assert.False(t, CanTransition(models.StatusPending, models.StatusCompleted))
	assert.False(t, CanTransition(models.StatusConfirmed, models.StatusConfirmed))
	assert.False(t, CanTransition(models.StatusCancelled, models.StatusConfirmed))
}

func TestApply(t *testing.T) {
	got, err := Apply(models.StatusPending, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got)

	got, err = Apply(models.StatusConfirmed, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got)

	// Pending 不能直接完成
	got, err = Apply(models.StatusPending, models.StatusCompleted)
	require.Error(t, err)
	assert.Equal(t, models.StatusPending, got)
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	targets := []models.BookingStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusCompleted,
		models.StatusCancelled,
	}

	// 终态没有任何出边
	for _, from := range []models.BookingStatus{models.StatusCompleted, models.StatusCancelled} {
		for _, to := range targets {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)

			got, err := Apply(from, to)
			assert.Error(t, err)
			assert.Equal(t, from, got)
		}
	}
}

func TestApplyUnknownTarget(t *testing.T) {
	_, err := Apply(models.StatusConfirmed, models.StatusPending)
	require.Error(t, err)
}
