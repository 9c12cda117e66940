package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllStatusesCount(t *testing.T) {
	require.Len(t, AllStatuses(), 14)
	for _, s := range AllStatuses() {
		assert.True(t, s.Valid(), "status %q should be valid", s)
	}
}

func TestCanTransition_HappyPath(t *testing.T) {
	path := []Status{
		StatusDraft,
		StatusSubmitted,
		StatusPaymentPending,
		StatusOfflinePaymentPending,
		StatusPaymentConfirmed,
		StatusAppointmentScheduled,
		StatusBiometricsCompleted,
		StatusApproved,
		StatusPendingFinalApproval,
		StatusPassportInQueue,
		StatusReadyForDelivery,
		StatusDelivered,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransition(path[i], path[i+1]),
			"expected %s -> %s to be allowed", path[i], path[i+1])
	}
}

func TestCanTransition_NoBackwardMoves(t *testing.T) {
	assert.False(t, CanTransition(StatusSubmitted, StatusDraft))
	assert.False(t, CanTransition(StatusApproved, StatusBiometricsCompleted))
	assert.False(t, CanTransition(StatusDelivered, StatusReadyForDelivery))
}

func TestCanTransition_TerminalStatesAbsorb(t *testing.T) {
	for _, terminal := range []Status{StatusRejected, StatusDelivered} {
		assert.True(t, terminal.Terminal())
		for _, to := range AllStatuses() {
			assert.False(t, CanTransition(terminal, to),
				"terminal status %s must not transition to %s", terminal, to)
		}
	}
}

func TestCanTransition_RejectReachableFromReviewPoints(t *testing.T) {
	for _, from := range []Status{
		StatusSubmitted, StatusProcessing, StatusPaymentPending,
		StatusAppointmentScheduled, StatusBiometricsCompleted,
		StatusPendingFinalApproval,
	} {
		assert.True(t, CanTransition(from, StatusRejected),
			"expected %s -> rejected to be allowed", from)
	}
}

func TestNextStatuses_ReturnsCopy(t *testing.T) {
	next := NextStatuses(StatusDraft)
	require.Equal(t, []Status{StatusSubmitted}, next)
	next[0] = StatusDelivered
	assert.Equal(t, []Status{StatusSubmitted}, NextStatuses(StatusDraft))
}

func TestStatusValid_RejectsUnknown(t *testing.T) {
	assert.False(t, Status("pending").Valid())
	assert.False(t, Status("").Valid())
}
