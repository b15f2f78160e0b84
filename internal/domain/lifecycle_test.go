package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed, want: true},
		{name: "pending to rejected", from: StatusPending, to: StatusRejected, want: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, want: true},
		{name: "confirmed to cancelled", from: StatusConfirmed, to: StatusCancelled, want: true},
		{name: "confirmed to completed", from: StatusConfirmed, to: StatusCompleted, want: true},
		{name: "pending to completed skips confirmation", from: StatusPending, to: StatusCompleted, want: false},
		{name: "confirmed back to pending", from: StatusConfirmed, to: StatusPending, want: false},
		{name: "cancelled is terminal", from: StatusCancelled, to: StatusPending, want: false},
		{name: "rejected is terminal", from: StatusRejected, to: StatusConfirmed, want: false},
		{name: "completed is terminal", from: StatusCompleted, to: StatusCancelled, want: false},
		{name: "same status is not a transition", from: StatusPending, to: StatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTransitionRequiresModerator(t *testing.T) {
	assert.True(t, TransitionRequiresModerator(StatusPending, StatusConfirmed))
	assert.True(t, TransitionRequiresModerator(StatusPending, StatusRejected))
	assert.True(t, TransitionRequiresModerator(StatusConfirmed, StatusCompleted))

	// Отмена доступна и владельцу
	assert.False(t, TransitionRequiresModerator(StatusPending, StatusCancelled))
	assert.False(t, TransitionRequiresModerator(StatusConfirmed, StatusCancelled))
}

func TestParseReservationStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "cancelled", "rejected", "completed"} {
		status, ok := ParseReservationStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, ReservationStatus(valid), status)
	}

	for _, invalid := range []string{"", "PENDING", "done", "archived"} {
		_, ok := ParseReservationStatus(invalid)
		assert.False(t, ok, invalid)
	}
}
