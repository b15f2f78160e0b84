package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/WSB-BookingService/pkg/types"
)

func testReservation(status ReservationStatus) *Reservation {
	return &Reservation{
		ID:              1,
		UserID:          42,
		WorkstationID:   7,
		ReservationDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("12:00"),
		Status:          status,
	}
}

func TestReservation_StatusPredicates(t *testing.T) {
	assert.True(t, testReservation(StatusPending).IsActive())
	assert.True(t, testReservation(StatusConfirmed).IsActive())
	assert.False(t, testReservation(StatusCancelled).IsActive())

	assert.True(t, testReservation(StatusCancelled).IsTerminal())
	assert.True(t, testReservation(StatusRejected).IsTerminal())
	assert.True(t, testReservation(StatusCompleted).IsTerminal())
	assert.False(t, testReservation(StatusPending).IsTerminal())
}

func TestReservation_Instants(t *testing.T) {
	r := testReservation(StatusConfirmed)

	startsAt, err := r.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC), startsAt)

	endsAt, err := r.EndsAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC), endsAt)

	minutes, err := r.DurationMinutes()
	require.NoError(t, err)
	assert.Equal(t, 120, minutes)
}

func TestReservation_EffectiveStatus(t *testing.T) {
	r := testReservation(StatusConfirmed)

	beforeEnd := time.Date(2026, 9, 15, 11, 59, 0, 0, time.UTC)
	afterEnd := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	// До конца интервала статус читается как есть
	assert.Equal(t, StatusConfirmed, r.EffectiveStatus(beforeEnd))
	// Конец интервала полуоткрытый: ровно в 12:00 бронь уже завершена
	assert.Equal(t, StatusCompleted, r.EffectiveStatus(afterEnd))

	// Для pending завершение не выводится
	p := testReservation(StatusPending)
	assert.Equal(t, StatusPending, p.EffectiveStatus(afterEnd))
}

func TestReservation_CanBeEdited(t *testing.T) {
	beforeEnd := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
	afterEnd := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, testReservation(StatusPending).CanBeEdited(beforeEnd))
	assert.False(t, testReservation(StatusPending).CanBeEdited(afterEnd))
	assert.False(t, testReservation(StatusConfirmed).CanBeEdited(beforeEnd))
	assert.False(t, testReservation(StatusCancelled).CanBeEdited(beforeEnd))
}

func TestReservation_CanBeDeleted(t *testing.T) {
	now := time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC)

	assert.True(t, testReservation(StatusCancelled).CanBeDeleted(now))
	assert.True(t, testReservation(StatusRejected).CanBeDeleted(now))
	assert.True(t, testReservation(StatusCompleted).CanBeDeleted(now))

	// Активные брони удалять нельзя
	assert.False(t, testReservation(StatusPending).CanBeDeleted(now))
	assert.False(t, testReservation(StatusConfirmed).CanBeDeleted(now))

	// Подтвержденная бронь с истекшим интервалом завершена по факту
	later := time.Date(2026, 9, 15, 13, 0, 0, 0, time.UTC)
	assert.True(t, testReservation(StatusConfirmed).CanBeDeleted(later))
}
