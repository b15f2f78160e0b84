package domain

import (
	"time"

	"github.com/eduhub/WSB-BookingService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusRejected  ReservationStatus = "rejected"
	StatusCompleted ReservationStatus = "completed"
)

// Reservation represents a workstation reservation.
// StartTime and EndTime are local civil times within ReservationDate;
// the interval is half-open: [StartTime, EndTime).
type Reservation struct {
	ID              int64
	UserID          int64
	WorkstationID   int64
	ReservationDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	Status          ReservationStatus

	// Denormalized actor data for history views
	UserName string
	UserRole Role

	Notes *string

	CancellationReason *string
	CancelledBy        *int64
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its slot
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal returns true if no further transition is defined for the status
func (r *Reservation) IsTerminal() bool {
	for _, s := range TerminalStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// StartsAt combines the reservation date and start time into a full instant
func (r *Reservation) StartsAt() (time.Time, error) {
	return r.StartTime.OnDate(r.ReservationDate)
}

// EndsAt combines the reservation date and end time into a full instant
func (r *Reservation) EndsAt() (time.Time, error) {
	return r.EndTime.OnDate(r.ReservationDate)
}

// EndsInFuture returns true if the reservation end is still ahead of now
func (r *Reservation) EndsInFuture(now time.Time) bool {
	endsAt, err := r.EndsAt()
	if err != nil {
		return false
	}
	return endsAt.After(now)
}

// CanBeEdited returns true while the reservation is pending and its end
// has not passed. Editing never changes the status.
func (r *Reservation) CanBeEdited(now time.Time) bool {
	return r.Status == StatusPending && r.EndsInFuture(now)
}

// CanBeDeleted returns true for terminal records eligible for physical cleanup
func (r *Reservation) CanBeDeleted(now time.Time) bool {
	if r.Status == StatusCancelled || r.Status == StatusRejected || r.Status == StatusCompleted {
		return true
	}
	// Past confirmed reservations are completed in effect even if the
	// passive transition has not been persisted yet.
	return r.EffectiveStatus(now) == StatusCompleted
}

// EffectiveStatus derives the observable status: a confirmed reservation
// whose end has passed reads as completed without an actor-triggered write.
func (r *Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.Status == StatusConfirmed && !r.EndsInFuture(now) {
		return StatusCompleted
	}
	return r.Status
}

// DurationMinutes returns the booked length in minutes
func (r *Reservation) DurationMinutes() (int, error) {
	return r.EndTime.SubMinutes(r.StartTime)
}

// UserReservationsFilter фильтр для выборки бронирований пользователя
type UserReservationsFilter struct {
	UserID     int64
	Status     *ReservationStatus // опционально
	ActiveOnly bool               // только pending/confirmed
}

// WorkstationDayFilter фильтр для выборки бронирований рабочего места на дату
type WorkstationDayFilter struct {
	WorkstationID   int64
	Date            time.Time
	IncludeInactive bool // включать отмененные/отклоненные
}
