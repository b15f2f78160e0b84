package domain

import "github.com/eduhub/WSB-BookingService/pkg/types"

// TimeSlot represents a fixed-width candidate booking interval for a
// workstation on a given day. Derived per query, never persisted.
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
	// OccupantName label of the blocking reservation's owner, nil when available
	OccupantName *string
}

// HourLabel returns the display label of the slot, e.g. "10:00 - 11:00"
func (s *TimeSlot) HourLabel() string {
	return s.StartTime.String() + " - " + s.EndTime.String()
}
