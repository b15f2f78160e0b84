package domain

import "time"

// WorkstationStatus represents the operational status of a workstation
type WorkstationStatus string

const (
	WorkstationAvailable   WorkstationStatus = "available"
	WorkstationUnavailable WorkstationStatus = "unavailable"
	WorkstationMaintenance WorkstationStatus = "maintenance"
)

// Workstation represents a bookable physical workstation inside a room.
// It is immutable during a scheduling query; administration tooling mutates it.
type Workstation struct {
	ID        int64
	RoomID    int64
	Name      string
	Status    WorkstationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the workstation can accept new reservations
func (w *Workstation) IsBookable() bool {
	return w.Status == WorkstationAvailable
}
