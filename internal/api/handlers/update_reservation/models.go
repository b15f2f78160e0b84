package update_reservation

import (
	"github.com/eduhub/WSB-BookingService/internal/service/reservations/models"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

// UpdateReservationRequest HTTP request model
type UpdateReservationRequest struct {
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`   // "12:00"
	Notes     *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateReservationRequest) ToServiceRequest(actorID int64) (*models.UpdateReservationRequest, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.UpdateReservationRequest{
		ActorID:   actorID,
		StartTime: startTime,
		EndTime:   endTime,
		Notes:     r.Notes,
	}, nil
}
