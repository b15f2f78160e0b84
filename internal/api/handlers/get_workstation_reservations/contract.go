package get_workstation_reservations

import (
	"context"

	"github.com/eduhub/WSB-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetWorkstationDay(ctx context.Context, req *models.GetWorkstationDayRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
