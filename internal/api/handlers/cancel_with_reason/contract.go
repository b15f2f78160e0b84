package cancel_with_reason

import (
	"context"

	"github.com/eduhub/WSB-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	CancelWithReason(ctx context.Context, id int64, req *models.CancelWithReasonRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
