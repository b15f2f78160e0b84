package get_available_slots

import (
	"context"
	"time"

	"github.com/eduhub/WSB-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByWorkstationAndDate(ctx context.Context, filter domain.WorkstationDayFilter) ([]*domain.Reservation, error)
}

// WorkstationRepository интерфейс репозитория рабочих мест
type WorkstationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Workstation, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
