package reservations

import (
	"context"
	"time"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	"github.com/eduhub/WSB-BookingService/internal/integrations/userservice"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUser(ctx context.Context, filter domain.UserReservationsFilter) ([]*domain.Reservation, error)
	GetByWorkstationAndDate(ctx context.Context, filter domain.WorkstationDayFilter) ([]*domain.Reservation, error)
	UpdateInterval(ctx context.Context, id int64, startTime, endTime types.TimeString, notes *string) error
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Cancel(ctx context.Context, id int64) error
	CancelWithReason(ctx context.Context, id int64, reason string, cancelledBy int64) error
	Delete(ctx context.Context, id int64) error
}

// WorkstationRepository интерфейс репозитория рабочих мест
type WorkstationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Workstation, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
