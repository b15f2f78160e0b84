package create_reservation

import (
	"time"

	"github.com/eduhub/WSB-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64            // ID пользователя (актор и владелец брони)
	WorkstationID int64            // ID рабочего места
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Начало интервала, например "10:00"
	EndTime       types.TimeString // Конец интервала (полуоткрытый), например "12:00"
	Notes         *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	UserID          int64            // ID владельца
	WorkstationID   int64            // ID рабочего места
	ReservationDate time.Time        // Дата бронирования
	StartTime       types.TimeString // Начало интервала
	EndTime         types.TimeString // Конец интервала
	Status          string           // Статус брони
	UserName        string           // Имя владельца (денормализовано)
	Notes           *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// Settings параметры orchestrator, приходят из конфигурации
type Settings struct {
	MinNoticeMinutes int  // минимальный зазор между "сейчас" и началом брони
	AutoConfirm      bool // создавать брони сразу confirmed
}
