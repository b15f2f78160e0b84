package get_available_slots

import (
	"time"

	"github.com/eduhub/WSB-BookingService/internal/domain"
)

// Request модель запроса на получение слотов рабочего места
type Request struct {
	WorkstationID int64     // ID рабочего места
	Date          time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа с сеткой слотов дня
type Response struct {
	WorkstationID int64             // ID рабочего места
	Date          time.Time         // Дата запроса
	Slots         []domain.TimeSlot // Упорядоченная сетка слотов дня
}
