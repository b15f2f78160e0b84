package scheduling

import (
	"github.com/eduhub/WSB-BookingService/internal/domain"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

// Overlaps проверяет РЕАЛЬНОЕ пересечение двух полуоткрытых интервалов
// [s1, e1) и [s2, e2).
// Используются строгие неравенства: интервалы, граничащие концами,
// пересечением не считаются.
//
// Примеры:
// - Бронь 10:00-11:00, запрос 10:30-11:30 → ЕСТЬ пересечение (10:30-11:00)
// - Бронь 10:00-11:00, запрос 11:00-12:00 → НЕТ пересечения (граничат)
func Overlaps(s1, e1, s2, e2 types.TimeString) bool {
	return s1.IsBefore(e2) && s2.IsBefore(e1)
}

// HasConflict проверяет, конфликтует ли интервал [start, end) с существующими
// бронированиями рабочего места. Неактивные брони (отмененные, отклоненные,
// завершенные) слот не занимают. excludeID исключает редактируемую бронь
// из проверки при in-place изменении интервала.
//
// Проверка advisory: авторитетная проверка выполняется в сериализуемой
// транзакции при записи. Отказ на коммите — ожидаемый исход гонки,
// а не ошибка сервиса.
func HasConflict(start, end types.TimeString, reservations []*domain.Reservation, excludeID *int64) bool {
	for _, r := range reservations {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if !r.IsActive() {
			continue
		}
		if Overlaps(r.StartTime, r.EndTime, start, end) {
			return true
		}
	}
	return false
}

// FindConflict возвращает первую конфликтующую бронь, либо nil
func FindConflict(start, end types.TimeString, reservations []*domain.Reservation, excludeID *int64) *domain.Reservation {
	for _, r := range reservations {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if !r.IsActive() {
			continue
		}
		if Overlaps(r.StartTime, r.EndTime, start, end) {
			return r
		}
	}
	return nil
}
