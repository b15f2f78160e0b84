package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrUserNotFound возвращается, когда актор не найден в UserService
	ErrUserNotFound = errors.New("user not found")

	// ErrWorkstationNotFound возвращается, когда рабочее место не найдено
	ErrWorkstationNotFound = errors.New("workstation not found")

	// ErrAccessDenied возвращается, когда у актора нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронь нельзя отменить
	// (терминальный статус или окно блокировки)
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrReasonRequired возвращается, когда привилегированный актор
	// отменяет бронь без указания причины
	ErrReasonRequired = errors.New("cancellation reason is required for this role")

	// ErrInvalidReason возвращается при причине отмены вне допустимой длины
	ErrInvalidReason = errors.New("invalid cancellation reason")

	// ErrCannotEdit возвращается, когда бронь нельзя редактировать
	// (не pending или интервал уже завершился)
	ErrCannotEdit = errors.New("reservation cannot be edited")

	// ErrCannotDelete возвращается при попытке удалить нетерминальную бронь
	ErrCannotDelete = errors.New("only finished reservations can be deleted")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFinishedYet возвращается при попытке завершить бронь,
	// интервал которой еще не истек
	ErrNotFinishedYet = errors.New("reservation interval has not finished yet")

	// ErrSlotNotAvailable возвращается, когда новый интервал при
	// редактировании пересекается с существующей бронью
	ErrSlotNotAvailable = errors.New("time slot is not available")

	// ErrDurationExceeded возвращается при превышении лимита длительности роли
	ErrDurationExceeded = errors.New("reservation duration exceeds role maximum")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит
	// за часы работы центра
	ErrOutsideOperatingHours = errors.New("interval is outside operating hours")

	// ErrUnalignedSlot возвращается, когда начало брони не совпадает
	// с сеткой слотов
	ErrUnalignedSlot = errors.New("start time is not aligned to the slot grid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
