package create_reservation

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_reservation: user not found")

	// ErrUserInactive возвращается, когда учетная запись деактивирована
	ErrUserInactive = errors.New("create_reservation: user account is inactive")

	// ErrWorkstationNotFound возвращается, когда рабочее место не найдено
	ErrWorkstationNotFound = errors.New("create_reservation: workstation not found")

	// ErrWorkstationUnavailable возвращается, когда рабочее место
	// недоступно или на обслуживании
	ErrWorkstationUnavailable = errors.New("create_reservation: workstation is not bookable")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrTooLateToBook возвращается, когда начало брони не отстоит от
	// "сейчас" на минимальный зазор
	ErrTooLateToBook = errors.New("create_reservation: start time is too soon")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит
	// за часы работы центра
	ErrOutsideOperatingHours = errors.New("create_reservation: interval is outside operating hours")

	// ErrUnalignedSlot возвращается, когда начало брони не совпадает
	// с сеткой слотов
	ErrUnalignedSlot = errors.New("create_reservation: start time is not aligned to the slot grid")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается
	// с существующей бронью. Ожидаемый исход гонки за слот:
	// вызывающая сторона обновляет доступность и предлагает выбрать заново.
	ErrSlotNotAvailable = errors.New("create_reservation: time slot is not available")

	// ErrUserServiceUnavailable возвращается, когда UserService недоступен
	// после повторной попытки. Транзиентная ошибка, клиент может повторить запрос
	ErrUserServiceUnavailable = errors.New("create_reservation: user service is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
