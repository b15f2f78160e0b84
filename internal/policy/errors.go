package policy

import "errors"

var (
	// ErrInvalidInterval возвращается, когда интервал брони структурно некорректен
	ErrInvalidInterval = errors.New("policy: reservation end must be after start")

	// ErrDurationExceeded возвращается при превышении максимальной длительности роли
	ErrDurationExceeded = errors.New("policy: reservation duration exceeds role maximum")

	// ErrActiveReservationExists возвращается, когда у студента уже есть
	// активная бронь с незавершившимся интервалом
	ErrActiveReservationExists = errors.New("policy: user already has an active reservation")

	// ErrCooldownActive возвращается, когда пауза после завершения
	// предыдущей брони еще не истекла
	ErrCooldownActive = errors.New("policy: cooldown after previous reservation is still active")

	// ErrAlreadyTerminal возвращается при попытке отменить бронь
	// в терминальном статусе
	ErrAlreadyTerminal = errors.New("policy: reservation is already in a terminal state")

	// ErrCancellationLocked возвращается, когда отмена заблокирована
	// окном перед началом брони
	ErrCancellationLocked = errors.New("policy: cancellation is locked before reservation start")

	// ErrNotOwner возвращается, когда актор пытается отменить чужую бронь
	// без соответствующих прав
	ErrNotOwner = errors.New("policy: actor is not allowed to cancel this reservation")

	// ErrReasonLength возвращается, когда причина отмены отсутствует или
	// выходит за допустимые границы длины. Это ошибка валидации,
	// а не запрет политики.
	ErrReasonLength = errors.New("policy: cancellation reason length is out of bounds")
)
