package get_available_slots

import "errors"

var (
	// ErrWorkstationNotFound возвращается, когда рабочее место не найдено
	ErrWorkstationNotFound = errors.New("get_available_slots: workstation not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
