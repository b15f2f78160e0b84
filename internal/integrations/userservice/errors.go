package userservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("userservice client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceUnavailable возвращается при недоступности UserService
	// (timeout, connectivity). Транзиентная ошибка: вызывающая сторона может
	// повторить запрос, показывать её как ошибку политики нельзя.
	ErrServiceUnavailable = errors.New("userservice client: service unavailable")
)
