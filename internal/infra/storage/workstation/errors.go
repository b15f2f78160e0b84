package workstation

import "errors"

var (
	// ErrWorkstationNotFound возвращается, когда рабочее место не найдено
	ErrWorkstationNotFound = errors.New("workstation.repository: workstation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("workstation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("workstation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("workstation.repository: failed to scan row")
)
