package stylist

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль стилиста не найден
	ErrProfileNotFound = errors.New("stylist.repository: profile not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("stylist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("stylist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("stylist.repository: failed to scan row")
)
