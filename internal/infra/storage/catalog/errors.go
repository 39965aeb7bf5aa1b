package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга стилиста не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrTemplateNotFound возвращается, когда шаблон услуги не найден
	ErrTemplateNotFound = errors.New("catalog.repository: service template not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
