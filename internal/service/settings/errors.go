package settings

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга стилиста не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrTemplateNotFound возвращается, когда шаблон услуги не найден
	ErrTemplateNotFound = errors.New("service template not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings service: internal error")
)
