package preview_appointment

import "errors"

var (
	// ErrServiceDoesNotExist возвращается, когда услуга не найдена среди
	// активных услуг стилиста
	ErrServiceDoesNotExist = errors.New("preview_appointment: service does not exist")

	// ErrServiceRequired возвращается при пустом списке услуг
	ErrServiceRequired = errors.New("preview_appointment: at least one service is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("preview_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("preview_appointment: internal error")
)
