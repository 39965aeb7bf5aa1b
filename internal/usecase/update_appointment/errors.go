package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrStatusNotAllowed возвращается, когда переход в запрошенный
	// статус недоступен стилисту или запись уже в конечном статусе
	ErrStatusNotAllowed = errors.New("update_appointment: status transition not allowed")

	// ErrServiceRequired возвращается при чекауте без списка услуг
	ErrServiceRequired = errors.New("update_appointment: at least one service is required for checkout")

	// ErrServiceDoesNotExist возвращается, когда услуга не найдена среди
	// активных услуг стилиста
	ErrServiceDoesNotExist = errors.New("update_appointment: service does not exist")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
