package create_appointment

import "errors"

var (
	// ErrAppointmentInThePast возвращается, когда время начала раньше
	// текущего времени стилиста
	ErrAppointmentInThePast = errors.New("create_appointment: appointment is in the past")

	// ErrOutsideWorkingHours возвращается, когда запись не помещается в
	// рабочие часы стилиста
	ErrOutsideWorkingHours = errors.New("create_appointment: appointment is outside working hours")

	// ErrAppointmentIntersection возвращается, когда запись пересекается
	// с существующей неотмененной записью
	ErrAppointmentIntersection = errors.New("create_appointment: appointment intersects with an existing one")

	// ErrServiceDoesNotExist возвращается, когда услуга не найдена среди
	// активных услуг стилиста
	ErrServiceDoesNotExist = errors.New("create_appointment: service does not exist")

	// ErrServiceRequired возвращается при пустом списке услуг
	ErrServiceRequired = errors.New("create_appointment: at least one service is required")

	// ErrClientDoesNotExist возвращается, когда клиент не найден
	ErrClientDoesNotExist = errors.New("create_appointment: client does not exist")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
