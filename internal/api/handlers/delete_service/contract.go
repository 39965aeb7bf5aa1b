package delete_service

import (
	"context"

	"github.com/google/uuid"
)

type SettingsService interface {
	DeleteService(ctx context.Context, stylistID int64, serviceUUID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
