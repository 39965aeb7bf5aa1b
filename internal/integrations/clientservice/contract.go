package clientservice

// Logger интерфейс логгера для клиента ClientService
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
