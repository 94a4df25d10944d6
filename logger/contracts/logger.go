package contracts

// ILogger is the leveled sink every component logs through.
type ILogger interface {
	Info(format string, args ...any)
	Warning(format string, args ...any)
	Critical(format string, args ...any)
}
