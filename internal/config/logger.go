package config

// Logger provides structured logging for config operations.
// *slog.Logger satisfies it.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs warning-level messages with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
}

// noopLogger is a Logger implementation that does nothing.
// This is the default logger used when none is provided.
type noopLogger struct{}

func (n *noopLogger) Debug(msg string, keysAndValues ...any) {}
func (n *noopLogger) Info(msg string, keysAndValues ...any)  {}
func (n *noopLogger) Warn(msg string, keysAndValues ...any)  {}
func (n *noopLogger) Error(msg string, keysAndValues ...any) {}

// orDefault returns logger, or the no-op logger when it is nil.
func orDefault(logger Logger) Logger {
	if logger == nil {
		return &noopLogger{}
	}
	return logger
}
