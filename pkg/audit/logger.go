package audit

import (
	"context"
	"time"
)

// Logger - синхронный журнал операций над хранилищем.
// Методы безопасны для вызова на nil-логгере: запись просто не происходит.
type Logger struct {
	appenders []Appender
}

// NewLogger создает логгер с указанными appenders
func NewLogger(appenders ...Appender) *Logger {
	return &Logger{appenders: appenders}
}

// Log записывает entry во все appenders.
// Ошибки отдельных appenders не прерывают запись в остальные.
func (l *Logger) Log(ctx context.Context, entry *Entry) {
	if l == nil || entry == nil {
		return
	}
	for _, a := range l.appenders {
		_ = a.Append(entry)
	}
}

// Success записывает успешную операцию
func (l *Logger) Success(ctx context.Context, op Operation, resource, target string, rows int64, duration time.Duration) {
	if l == nil {
		return
	}
	entry := NewEntry(op, StatusSuccess)
	entry.Resource = resource
	entry.Target = target
	entry.Rows = rows
	entry.Duration = duration
	l.Log(ctx, entry)
}

// Failure записывает неуспешную операцию
func (l *Logger) Failure(ctx context.Context, op Operation, resource string, err error, duration time.Duration) {
	if l == nil {
		return
	}
	entry := NewEntry(op, StatusFailure)
	entry.Resource = resource
	entry.Duration = duration
	if err != nil {
		entry.Error = err.Error()
	}
	l.Log(ctx, entry)
}

// Close закрывает все appenders
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	var firstErr error
	for _, a := range l.appenders {
		if err := a.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
