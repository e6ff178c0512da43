package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Appender записывает entries в конкретное назначение (файл, stderr, и т.д.)
type Appender interface {
	// Append записывает одну запись
	Append(entry *Entry) error

	// Close закрывает appender и освобождает ресурсы
	Close() error
}

// FileAppender пишет записи в файл в формате JSON Lines
type FileAppender struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewFileAppender создает appender с дозаписью в конец файла
func NewFileAppender(path string) (*FileAppender, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}

	return &FileAppender{
		file: f,
		enc:  json.NewEncoder(f),
	}, nil
}

func (a *FileAppender) Append(entry *Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enc.Encode(entry)
}

func (a *FileAppender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.file.Close()
}

// WriterAppender пишет однострочное текстовое представление в io.Writer.
// Используется для вывода в stderr.
type WriterAppender struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStderrAppender создает appender для stderr
func NewStderrAppender() *WriterAppender {
	return &WriterAppender{w: os.Stderr}
}

// NewWriterAppender создает appender для произвольного writer
func NewWriterAppender(w io.Writer) *WriterAppender {
	return &WriterAppender{w: w}
}

func (a *WriterAppender) Append(entry *Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	line := fmt.Sprintf("%s %s %s", entry.Timestamp.Format("2006-01-02T15:04:05Z07:00"), entry.Operation, entry.Status)
	if entry.Resource != "" {
		line += " resource=" + entry.Resource
	}
	if entry.Target != "" {
		line += " target=" + entry.Target
	}
	if entry.Rows != 0 {
		line += fmt.Sprintf(" rows=%d", entry.Rows)
	}
	if entry.Error != "" {
		line += " error=" + entry.Error
	}

	_, err := fmt.Fprintln(a.w, line)
	return err
}

func (a *WriterAppender) Close() error {
	return nil
}
