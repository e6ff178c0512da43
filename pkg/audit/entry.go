package audit

import (
	"time"

	"github.com/google/uuid"
)

// Operation - тип операции над хранилищем
type Operation string

const (
	OpConnect    Operation = "connect"
	OpQuery      Operation = "query"
	OpExec       Operation = "exec"
	OpCopy       Operation = "copy"
	OpExport     Operation = "export"
	OpImport     Operation = "import"
	OpListTables Operation = "list_tables"
)

// Status - статус выполнения операции
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Entry - запись в журнале операций
type Entry struct {
	// ID - уникальный идентификатор записи
	ID string `json:"id"`

	// Timestamp - время операции
	Timestamp time.Time `json:"timestamp"`

	// Operation - тип операции
	Operation Operation `json:"operation"`

	// Status - статус выполнения
	Status Status `json:"status"`

	// Resource - ресурс операции (таблица или SQL)
	Resource string `json:"resource,omitempty"`

	// Target - целевой файл или таблица (для export/import/copy)
	Target string `json:"target,omitempty"`

	// Rows - количество затронутых строк
	Rows int64 `json:"rows,omitempty"`

	// Duration - длительность операции
	Duration time.Duration `json:"duration_ns,omitempty"`

	// Error - текст ошибки при Status=failure
	Error string `json:"error,omitempty"`
}

// NewEntry создает запись с заполненными ID и временем
func NewEntry(op Operation, status Status) *Entry {
	return &Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Operation: op,
		Status:    status,
	}
}
