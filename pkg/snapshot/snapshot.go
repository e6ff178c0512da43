// Package snapshot материализует результат запроса в неизменяемую
// таблицу в памяти с произвольным доступом и типизированными getters.
// После конструирования исходный итератор больше не нужен.
package snapshot

import (
	"database/sql"
	"strings"
	"unicode/utf8"
)

// ColumnType - тип хранения колонки
type ColumnType string

const (
	TypeText    ColumnType = "TEXT"
	TypeInteger ColumnType = "INTEGER"
	TypeReal    ColumnType = "REAL"
	TypeBlob    ColumnType = "BLOB"
	TypeNull    ColumnType = "NULL"
)

// normalizeType приводит заявленный драйвером тип к ColumnType.
// Affinity-правила как у SQLite: INT → INTEGER, CHAR/CLOB/TEXT → TEXT и т.д.
func normalizeType(declared string) ColumnType {
	d := strings.ToUpper(declared)
	switch {
	case strings.Contains(d, "INT"):
		return TypeInteger
	case strings.Contains(d, "CHAR"), strings.Contains(d, "CLOB"), strings.Contains(d, "TEXT"):
		return TypeText
	case strings.Contains(d, "BLOB"):
		return TypeBlob
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"),
		strings.Contains(d, "DEC"), strings.Contains(d, "NUM"):
		return TypeReal
	default:
		return TypeText
	}
}

// Column - неизменяемые метаданные колонки результата
type Column struct {
	// Ordinal - номер колонки (0-based)
	Ordinal int

	// Name - имя колонки
	Name string

	// Width - максимальная ширина в символах по всем строкам результата,
	// но не меньше длины имени колонки
	Width int

	// Type - тип хранения
	Type ColumnType
}

// Snapshot - неизменяемая копия результата запроса.
// Количество строк и колонок фиксируется при конструировании.
type Snapshot struct {
	rowCount    int
	columnCount int
	rows        []*Row
	columns     []Column
	ordinals    map[string]int
}

// New полностью вычитывает rows и строит snapshot.
// Итератор после возврата можно закрывать: данные больше не перечитываются.
// nil или невалидный источник дает пустой snapshot (0 строк, 0 колонок),
// а не ошибку.
func New(rows *sql.Rows) *Snapshot {
	empty := &Snapshot{ordinals: map[string]int{}}
	if rows == nil {
		return empty
	}

	names, err := rows.Columns()
	if err != nil {
		return empty
	}

	declared := make([]string, len(names))
	if types, err := rows.ColumnTypes(); err == nil {
		for i, t := range types {
			declared[i] = t.DatabaseTypeName()
		}
	}

	s := &Snapshot{
		columnCount: len(names),
		ordinals:    make(map[string]int, len(names)),
	}

	widths := make([]int, len(names))
	observed := make([]ColumnType, len(names))

	for rows.Next() {
		raw := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return empty
		}

		cells := make([]cell, len(names))
		for i, v := range raw {
			c := newCell(v)
			cells[i] = c
			if w := c.displayWidth(); w > widths[i] {
				widths[i] = w
			}
			if observed[i] == "" && c.ctype != TypeNull {
				observed[i] = c.ctype
			}
		}

		s.rows = append(s.rows, &Row{number: len(s.rows), cells: cells, owner: s})
	}

	if err := rows.Err(); err != nil {
		return empty
	}

	s.rowCount = len(s.rows)
	s.columns = make([]Column, len(names))
	for i, name := range names {
		s.columns[i] = Column{
			Ordinal: i,
			Name:    name,
			Width:   max(utf8.RuneCountInString(name), widths[i]),
			Type:    s.columnType(declared[i], observed[i]),
		}
		s.ordinals[name] = i
	}

	return s
}

// columnType выбирает тип колонки: при пустом результате всегда TEXT,
// иначе заявленный источником тип; для выражений без заявленного типа -
// тип первого ненулевого значения.
func (s *Snapshot) columnType(declared string, observed ColumnType) ColumnType {
	if s.rowCount == 0 {
		return TypeText
	}
	if declared != "" {
		return normalizeType(declared)
	}
	if observed != "" {
		return observed
	}
	return TypeText
}

// RowCount возвращает число строк результата
func (s *Snapshot) RowCount() int {
	return s.rowCount
}

// ColumnCount возвращает число колонок результата
func (s *Snapshot) ColumnCount() int {
	return s.columnCount
}

// IsEmpty сообщает есть ли в результате строки
func (s *Snapshot) IsEmpty() bool {
	return s.rowCount == 0
}

// Row возвращает строку по индексу. ok=false при выходе за границы.
func (s *Snapshot) Row(index int) (*Row, bool) {
	if index < 0 || index >= len(s.rows) {
		return nil, false
	}
	return s.rows[index], true
}

// Rows возвращает все строки результата
func (s *Snapshot) Rows() []*Row {
	return s.rows
}

// Columns возвращает метаданные всех колонок
func (s *Snapshot) Columns() []Column {
	return s.columns
}

// Ordinal возвращает индекс колонки по точному имени.
// ok=false если такой колонки нет.
func (s *Snapshot) Ordinal(name string) (int, bool) {
	i, ok := s.ordinals[name]
	return i, ok
}

// ColumnName возвращает имя колонки по индексу, "" при выходе за границы
func (s *Snapshot) ColumnName(index int) string {
	if index < 0 || index >= len(s.columns) {
		return ""
	}
	return s.columns[index].Name
}

// ColumnTypeAt возвращает тип колонки по индексу, "" при выходе за границы
func (s *Snapshot) ColumnTypeAt(index int) ColumnType {
	if index < 0 || index >= len(s.columns) {
		return ""
	}
	return s.columns[index].Type
}

// ColumnWidth возвращает ширину колонки по индексу, 0 при выходе за границы
func (s *Snapshot) ColumnWidth(index int) int {
	if index < 0 || index >= len(s.columns) {
		return 0
	}
	return s.columns[index].Width
}

// ColumnValues собирает значения одной колонки как текст.
// Blob-значения кодируются по тому же правилу что Row.String (base64),
// NULL дает пустую строку. nil при выходе индекса за границы.
func (s *Snapshot) ColumnValues(index int) []string {
	if index < 0 || index >= s.columnCount {
		return nil
	}
	values := make([]string, 0, s.rowCount)
	for _, row := range s.rows {
		v, _ := row.String(index)
		values = append(values, v)
	}
	return values
}

// ColumnValuesNamed собирает значения колонки по имени.
// nil если колонки с таким именем нет.
func (s *Snapshot) ColumnValuesNamed(name string) []string {
	i, ok := s.ordinals[name]
	if !ok {
		return nil
	}
	return s.ColumnValues(i)
}
