package snapshot

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Row - одна материализованная строка результата.
// Числовые getters парсят текстовое представление ячейки; неразборчивое
// значение, отсутствующая колонка и NULL неразличимы для вызывающего -
// все три дают ok=false. Это сохраненная особенность контракта,
// а не упущение.
type Row struct {
	number int
	cells  []cell
	owner  *Snapshot
}

// Number возвращает номер строки в результате (0-based)
func (r *Row) Number() int {
	return r.number
}

// String возвращает текст ячейки как есть.
// Blob кодируется в base64 (StdEncoding), поэтому текстовый доступ
// работает для колонки любого типа без потерь.
// ok=false для NULL и выхода за границы.
func (r *Row) String(col int) (string, bool) {
	if col < 0 || col >= len(r.cells) {
		return "", false
	}
	c := r.cells[col]
	switch c.kind {
	case cellBlob:
		return base64.StdEncoding.EncodeToString(c.blob), true
	case cellText:
		return c.text, true
	default:
		return "", false
	}
}

// StringOr возвращает текст ячейки или default при отсутствии значения
func (r *Row) StringOr(col int, def string) string {
	if v, ok := r.String(col); ok {
		return v
	}
	return def
}

// StringNamed возвращает текст ячейки по имени колонки
func (r *Row) StringNamed(name string) (string, bool) {
	col, ok := r.owner.Ordinal(name)
	if !ok {
		return "", false
	}
	return r.String(col)
}

// StringNamedOr возвращает текст ячейки по имени или default
func (r *Row) StringNamedOr(name, def string) string {
	if v, ok := r.StringNamed(name); ok {
		return v
	}
	return def
}

// Bytes возвращает сырые байты только для blob-ячейки.
// Для любого другого типа значения нет (не ошибка).
func (r *Row) Bytes(col int) ([]byte, bool) {
	if col < 0 || col >= len(r.cells) {
		return nil, false
	}
	c := r.cells[col]
	if c.kind != cellBlob {
		return nil, false
	}
	return c.blob, true
}

// BytesNamed возвращает сырые байты blob-ячейки по имени колонки
func (r *Row) BytesNamed(name string) ([]byte, bool) {
	col, ok := r.owner.Ordinal(name)
	if !ok {
		return nil, false
	}
	return r.Bytes(col)
}

// Int возвращает ячейку как int. Текст обрезается по пробелам перед
// парсингом. ok=false для NULL, отсутствующей колонки и неразборчивого
// значения.
func (r *Row) Int(col int) (int, bool) {
	s, ok := r.String(col)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// IntOr возвращает ячейку как int или default
func (r *Row) IntOr(col int, def int) int {
	if v, ok := r.Int(col); ok {
		return v
	}
	return def
}

// IntNamed возвращает ячейку как int по имени колонки
func (r *Row) IntNamed(name string) (int, bool) {
	col, ok := r.owner.Ordinal(name)
	if !ok {
		return 0, false
	}
	return r.Int(col)
}

// IntNamedOr возвращает ячейку как int по имени или default
func (r *Row) IntNamedOr(name string, def int) int {
	if v, ok := r.IntNamed(name); ok {
		return v
	}
	return def
}

// Int64 возвращает ячейку как int64
func (r *Row) Int64(col int) (int64, bool) {
	s, ok := r.String(col)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Int64Or возвращает ячейку как int64 или default
func (r *Row) Int64Or(col int, def int64) int64 {
	if v, ok := r.Int64(col); ok {
		return v
	}
	return def
}

// Int64Named возвращает ячейку как int64 по имени колонки
func (r *Row) Int64Named(name string) (int64, bool) {
	col, ok := r.owner.Ordinal(name)
	if !ok {
		return 0, false
	}
	return r.Int64(col)
}

// Int64NamedOr возвращает ячейку как int64 по имени или default
func (r *Row) Int64NamedOr(name string, def int64) int64 {
	if v, ok := r.Int64Named(name); ok {
		return v
	}
	return def
}

// Decimal возвращает ячейку как decimal с произвольной точностью
func (r *Row) Decimal(col int) (decimal.Decimal, bool) {
	s, ok := r.String(col)
	if !ok {
		return decimal.Decimal{}, false
	}
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v, true
}

// DecimalOr возвращает ячейку как decimal или default
func (r *Row) DecimalOr(col int, def decimal.Decimal) decimal.Decimal {
	if v, ok := r.Decimal(col); ok {
		return v
	}
	return def
}

// DecimalNamed возвращает ячейку как decimal по имени колонки
func (r *Row) DecimalNamed(name string) (decimal.Decimal, bool) {
	col, ok := r.owner.Ordinal(name)
	if !ok {
		return decimal.Decimal{}, false
	}
	return r.Decimal(col)
}

// DecimalNamedOr возвращает ячейку как decimal по имени или default
func (r *Row) DecimalNamedOr(name string, def decimal.Decimal) decimal.Decimal {
	if v, ok := r.DecimalNamed(name); ok {
		return v
	}
	return def
}
