package snapshot

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

type cellKind uint8

const (
	cellNull cellKind = iota
	cellText
	cellBlob
)

// cell - одно тегированное значение: text, blob или null.
// Значение фиксируется при конструировании snapshot и не перечитывается.
type cell struct {
	kind  cellKind
	text  string
	blob  []byte
	ctype ColumnType
}

// newCell тегирует значение, полученное от драйвера.
// Не-строковые скаляры сразу рендерятся в текст: дальше работает
// только текстовое представление.
func newCell(v any) cell {
	switch x := v.(type) {
	case nil:
		return cell{kind: cellNull, ctype: TypeNull}
	case []byte:
		// драйвер может переиспользовать буфер между строками
		b := make([]byte, len(x))
		copy(b, x)
		return cell{kind: cellBlob, blob: b, ctype: TypeBlob}
	case string:
		return cell{kind: cellText, text: x, ctype: TypeText}
	case int64:
		return cell{kind: cellText, text: strconv.FormatInt(x, 10), ctype: TypeInteger}
	case float64:
		return cell{kind: cellText, text: strconv.FormatFloat(x, 'g', -1, 64), ctype: TypeReal}
	case bool:
		if x {
			return cell{kind: cellText, text: "1", ctype: TypeInteger}
		}
		return cell{kind: cellText, text: "0", ctype: TypeInteger}
	case time.Time:
		return cell{kind: cellText, text: x.Format(time.RFC3339), ctype: TypeText}
	default:
		return cell{kind: cellText, text: fmt.Sprint(x), ctype: TypeText}
	}
}

// displayWidth - ширина значения в символах при отображении.
// Для blob это длина человекочитаемого размера ("1.2 kB"), не сами байты.
func (c cell) displayWidth() int {
	switch c.kind {
	case cellNull:
		return 0
	case cellBlob:
		return utf8.RuneCountInString(ByteCount(int64(len(c.blob)), true))
	default:
		return utf8.RuneCountInString(c.text)
	}
}
