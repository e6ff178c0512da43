package snapshot

import "github.com/dustin/go-humanize"

// ByteCount возвращает человекочитаемое представление числа байт.
// si=true - степени 1000 ("1.0 kB"), si=false - степени 1024 ("1.0 KiB").
// Значения меньше единицы измерения выводятся как есть: "999 B".
func ByteCount(n int64, si bool) string {
	if n < 0 {
		n = 0
	}
	if si {
		return humanize.Bytes(uint64(n))
	}
	return humanize.IBytes(uint64(n))
}
