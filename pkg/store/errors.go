package store

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибку граничной операции над хранилищем
type Kind int

const (
	// KindStorage - движок отклонил statement, либо таблица/колонка не существует
	KindStorage Kind = iota

	// KindResource - файл хранилища нельзя открыть или создать
	KindResource

	// KindEmptyResult - запрос не вернул ни одной подходящей строки
	KindEmptyResult

	// KindMalformedScalar - текст не распарсился в запрошенный числовой тип
	KindMalformedScalar
)

// String - строковое представление вида ошибки
func (k Kind) String() string {
	switch k {
	case KindStorage:
		return "storage fault"
	case KindResource:
		return "resource fault"
	case KindEmptyResult:
		return "empty result"
	case KindMalformedScalar:
		return "malformed scalar"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Error - ошибка граничной операции с тегом вида.
// Заменяет swallow-and-log подход: операция возвращает и sentinel-значение
// (-1/false/default) для старых вызывающих, и типизированную ошибку для новых.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError создает ошибку граничной операции
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf возвращает вид ошибки. ok=false если ошибка не из этого пакета.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

// IsEmpty сообщает что ошибка означает отсутствие данных, а не сбой
func IsEmpty(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindEmptyResult
}
