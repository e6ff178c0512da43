package query

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ruslano69/sqlitekit/pkg/store"
)

// ForString возвращает единственное текстовое значение первой подходящей
// строки. Blob рендерится в base64 по правилу Row.String.
// Kind=EmptyResult если строк нет или значение NULL.
func ForString(ctx context.Context, st *store.Store, table, column string, opts Options) (string, error) {
	opts.Columns = []string{column}
	opts.Limit = "1"

	snap, err := Table(ctx, st, table, opts)
	if err != nil {
		return "", err
	}
	row, ok := snap.Row(0)
	if !ok {
		return "", store.NewError(store.KindEmptyResult, "query.ForString", nil)
	}
	v, ok := row.String(0)
	if !ok {
		return "", store.NewError(store.KindEmptyResult, "query.ForString", nil)
	}
	return v, nil
}

// ForStringOr возвращает единственное текстовое значение или default
// при любом сбое или отсутствии данных
func ForStringOr(ctx context.Context, st *store.Store, table, column string, opts Options, def string) string {
	v, err := ForString(ctx, st, table, column, opts)
	if err != nil {
		return def
	}
	return v
}

// ForBytes возвращает единственное blob-значение.
// Kind=EmptyResult если строк нет или значение не blob.
func ForBytes(ctx context.Context, st *store.Store, table, column string, opts Options) ([]byte, error) {
	opts.Columns = []string{column}
	opts.Limit = "1"

	snap, err := Table(ctx, st, table, opts)
	if err != nil {
		return nil, err
	}
	row, ok := snap.Row(0)
	if !ok {
		return nil, store.NewError(store.KindEmptyResult, "query.ForBytes", nil)
	}
	v, ok := row.Bytes(0)
	if !ok {
		return nil, store.NewError(store.KindEmptyResult, "query.ForBytes", nil)
	}
	return v, nil
}

// ForInt возвращает единственное значение как int.
// Kind=MalformedScalar если текст не парсится как целое.
func ForInt(ctx context.Context, st *store.Store, table, column string, opts Options) (int, error) {
	s, err := ForString(ctx, st, table, column, opts)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, store.NewError(store.KindMalformedScalar, "query.ForInt", err)
	}
	return v, nil
}

// ForIntOr возвращает единственное значение как int или default
func ForIntOr(ctx context.Context, st *store.Store, table, column string, opts Options, def int) int {
	v, err := ForInt(ctx, st, table, column, opts)
	if err != nil {
		return def
	}
	return v
}

// ForInt64 возвращает единственное значение как int64
func ForInt64(ctx context.Context, st *store.Store, table, column string, opts Options) (int64, error) {
	s, err := ForString(ctx, st, table, column, opts)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, store.NewError(store.KindMalformedScalar, "query.ForInt64", err)
	}
	return v, nil
}

// ForInt64Or возвращает единственное значение как int64 или default
func ForInt64Or(ctx context.Context, st *store.Store, table, column string, opts Options, def int64) int64 {
	v, err := ForInt64(ctx, st, table, column, opts)
	if err != nil {
		return def
	}
	return v
}

// ForDecimal возвращает единственное значение как decimal
// с произвольной точностью
func ForDecimal(ctx context.Context, st *store.Store, table, column string, opts Options) (decimal.Decimal, error) {
	s, err := ForString(ctx, st, table, column, opts)
	if err != nil {
		return decimal.Decimal{}, err
	}
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, store.NewError(store.KindMalformedScalar, "query.ForDecimal", err)
	}
	return v, nil
}

// ForDecimalOr возвращает единственное значение как decimal или default
func ForDecimalOr(ctx context.Context, st *store.Store, table, column string, opts Options, def decimal.Decimal) decimal.Decimal {
	v, err := ForDecimal(ctx, st, table, column, opts)
	if err != nil {
		return def
	}
	return v
}
