// Package query - параметризованные запросы поверх store с материализацией
// результата в snapshot. Все операции синхронные и выполняются на вызывающей
// горутине; итератор результата освобождается на любом пути выхода.
package query

import (
	"context"
	"strings"
	"time"

	"github.com/ruslano69/sqlitekit/pkg/audit"
	"github.com/ruslano69/sqlitekit/pkg/snapshot"
	"github.com/ruslano69/sqlitekit/pkg/store"
)

// Options задает форму табличного запроса: проекция, фильтр с позиционными
// аргументами, группировка, сортировка и лимит
type Options struct {
	// Columns - колонки проекции (пустое = все колонки)
	Columns []string

	// Where - фильтр строк без ключевого слова WHERE, с ? плейсхолдерами
	Where string

	// Args - позиционные аргументы для Where
	Args []any

	// GroupBy - выражение группировки без GROUP BY
	GroupBy string

	// Having - фильтр групп без HAVING (используется только вместе с GroupBy)
	Having string

	// OrderBy - сортировка без ORDER BY
	OrderBy string

	// Limit - ограничение числа строк без LIMIT (текст, допускает "10 OFFSET 5")
	Limit string
}

// buildSelect собирает SELECT statement по частям запроса
func buildSelect(table string, opts Options) string {
	cols := "*"
	if len(opts.Columns) > 0 {
		cols = strings.Join(opts.Columns, ", ")
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(cols)
	b.WriteString(" FROM ")
	b.WriteString(table)

	if opts.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(opts.Where)
	}
	if opts.GroupBy != "" {
		b.WriteString(" GROUP BY ")
		b.WriteString(opts.GroupBy)
		if opts.Having != "" {
			b.WriteString(" HAVING ")
			b.WriteString(opts.Having)
		}
	}
	if opts.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(opts.OrderBy)
	}
	if opts.Limit != "" {
		b.WriteString(" LIMIT ")
		b.WriteString(opts.Limit)
	}

	return b.String()
}

// Table выполняет параметризованный запрос к таблице и материализует
// результат. При storage fault возвращается пустой snapshot и ошибка
// с Kind=Storage: старые вызывающие могут игнорировать ошибку и работать
// с пустым результатом.
func Table(ctx context.Context, st *store.Store, table string, opts Options) (*snapshot.Snapshot, error) {
	return Raw(ctx, st, buildSelect(table, opts), opts.Args...)
}

// Raw выполняет произвольный SQL с позиционными аргументами.
// Результат полностью материализуется до возврата, итератор закрывается.
func Raw(ctx context.Context, st *store.Store, sqlText string, args ...any) (*snapshot.Snapshot, error) {
	start := time.Now()

	rows, err := st.QueryContext(ctx, sqlText, args...)
	if err != nil {
		st.Audit().Failure(ctx, audit.OpQuery, sqlText, err, time.Since(start))
		return snapshot.New(nil), store.NewError(store.KindStorage, "query.Raw", err)
	}
	defer rows.Close()

	return snapshot.New(rows), nil
}

// FirstRow возвращает первую строку результата.
// Kind=EmptyResult если подходящих строк нет.
func FirstRow(ctx context.Context, st *store.Store, table string, opts Options) (*snapshot.Row, error) {
	opts.Limit = "1"
	snap, err := Table(ctx, st, table, opts)
	if err != nil {
		return nil, err
	}
	row, ok := snap.Row(0)
	if !ok {
		return nil, store.NewError(store.KindEmptyResult, "query.FirstRow", nil)
	}
	return row, nil
}

// Count возвращает число строк таблицы, подходящих под фильтр.
// where="" считает все строки.
func Count(ctx context.Context, st *store.Store, table, where string, args ...any) (int64, error) {
	sqlText := "SELECT COUNT(*) FROM " + table
	if where != "" {
		sqlText += " WHERE " + where
	}

	start := time.Now()
	var count int64
	if err := st.QueryRowContext(ctx, sqlText, args...).Scan(&count); err != nil {
		st.Audit().Failure(ctx, audit.OpQuery, sqlText, err, time.Since(start))
		return 0, store.NewError(store.KindStorage, "query.Count", err)
	}

	return count, nil
}

// CountOr возвращает число подходящих строк или 0 при любом сбое
func CountOr(ctx context.Context, st *store.Store, table, where string, args ...any) int64 {
	n, err := Count(ctx, st, table, where, args...)
	if err != nil {
		return 0
	}
	return n
}
