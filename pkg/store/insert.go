package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ruslano69/sqlitekit/pkg/audit"
)

// InsertRows вставляет набор строк в одной транзакции: либо вставляются
// все строки, либо ни одной. Колонки берутся из первой строки
// (в отсортированном порядке), отсутствующий в строке ключ дает NULL.
// Возвращает число вставленных строк или -1 при ошибке.
func (s *Store) InsertRows(ctx context.Context, table string, rows []map[string]any) (int64, error) {
	return s.insertRows(ctx, table, "", rows)
}

// InsertRowsStamped - вариант InsertRows, проставляющий в каждой строке
// колонку tsColumn текущим временем (UTC, RFC3339) на момент вставки.
// Значение tsColumn из самой строки игнорируется.
func (s *Store) InsertRowsStamped(ctx context.Context, table, tsColumn string, rows []map[string]any) (int64, error) {
	if tsColumn == "" {
		return -1, NewError(KindStorage, "store.InsertRowsStamped", fmt.Errorf("timestamp column is required"))
	}
	return s.insertRows(ctx, table, tsColumn, rows)
}

func (s *Store) insertRows(ctx context.Context, table, tsColumn string, rows []map[string]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	start := time.Now()

	cols := make([]string, 0, len(rows[0])+1)
	for name := range rows[0] {
		if name == tsColumn {
			continue
		}
		cols = append(cols, name)
	}
	sort.Strings(cols)
	if tsColumn != "" {
		cols = append(cols, tsColumn)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	sqlText := fmt.Sprintf("INSERT INTO %s(%s) VALUES(%s)",
		table, strings.Join(cols, ", "), placeholders)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, NewError(KindStorage, "store.InsertRows", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, sqlText)
	if err != nil {
		s.logger.Failure(ctx, audit.OpExec, sqlText, err, time.Since(start))
		return -1, NewError(KindStorage, "store.InsertRows", err)
	}
	defer stmt.Close()

	var stamp string
	if tsColumn != "" {
		stamp = time.Now().UTC().Format(time.RFC3339)
	}

	for _, row := range rows {
		args := make([]any, 0, len(cols))
		for _, name := range cols {
			if name == tsColumn {
				args = append(args, stamp)
				continue
			}
			args = append(args, row[name])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			s.logger.Failure(ctx, audit.OpExec, sqlText, err, time.Since(start))
			return -1, NewError(KindStorage, "store.InsertRows", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return -1, NewError(KindStorage, "store.InsertRows", err)
	}

	n := int64(len(rows))
	s.logger.Success(ctx, audit.OpExec, table, "", n, time.Since(start))
	return n, nil
}
