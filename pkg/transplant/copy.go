// Package transplant переносит схему и содержимое таблиц между
// хранилищами (или внутри одного под новым именем) в одной транзакции,
// с политикой разрешения конфликтов уникальности в приемнике.
package transplant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ruslano69/sqlitekit/pkg/audit"
	"github.com/ruslano69/sqlitekit/pkg/store"
)

// ConflictPolicy определяет поведение при нарушении уникальности в приемнике
type ConflictPolicy int

// Политики в порядке возрастания деструктивности
const (
	// PolicyNone - поведение движка по умолчанию
	PolicyNone ConflictPolicy = iota

	// PolicyAbort - откатить statement, транзакция продолжается
	PolicyAbort

	// PolicyFail - остановить statement, уже вставленные строки остаются
	PolicyFail

	// PolicyRollback - откатить всю транзакцию
	PolicyRollback

	// PolicyIgnore - пропустить конфликтующую строку
	PolicyIgnore

	// PolicyReplace - заменить существующую строку
	PolicyReplace
)

// clause возвращает модификатор INSERT для политики ("OR REPLACE " и т.д.)
func (p ConflictPolicy) clause() string {
	switch p {
	case PolicyAbort:
		return "OR ABORT "
	case PolicyFail:
		return "OR FAIL "
	case PolicyRollback:
		return "OR ROLLBACK "
	case PolicyIgnore:
		return "OR IGNORE "
	case PolicyReplace:
		return "OR REPLACE "
	default:
		return ""
	}
}

// String - имя политики для логов и CLI
func (p ConflictPolicy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicyFail:
		return "fail"
	case PolicyRollback:
		return "rollback"
	case PolicyIgnore:
		return "ignore"
	case PolicyReplace:
		return "replace"
	default:
		return "none"
	}
}

// ParseConflictPolicy разбирает имя политики из CLI/конфигурации
func ParseConflictPolicy(name string) (ConflictPolicy, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return PolicyNone, nil
	case "abort":
		return PolicyAbort, nil
	case "fail":
		return PolicyFail, nil
	case "rollback":
		return PolicyRollback, nil
	case "ignore":
		return PolicyIgnore, nil
	case "replace":
		return PolicyReplace, nil
	default:
		return PolicyNone, fmt.Errorf("unknown conflict policy: %s", name)
	}
}

// CopyTable копирует строки источника в приемник одним set-based statement:
// INSERT [OR policy] INTO dst(cols) SELECT cols FROM src [WHERE ...].
// Имена колонок снимаются с источника нулевой пробой; приемник должен уже
// существовать с совместимыми колонками - типы не синтезируются.
//
// Возвращает фактическое число вставленных строк (RowsAffected единственного
// statement, без отдельного предварительного COUNT и его гонки)
// или -1 при ошибке.
func CopyTable(ctx context.Context, db store.DBTX, dst, src, where string, args []any, policy ConflictPolicy) (int64, error) {
	cols, err := probeColumns(ctx, db, src)
	if err != nil {
		return -1, err
	}

	colList := strings.Join(cols, ", ")
	sqlText := fmt.Sprintf("INSERT %sINTO %s(%s) SELECT %s FROM %s",
		policy.clause(), dst, colList, colList, src)
	if where != "" {
		sqlText += " WHERE " + where
	}

	res, err := db.ExecContext(ctx, sqlText, args...)
	if err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.CopyTable", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.CopyTable", err)
	}

	return n, nil
}

// Copy - вариант CopyTable на уровне Store с журналированием операции
func Copy(ctx context.Context, st *store.Store, dst, src, where string, args []any, policy ConflictPolicy) (int64, error) {
	start := time.Now()

	n, err := CopyTable(ctx, st, dst, src, where, args, policy)
	if err != nil {
		st.Audit().Failure(ctx, audit.OpCopy, src, err, time.Since(start))
		return -1, err
	}

	st.Audit().Success(ctx, audit.OpCopy, src, dst, n, time.Since(start))
	return n, nil
}

// probeColumns снимает имена колонок таблицы пробой без строк
func probeColumns(ctx context.Context, db store.DBTX, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", table))
	if err != nil {
		return nil, store.NewError(store.KindStorage, "transplant.probeColumns", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, store.NewError(store.KindStorage, "transplant.probeColumns", err)
	}

	return cols, nil
}
