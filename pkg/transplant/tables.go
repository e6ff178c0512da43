package transplant

import (
	"context"

	"github.com/ruslano69/sqlitekit/pkg/store"
)

// ListTables возвращает имена пользовательских таблиц из каталога схемы.
// Служебные таблицы движка (sqlite_%) исключаются.
// Порядок - как отдает каталог, без гарантированной сортировки.
func ListTables(ctx context.Context, db store.DBTX) ([]string, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type='table' AND name NOT LIKE 'sqlite_%'
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, store.NewError(store.KindStorage, "transplant.ListTables", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, store.NewError(store.KindStorage, "transplant.ListTables", err)
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewError(store.KindStorage, "transplant.ListTables", err)
	}

	return tables, nil
}
