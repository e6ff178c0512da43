package transplant

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ruslano69/sqlitekit/pkg/audit"
	"github.com/ruslano69/sqlitekit/pkg/store"
)

// aliasExport - фиксированный alias присоединенного файла экспорта
const aliasExport = "export_target"

// Export экспортирует таблицу в файл хранилища по указанному пути.
// Если файла нет, создается пустое хранилище. Одноименная таблица
// в приемнике удаляется и пересоздается по дескриптору схемы источника,
// строки копируются с политикой replace. Все шаги кроме attach/detach
// выполняются в одной транзакции: при любом сбое приемник не получает
// ни частичной схемы, ни частичных данных. Alias снимается на любом
// пути выхода.
func Export(ctx context.Context, st *store.Store, table, path string) error {
	start := time.Now()

	rows, err := exportTable(ctx, st, table, path)
	if err != nil {
		st.Audit().Failure(ctx, audit.OpExport, table, err, time.Since(start))
		return err
	}

	st.Audit().Success(ctx, audit.OpExport, table, path, rows, time.Since(start))
	return nil
}

func exportTable(ctx context.Context, st *store.Store, table, path string) (int64, error) {
	// Файл приемника должен существовать и открываться
	if err := ensureStoreFile(ctx, path); err != nil {
		return -1, err
	}

	// ATTACH действует на конкретное физическое подключение
	conn, err := st.Conn(ctx)
	if err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.Export", err)
	}
	defer conn.Close()

	// сброс alias, оставшегося от прерванного вызова; ошибка ожидаема
	_, _ = conn.ExecContext(ctx, "DETACH DATABASE "+aliasExport)

	if _, err := conn.ExecContext(ctx, "ATTACH DATABASE ? AS "+aliasExport, path); err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.Export", err)
	}
	defer conn.ExecContext(ctx, "DETACH DATABASE "+aliasExport)

	// ATTACH/DETACH нельзя выполнять внутри транзакции,
	// поэтому транзакция начинается после присоединения
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.Export", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s.%s", aliasExport, table)); err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.Export", err)
	}

	schema, err := ReadTableSchema(ctx, tx, "", table)
	if err != nil {
		return -1, err
	}

	if _, err := tx.ExecContext(ctx, schema.CreateSQL(aliasExport, table)); err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.Export", err)
	}

	rows, err := CopyTable(ctx, tx, aliasExport+"."+table, table, "", nil, PolicyReplace)
	if err != nil {
		return -1, err
	}

	if err := tx.Commit(); err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.Export", err)
	}

	return rows, nil
}

// ensureStoreFile создает пустое хранилище по пути, если его нет,
// и проверяет что файл открывается
func ensureStoreFile(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return store.NewError(store.KindResource, "transplant.ensureStoreFile", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return store.NewError(store.KindResource, "transplant.ensureStoreFile", err)
	}

	return nil
}
