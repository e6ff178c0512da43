package transplant

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"time"

	"github.com/ruslano69/sqlitekit/pkg/audit"
	"github.com/ruslano69/sqlitekit/pkg/store"
)

// aliasImport - фиксированный alias присоединенного файла импорта
const aliasImport = "import_source"

// Import импортирует таблицу из внешнего файла хранилища.
// Одноименная локальная таблица уничтожается полностью - и определение,
// и данные: импорт это авторитетная перезапись, не merge.
// Шаги внутри одной транзакции, alias снимается на любом пути выхода.
func Import(ctx context.Context, st *store.Store, path, table string) error {
	start := time.Now()

	rows, err := importTable(ctx, st, path, table)
	if err != nil {
		st.Audit().Failure(ctx, audit.OpImport, table, err, time.Since(start))
		return err
	}

	st.Audit().Success(ctx, audit.OpImport, path, table, rows, time.Since(start))
	return nil
}

func importTable(ctx context.Context, st *store.Store, path, table string) (int64, error) {
	// Внешний файл должен существовать и открываться как хранилище
	if err := probeStoreFile(ctx, path); err != nil {
		return -1, err
	}

	conn, err := st.Conn(ctx)
	if err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.Import", err)
	}
	defer conn.Close()

	_, _ = conn.ExecContext(ctx, "DETACH DATABASE "+aliasImport)

	if _, err := conn.ExecContext(ctx, "ATTACH DATABASE ? AS "+aliasImport, path); err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.Import", err)
	}
	defer conn.ExecContext(ctx, "DETACH DATABASE "+aliasImport)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.Import", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.Import", err)
	}

	schema, err := ReadTableSchema(ctx, tx, aliasImport, table)
	if err != nil {
		return -1, err
	}

	if _, err := tx.ExecContext(ctx, schema.CreateSQL("", table)); err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.Import", err)
	}

	rows, err := CopyTable(ctx, tx, table, aliasImport+"."+table, "", nil, PolicyReplace)
	if err != nil {
		return -1, err
	}

	if err := tx.Commit(); err != nil {
		return -1, store.NewError(store.KindStorage, "transplant.Import", err)
	}

	return rows, nil
}

// probeStoreFile проверяет что по пути лежит открываемое хранилище.
// Файл открывается только на чтение и сразу закрывается.
func probeStoreFile(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return store.NewError(store.KindResource, "transplant.probeStoreFile", err)
	}

	// ? и # в имени файла должны попасть в путь DSN, а не в query/fragment
	u := url.URL{Path: path}
	db, err := sql.Open("sqlite", "file:"+u.EscapedPath()+"?mode=ro")
	if err != nil {
		return store.NewError(store.KindResource, "transplant.probeStoreFile", err)
	}
	defer db.Close()

	// ping может не читать заголовок файла, пробный запрос к каталогу читает
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master").Scan(&n); err != nil {
		return store.NewError(store.KindResource, "transplant.probeStoreFile", err)
	}

	return nil
}
