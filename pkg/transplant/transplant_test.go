package transplant

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruslano69/sqlitekit/pkg/store"
)

// countAttached возвращает число присоединенных БД помимо main и temp
func countAttached(t *testing.T, st *store.Store) int {
	t.Helper()

	rows, err := st.QueryContext(context.Background(), "PRAGMA database_list")
	if err != nil {
		t.Fatalf("database_list failed: %v", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var seq int
		var name, file string
		if err := rows.Scan(&seq, &name, &file); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if name != "main" && name != "temp" {
			n++
		}
	}
	return n
}

func TestExportImport_RoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	seedEmployees(t, st, "Employees", 7)

	exportPath := filepath.Join(t.TempDir(), "backup.db")

	if err := Export(ctx, st, "Employees", exportPath); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if n := countAttached(t, st); n != 0 {
		t.Errorf("Expected no dangling alias after export, got %d", n)
	}

	// Содержимое приемника проверяется независимым подключением
	ext, err := sql.Open("sqlite", exportPath)
	if err != nil {
		t.Fatalf("Failed to open export: %v", err)
	}
	var count int
	if err := ext.QueryRow("SELECT COUNT(*) FROM Employees").Scan(&count); err != nil {
		ext.Close()
		t.Fatalf("Count failed: %v", err)
	}
	ext.Close()
	if count != 7 {
		t.Errorf("Expected 7 exported rows, got %d", count)
	}

	// Локальная таблица уничтожается и восстанавливается из файла
	if err := st.Exec(ctx, "DELETE FROM Employees WHERE ID > 2"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := Import(ctx, st, exportPath, "Employees"); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n := countAttached(t, st); n != 0 {
		t.Errorf("Expected no dangling alias after import, got %d", n)
	}

	if err := st.QueryRowContext(ctx, "SELECT COUNT(*) FROM Employees").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 7 {
		t.Errorf("Expected 7 rows after import, got %d", count)
	}

	// Схема переносится вместе с данными
	schema, err := ReadTableSchema(ctx, st, "", "Employees")
	if err != nil {
		t.Fatalf("ReadTableSchema failed: %v", err)
	}
	if len(schema.Columns) != 3 || !schema.Columns[1].NotNull {
		t.Errorf("Schema not preserved: %+v", schema.Columns)
	}
}

func TestExportImport_PreservesConstraints(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.Exec(ctx, `
		CREATE TABLE Accounts (
			ID INTEGER PRIMARY KEY AUTOINCREMENT,
			Email TEXT NOT NULL UNIQUE,
			Age INTEGER CHECK (Age >= 0)
		)
	`)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := st.Exec(ctx, "INSERT INTO Accounts(Email, Age) VALUES('a@example.com', 30)"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	exportPath := filepath.Join(t.TempDir(), "accounts.db")
	if err := Export(ctx, st, "Accounts", exportPath); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if err := Import(ctx, st, exportPath, "Accounts"); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	// UNIQUE пережил перенос: дубликат отклоняется
	err = st.Exec(ctx, "INSERT INTO Accounts(Email, Age) VALUES('a@example.com', 40)")
	if err == nil {
		t.Error("Duplicate email accepted: UNIQUE constraint lost in transfer")
	}

	// CHECK пережил перенос
	err = st.Exec(ctx, "INSERT INTO Accounts(Email, Age) VALUES('b@example.com', -1)")
	if err == nil {
		t.Error("Negative age accepted: CHECK constraint lost in transfer")
	}

	// Политика ignore снова видит конфликт уникальности
	if err := st.Exec(ctx, "CREATE TABLE Incoming (ID INTEGER, Email TEXT, Age INTEGER)"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := st.Exec(ctx, "INSERT INTO Incoming VALUES(99, 'a@example.com', 50)"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	n, err := CopyTable(ctx, st, "Accounts", "Incoming", "", nil, PolicyIgnore)
	if err != nil {
		t.Fatalf("CopyTable failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected unique collision to be skipped, got %d inserted", n)
	}

	// AUTOINCREMENT пережил перенос: rowid не переиспользуется после удаления
	if err := st.Exec(ctx, "INSERT INTO Accounts(Email, Age) VALUES('c@example.com', 1)"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	var lastID int64
	if err := st.QueryRowContext(ctx, "SELECT MAX(ID) FROM Accounts").Scan(&lastID); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if err := st.Exec(ctx, "DELETE FROM Accounts WHERE ID = ?", lastID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := st.Exec(ctx, "INSERT INTO Accounts(Email, Age) VALUES('d@example.com', 2)"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	var newID int64
	if err := st.QueryRowContext(ctx, "SELECT MAX(ID) FROM Accounts").Scan(&newID); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if newID <= lastID {
		t.Errorf("Expected ID above %d, got %d: AUTOINCREMENT lost in transfer", lastID, newID)
	}
}

func TestExport_OverwritesTargetTable(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	seedEmployees(t, st, "Employees", 2)

	exportPath := filepath.Join(t.TempDir(), "backup.db")

	// Повторный экспорт пересоздает таблицу, а не дописывает
	for i := 0; i < 2; i++ {
		if err := Export(ctx, st, "Employees", exportPath); err != nil {
			t.Fatalf("Export #%d failed: %v", i+1, err)
		}
	}

	ext, err := sql.Open("sqlite", exportPath)
	if err != nil {
		t.Fatalf("Failed to open export: %v", err)
	}
	defer ext.Close()

	var count int
	if err := ext.QueryRow("SELECT COUNT(*) FROM Employees").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 rows after re-export, got %d", count)
	}
}

func TestExport_MissingTable(t *testing.T) {
	st := openTestStore(t)
	exportPath := filepath.Join(t.TempDir(), "backup.db")

	err := Export(context.Background(), st, "Ghost", exportPath)
	if err == nil {
		t.Fatal("Expected error for missing table")
	}
	// Сбой не оставляет висящий alias
	if n := countAttached(t, st); n != 0 {
		t.Errorf("Expected no dangling alias after failure, got %d", n)
	}
}

func TestImport_MissingFile(t *testing.T) {
	st := openTestStore(t)

	err := Import(context.Background(), st, filepath.Join(t.TempDir(), "nope.db"), "Employees")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if k, ok := store.KindOf(err); !ok || k != store.KindResource {
		t.Errorf("Expected resource fault, got %v", err)
	}
}

func TestImport_NotADatabase(t *testing.T) {
	st := openTestStore(t)

	badPath := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(badPath, []byte("this is not a database file at all"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	err := Import(context.Background(), st, badPath, "Employees")
	if err == nil {
		t.Fatal("Expected error for non-database file")
	}
	if k, ok := store.KindOf(err); !ok || k != store.KindResource {
		t.Errorf("Expected resource fault, got %v", err)
	}
}

func TestImport_SpecialCharsInPath(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	seedEmployees(t, st, "Employees", 4)

	// ? и # в имени файла не должны обрезать путь DSN
	exportPath := filepath.Join(t.TempDir(), "backup?v=2#latest.db")
	if err := Export(ctx, st, "Employees", exportPath); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if err := st.Exec(ctx, "DELETE FROM Employees"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := Import(ctx, st, exportPath, "Employees"); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	var count int
	if err := st.QueryRowContext(ctx, "SELECT COUNT(*) FROM Employees").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 4 {
		t.Errorf("Expected 4 rows after import, got %d", count)
	}
}

func TestImport_MissingTableKeepsLocal(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	seedEmployees(t, st, "Employees", 3)

	// Файл-источник без нужной таблицы
	srcPath := filepath.Join(t.TempDir(), "empty.db")
	ext, err := sql.Open("sqlite", srcPath)
	if err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}
	if _, err := ext.Exec("CREATE TABLE Other (ID INTEGER)"); err != nil {
		ext.Close()
		t.Fatalf("Create failed: %v", err)
	}
	ext.Close()

	if err := Import(ctx, st, srcPath, "Employees"); err == nil {
		t.Fatal("Expected error for missing source table")
	}
	if n := countAttached(t, st); n != 0 {
		t.Errorf("Expected no dangling alias after failure, got %d", n)
	}

	// DROP локальной таблицы откатился вместе с транзакцией
	var count int
	if err := st.QueryRowContext(ctx, "SELECT COUNT(*) FROM Employees").Scan(&count); err != nil {
		t.Fatalf("Local table lost after failed import: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 local rows intact, got %d", count)
	}
}

func TestListTables(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	tables, err := ListTables(ctx, st)
	if err != nil {
		t.Fatalf("ListTables failed: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("Expected no tables, got %v", tables)
	}

	seedEmployees(t, st, "Employees", 1)
	if err := st.Exec(ctx, "CREATE TABLE Departments (ID INTEGER)"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// Индексы и view не попадают в список
	if err := st.Exec(ctx, "CREATE INDEX idx_emp ON Employees(Name)"); err != nil {
		t.Fatalf("Create index failed: %v", err)
	}
	if err := st.Exec(ctx, "CREATE VIEW EmpView AS SELECT * FROM Employees"); err != nil {
		t.Fatalf("Create view failed: %v", err)
	}

	tables, err = ListTables(ctx, st)
	if err != nil {
		t.Fatalf("ListTables failed: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("Expected 2 tables, got %v", tables)
	}
	seen := map[string]bool{}
	for _, name := range tables {
		seen[name] = true
	}
	if !seen["Employees"] || !seen["Departments"] {
		t.Errorf("Unexpected tables: %v", tables)
	}
}
