package transplant

import (
	"context"
	"strings"
	"testing"
)

func TestReadTableSchema(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.Exec(ctx, `
		CREATE TABLE Orders (
			OrderID INTEGER,
			LineNo INTEGER,
			Item TEXT NOT NULL,
			Qty INTEGER DEFAULT 1,
			Note,
			PRIMARY KEY (OrderID, LineNo)
		)
	`)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	schema, err := ReadTableSchema(ctx, st, "", "Orders")
	if err != nil {
		t.Fatalf("ReadTableSchema failed: %v", err)
	}

	if schema.Table != "Orders" {
		t.Errorf("Unexpected table name: %s", schema.Table)
	}
	if len(schema.Columns) != 5 {
		t.Fatalf("Expected 5 columns, got %d", len(schema.Columns))
	}

	item := schema.Columns[2]
	if item.Name != "Item" || !item.NotNull || item.PKOrder != 0 {
		t.Errorf("Unexpected Item column: %+v", item)
	}

	qty := schema.Columns[3]
	if qty.Default == nil || *qty.Default != "1" {
		t.Errorf("Expected default 1, got %+v", qty.Default)
	}

	// Колонка без объявленного типа
	note := schema.Columns[4]
	if note.Type != "" {
		t.Errorf("Expected empty type, got %q", note.Type)
	}

	// Составной ключ: позиции 1-based в порядке объявления
	if schema.Columns[0].PKOrder != 1 || schema.Columns[1].PKOrder != 2 {
		t.Errorf("Unexpected PK order: %d, %d", schema.Columns[0].PKOrder, schema.Columns[1].PKOrder)
	}
}

func TestReadTableSchema_MissingTable(t *testing.T) {
	st := openTestStore(t)

	if _, err := ReadTableSchema(context.Background(), st, "", "Ghost"); err == nil {
		t.Error("Expected error for missing table")
	}
}

func TestCreateSQL(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	err := st.Exec(ctx, `
		CREATE TABLE Orders (
			OrderID INTEGER,
			LineNo INTEGER,
			Item TEXT NOT NULL,
			Qty INTEGER DEFAULT 1,
			PRIMARY KEY (OrderID, LineNo)
		)
	`)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	schema, err := ReadTableSchema(ctx, st, "", "Orders")
	if err != nil {
		t.Fatalf("ReadTableSchema failed: %v", err)
	}

	sqlText := schema.CreateSQL("backup", "OrdersCopy")
	if !strings.HasPrefix(sqlText, "CREATE TABLE backup.OrdersCopy (") {
		t.Errorf("Unexpected prefix: %s", sqlText)
	}
	if !strings.Contains(sqlText, "Item TEXT NOT NULL") {
		t.Errorf("Missing NOT NULL constraint: %s", sqlText)
	}
	if !strings.Contains(sqlText, "Qty INTEGER DEFAULT 1") {
		t.Errorf("Missing default: %s", sqlText)
	}
	if !strings.Contains(sqlText, "PRIMARY KEY (OrderID, LineNo)") {
		t.Errorf("Missing composite key: %s", sqlText)
	}

	// Собранный SQL исполняется движком
	if err := st.Exec(ctx, schema.CreateSQL("", "OrdersCopy")); err != nil {
		t.Fatalf("Generated SQL rejected: %v", err)
	}

	rebuilt, err := ReadTableSchema(ctx, st, "", "OrdersCopy")
	if err != nil {
		t.Fatalf("ReadTableSchema failed: %v", err)
	}
	if len(rebuilt.Columns) != len(schema.Columns) {
		t.Errorf("Column count mismatch: %d != %d", len(rebuilt.Columns), len(schema.Columns))
	}
}

func TestCreateSQL_CarriesConstraintBody(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	// Имя таблицы встречается внутри constraint-а (self-reference)
	err := st.Exec(ctx, `
		CREATE TABLE Tree (
			ID INTEGER PRIMARY KEY,
			ParentID INTEGER REFERENCES Tree(ID),
			Label TEXT UNIQUE,
			Depth INTEGER CHECK (Depth >= 0)
		)
	`)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	schema, err := ReadTableSchema(ctx, st, "", "Tree")
	if err != nil {
		t.Fatalf("ReadTableSchema failed: %v", err)
	}
	if schema.DDL == "" {
		t.Fatal("Expected DDL captured from catalog")
	}

	sqlText := schema.CreateSQL("", "TreeCopy")
	if !strings.HasPrefix(sqlText, "CREATE TABLE TreeCopy (") {
		t.Errorf("Unexpected head: %s", sqlText)
	}
	// Переписывается только голова; ссылка на Tree внутри тела остается
	if !strings.Contains(sqlText, "REFERENCES Tree(ID)") {
		t.Errorf("Self-reference rewritten or lost: %s", sqlText)
	}
	if !strings.Contains(sqlText, "UNIQUE") || !strings.Contains(sqlText, "CHECK (Depth >= 0)") {
		t.Errorf("Constraints lost: %s", sqlText)
	}

	if err := st.Exec(ctx, sqlText); err != nil {
		t.Fatalf("Generated SQL rejected: %v", err)
	}
	if err := st.Exec(ctx, "INSERT INTO TreeCopy(ID, Label, Depth) VALUES(1, 'root', 0)"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := st.Exec(ctx, "INSERT INTO TreeCopy(ID, Label, Depth) VALUES(2, 'root', 1)"); err == nil {
		t.Error("Duplicate label accepted: UNIQUE not carried into copy")
	}
}

func TestCreateSQL_DefaultsToSourceName(t *testing.T) {
	schema := &TableSchema{
		Table:   "Events",
		Columns: []ColumnDef{{Name: "ID", Type: "INTEGER"}},
	}

	sqlText := schema.CreateSQL("", "")
	if !strings.HasPrefix(sqlText, "CREATE TABLE Events (") {
		t.Errorf("Unexpected SQL: %s", sqlText)
	}
}
