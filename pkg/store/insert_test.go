package store

import (
	"context"
	"testing"
	"time"
)

func TestInsertRows(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Exec(ctx, "CREATE TABLE Events (ID INTEGER PRIMARY KEY, Kind TEXT NOT NULL, Payload TEXT)"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := st.InsertRows(ctx, "Events", []map[string]any{
		{"ID": 1, "Kind": "start", "Payload": "a"},
		{"ID": 2, "Kind": "stop", "Payload": "b"},
		{"ID": 3, "Kind": "start", "Payload": nil},
	})
	if err != nil {
		t.Fatalf("InsertRows failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 rows inserted, got %d", n)
	}

	var count int
	if err := st.QueryRowContext(ctx, "SELECT COUNT(*) FROM Events").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 rows, got %d", count)
	}

	// Пустой набор - ноль без ошибки
	if n, err := st.InsertRows(ctx, "Events", nil); err != nil || n != 0 {
		t.Errorf("Expected (0, nil) for empty set, got (%d, %v)", n, err)
	}
}

func TestInsertRows_AllOrNothing(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Exec(ctx, "CREATE TABLE Events (ID INTEGER PRIMARY KEY, Kind TEXT NOT NULL)"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Третья строка нарушает NOT NULL - откатывается вся пачка
	n, err := st.InsertRows(ctx, "Events", []map[string]any{
		{"ID": 1, "Kind": "ok"},
		{"ID": 2, "Kind": "ok"},
		{"ID": 3, "Kind": nil},
	})
	if err == nil {
		t.Fatal("Expected constraint error")
	}
	if n != -1 {
		t.Errorf("Expected -1 on error, got %d", n)
	}
	if k, ok := KindOf(err); !ok || k != KindStorage {
		t.Errorf("Expected storage fault, got %v", err)
	}

	var count int
	if err := st.QueryRowContext(ctx, "SELECT COUNT(*) FROM Events").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 rows after rollback, got %d", count)
	}
}

func TestInsertRowsStamped(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Exec(ctx, "CREATE TABLE Readings (ID INTEGER PRIMARY KEY, Value TEXT, UpdatedAt TEXT)"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before := time.Now().UTC().Add(-time.Second)
	n, err := st.InsertRowsStamped(ctx, "Readings", "UpdatedAt", []map[string]any{
		{"ID": 1, "Value": "x"},
		// Значение колонки времени из строки игнорируется
		{"ID": 2, "Value": "y", "UpdatedAt": "1970-01-01T00:00:00Z"},
	})
	if err != nil {
		t.Fatalf("InsertRowsStamped failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 rows, got %d", n)
	}

	rows, err := st.QueryContext(ctx, "SELECT UpdatedAt FROM Readings ORDER BY ID")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stamp string
		if err := rows.Scan(&stamp); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		ts, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			t.Fatalf("Stamp not RFC3339: %q", stamp)
		}
		if ts.Before(before) {
			t.Errorf("Stamp %s predates the insert", stamp)
		}
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Rows failed: %v", err)
	}

	// Без имени колонки времени вставка отклоняется
	if _, err := st.InsertRowsStamped(ctx, "Readings", "", []map[string]any{{"ID": 3}}); err == nil {
		t.Error("Expected error for empty timestamp column")
	}
}
