package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/ruslano69/sqlitekit/pkg/query"
	"github.com/ruslano69/sqlitekit/pkg/snapshot"
	"github.com/ruslano69/sqlitekit/pkg/store"
)

// QueryShape holds the query parts passed from CLI flags
type QueryShape struct {
	Columns []string
	Where   string
	GroupBy string
	Having  string
	OrderBy string
	Limit   string
}

// QueryTable runs a parameterized table query and prints the snapshot
func QueryTable(ctx context.Context, st *store.Store, table string, shape QueryShape) error {
	snap, err := query.Table(ctx, st, table, query.Options{
		Columns: shape.Columns,
		Where:   shape.Where,
		GroupBy: shape.GroupBy,
		Having:  shape.Having,
		OrderBy: shape.OrderBy,
		Limit:   shape.Limit,
	})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	printSnapshot(snap)
	return nil
}

// RawQuery runs raw SQL and prints the snapshot
func RawQuery(ctx context.Context, st *store.Store, sqlText string) error {
	snap, err := query.Raw(ctx, st, sqlText)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	printSnapshot(snap)
	return nil
}

// printSnapshot renders the snapshot as an aligned text table.
// Column widths come from the snapshot: max cell width per column,
// blob cells shown as their human-readable size.
func printSnapshot(snap *snapshot.Snapshot) {
	if snap.ColumnCount() == 0 {
		fmt.Println("⚠ Empty result")
		return
	}

	cols := snap.Columns()

	header := make([]string, len(cols))
	rule := make([]string, len(cols))
	for i, c := range cols {
		header[i] = pad(c.Name, c.Width)
		rule[i] = strings.Repeat("-", c.Width)
	}
	fmt.Println(strings.Join(header, " | "))
	fmt.Println(strings.Join(rule, "-+-"))

	for _, row := range snap.Rows() {
		fields := make([]string, len(cols))
		for i, c := range cols {
			fields[i] = pad(renderCell(row, i), c.Width)
		}
		fmt.Println(strings.Join(fields, " | "))
	}

	fmt.Printf("✓ %d row(s)\n", snap.RowCount())
}

// renderCell shows blob cells as their size, everything else as text
func renderCell(row *snapshot.Row, col int) string {
	if b, ok := row.Bytes(col); ok {
		return snapshot.ByteCount(int64(len(b)), true)
	}
	return row.StringOr(col, "")
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
