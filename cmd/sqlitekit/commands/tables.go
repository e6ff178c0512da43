package commands

import (
	"context"
	"fmt"

	"github.com/ruslano69/sqlitekit/pkg/store"
	"github.com/ruslano69/sqlitekit/pkg/transplant"
)

// ListTables prints the names of user tables in the store
func ListTables(ctx context.Context, st *store.Store) error {
	tables, err := transplant.ListTables(ctx, st)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	if len(tables) == 0 {
		fmt.Println("⚠ No tables found")
		return nil
	}

	fmt.Printf("Tables in %s:\n", st.Path())
	for _, name := range tables {
		fmt.Printf("  %s\n", name)
	}
	fmt.Printf("✓ %d table(s)\n", len(tables))

	return nil
}
