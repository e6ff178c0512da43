package commands

import (
	"context"
	"fmt"

	"github.com/ruslano69/sqlitekit/pkg/store"
	"github.com/ruslano69/sqlitekit/pkg/transplant"
)

// CopyOptions holds options for table-to-table copy
type CopyOptions struct {
	Source      string
	Destination string
	Where       string
	Conflict    string
}

// CopyTable copies rows between two tables in the store
func CopyTable(ctx context.Context, st *store.Store, opts CopyOptions) error {
	if opts.Destination == "" {
		return fmt.Errorf("--to is required for --copy")
	}

	policy, err := transplant.ParseConflictPolicy(opts.Conflict)
	if err != nil {
		return err
	}

	fmt.Printf("Copying '%s' -> '%s' (conflict: %s)...\n", opts.Source, opts.Destination, policy)

	rows, err := transplant.Copy(ctx, st, opts.Destination, opts.Source, opts.Where, nil, policy)
	if err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}

	fmt.Printf("✓ Copied %d row(s)\n", rows)
	return nil
}
