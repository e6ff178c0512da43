package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ruslano69/sqlitekit/pkg/store"
	"github.com/ruslano69/sqlitekit/pkg/transplant"
)

// TransferOptions holds options for export/import operations
type TransferOptions struct {
	Table    string
	File     string
	Compress bool
}

// ExportTable exports a table to a store file, optionally compressing
// the result to a .zst archive with an xxh3 checksum
func ExportTable(ctx context.Context, st *store.Store, opts TransferOptions) error {
	if opts.File == "" {
		return fmt.Errorf("--file is required for --export")
	}

	fmt.Printf("Exporting table '%s' to %s...\n", opts.Table, opts.File)

	if err := transplant.Export(ctx, st, opts.Table, opts.File); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Printf("✓ Exported '%s'\n", opts.Table)

	if opts.Compress {
		archive := opts.File + ".zst"
		sum, err := transplant.Compress(opts.File, archive)
		if err != nil {
			return fmt.Errorf("compression failed: %w", err)
		}
		fmt.Printf("✓ Compressed to %s (xxh3: %s)\n", archive, sum)
	}

	return nil
}

// ImportTable imports a table from a store file.
// A .zst archive is decompressed to a temporary file first.
func ImportTable(ctx context.Context, st *store.Store, opts TransferOptions) error {
	if opts.File == "" {
		return fmt.Errorf("--file is required for --import")
	}

	path := opts.File
	if opts.Compress || strings.HasSuffix(path, ".zst") {
		tmp, err := os.CreateTemp("", "sqlitekit-import-*.db")
		if err != nil {
			return fmt.Errorf("failed to create temp file: %w", err)
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		sum, err := transplant.Decompress(path, tmp.Name())
		if err != nil {
			return fmt.Errorf("decompression failed: %w", err)
		}
		fmt.Printf("✓ Decompressed %s (xxh3: %s)\n", path, sum)
		path = tmp.Name()
	}

	fmt.Printf("Importing table '%s' from %s...\n", opts.Table, path)

	if err := transplant.Import(ctx, st, path, opts.Table); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("✓ Imported '%s'\n", opts.Table)
	return nil
}
