package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ruslano69/sqlitekit/cmd/sqlitekit/commands"
	"github.com/ruslano69/sqlitekit/pkg/store"
)

func main() {
	ctx := context.Background()

	// Parse flags
	flags := ParseFlags()

	// Handle version
	if *flags.Version {
		PrintVersion()
		os.Exit(0)
	}

	// Handle help
	if *flags.Help {
		PrintHelp()
		os.Exit(0)
	}

	// Build store config
	cfg, err := buildConfig(flags)
	if err != nil {
		fatal("Failed to load config: %v", err)
	}

	st, err := store.Open(ctx, cfg)
	if err != nil {
		fatal("Failed to open store: %v", err)
	}
	defer st.Close()

	opts := commands.QueryShape{
		Columns: splitColumns(*flags.Columns),
		Where:   *flags.Where,
		GroupBy: *flags.GroupBy,
		Having:  *flags.Having,
		OrderBy: *flags.OrderBy,
		Limit:   *flags.Limit,
	}

	// Route commands
	var cmdErr error

	switch {
	case *flags.List:
		cmdErr = commands.ListTables(ctx, st)
	case *flags.Query != "":
		cmdErr = commands.QueryTable(ctx, st, *flags.Query, opts)
	case *flags.Raw != "":
		cmdErr = commands.RawQuery(ctx, st, *flags.Raw)
	case *flags.Copy != "":
		cmdErr = commands.CopyTable(ctx, st, commands.CopyOptions{
			Source:      *flags.Copy,
			Destination: *flags.To,
			Where:       *flags.Where,
			Conflict:    *flags.Conflict,
		})
	case *flags.Export != "":
		cmdErr = commands.ExportTable(ctx, st, commands.TransferOptions{
			Table:    *flags.Export,
			File:     *flags.File,
			Compress: *flags.Compress,
		})
	case *flags.Import != "":
		cmdErr = commands.ImportTable(ctx, st, commands.TransferOptions{
			Table:    *flags.Import,
			File:     *flags.File,
			Compress: *flags.Compress,
		})
	default:
		PrintHelp()
	}

	// Handle errors
	if cmdErr != nil {
		fatal("Command failed: %v", cmdErr)
	}
}

// buildConfig собирает конфигурацию хранилища из --config или --db
func buildConfig(flags *Flags) (store.Config, error) {
	if *flags.Config != "" {
		return store.LoadConfig(*flags.Config)
	}
	if *flags.DB == "" {
		return store.Config{}, fmt.Errorf("either --db or --config is required")
	}
	return store.DefaultConfig(*flags.DB), nil
}

func splitColumns(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
