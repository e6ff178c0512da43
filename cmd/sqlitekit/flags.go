package main

import "flag"

// Flags holds all command-line flags
type Flags struct {
	// Commands
	List   *bool
	Query  *string // Table name to query
	Raw    *string // Raw SQL text
	Copy   *string // Source table for copy (destination in -to)
	Export *string // Table name to export (file in -file)
	Import *string // Table name to import (file in -file)

	// Query shape
	Columns *string
	Where   *string
	GroupBy *string
	Having  *string
	OrderBy *string
	Limit   *string

	// Copy options
	To       *string
	Conflict *string

	// Export/import options
	File     *string
	Compress *bool

	// Connection
	DB     *string
	Config *string

	// Misc
	Version *bool
	Help    *bool
}

// ParseFlags defines and parses all flags
func ParseFlags() *Flags {
	flags := &Flags{
		List:   flag.Bool("list", false, "List tables in the store"),
		Query:  flag.String("query", "", "Query a table and print the result"),
		Raw:    flag.String("sql", "", "Run raw SQL and print the result"),
		Copy:   flag.String("copy", "", "Copy rows from the named table (see -to)"),
		Export: flag.String("export", "", "Export a table to a store file (see -file)"),
		Import: flag.String("import", "", "Import a table from a store file (see -file)"),

		Columns: flag.String("columns", "", "Comma-separated column projection"),
		Where:   flag.String("where", "", "Row filter (WHERE clause body)"),
		GroupBy: flag.String("group-by", "", "Grouping expression"),
		Having:  flag.String("having", "", "Group filter (requires -group-by)"),
		OrderBy: flag.String("order-by", "", "Sort expression"),
		Limit:   flag.String("limit", "", "Row limit"),

		To:       flag.String("to", "", "Destination table for -copy"),
		Conflict: flag.String("conflict", "none", "Conflict policy: none|abort|fail|rollback|ignore|replace"),

		File:     flag.String("file", "", "Store file path for -export / -import"),
		Compress: flag.Bool("compress", false, "Compress exported file to .zst (decompress .zst on import)"),

		DB:     flag.String("db", "", "Path to the store file"),
		Config: flag.String("config", "", "Path to YAML config"),

		Version: flag.Bool("version", false, "Print version"),
		Help:    flag.Bool("help", false, "Print help"),
	}

	flag.Parse()
	return flags
}
