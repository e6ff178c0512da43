package main

import "fmt"

const version = "0.3.0"

// PrintVersion prints version information
func PrintVersion() {
	fmt.Printf("sqlitekit version %s\n", version)
	fmt.Println("SQLite snapshot and table transplantation toolkit")
	fmt.Println("https://github.com/ruslano69/sqlitekit")
}

// PrintHelp prints comprehensive help information
func PrintHelp() {
	fmt.Println("sqlitekit - SQLite snapshot and table transplantation CLI")
	fmt.Printf("Version: %s\n\n", version)

	fmt.Println("USAGE:")
	fmt.Println("  sqlitekit -db <file> [command] [options]")
	fmt.Println()

	fmt.Println("COMMANDS:")
	fmt.Println("    --list                     List tables in the store")
	fmt.Println("    --query <table>            Query a table and print an aligned result table")
	fmt.Println("    --sql <text>               Run raw SQL and print the result")
	fmt.Println("    --copy <table> --to <dst>  Copy rows between tables in the store")
	fmt.Println("    --export <table> --file <path>   Export table to a store file")
	fmt.Println("    --import <table> --file <path>   Import table from a store file")
	fmt.Println()

	fmt.Println("QUERY OPTIONS:")
	fmt.Println("    --columns <a,b,c>          Column projection")
	fmt.Println("    --where <expr>             Row filter (positional args not supported in CLI)")
	fmt.Println("    --group-by <expr>          Grouping")
	fmt.Println("    --having <expr>            Group filter")
	fmt.Println("    --order-by <expr>          Sorting")
	fmt.Println("    --limit <n>                Row limit")
	fmt.Println()

	fmt.Println("COPY OPTIONS:")
	fmt.Println("    --conflict <policy>        none|abort|fail|rollback|ignore|replace")
	fmt.Println()

	fmt.Println("EXPORT/IMPORT OPTIONS:")
	fmt.Println("    --compress                 Write .zst archive next to exported file;")
	fmt.Println("                               on import, accept a .zst archive")
	fmt.Println()

	fmt.Println("GENERAL:")
	fmt.Println("    --db <file>                Store file path")
	fmt.Println("    --config <file>            YAML config (alternative to --db)")
	fmt.Println("    --version                  Print version")
	fmt.Println("    --help                     Print this help")
}
