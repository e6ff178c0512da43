package transplant

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/ruslano69/sqlitekit/pkg/store"
)

// ColumnDef - структурное описание одной колонки таблицы
type ColumnDef struct {
	// Name - имя колонки
	Name string

	// Type - объявленный тип как есть (может быть пустым)
	Type string

	// NotNull - колонка с ограничением NOT NULL
	NotNull bool

	// Default - SQL-литерал значения по умолчанию, nil если не задан
	Default *string

	// PKOrder - позиция в первичном ключе (1-based), 0 = не входит в ключ
	PKOrder int
}

// TableSchema - структурный дескриптор схемы таблицы.
// Колонки снимаются с каталога программно; DDL пересоздания берет тело
// определения из сохраненного в каталоге CREATE TABLE и переписывает
// только голову statement (имя до тела). Так переносятся UNIQUE, CHECK,
// FOREIGN KEY и AUTOINCREMENT, а вхождения имени таблицы внутри
// constraint-ов не затрагиваются - глобальная текстовая подстановка
// имени их ломала бы.
type TableSchema struct {
	// Table - имя таблицы в источнике
	Table string

	// Columns - колонки в порядке объявления
	Columns []ColumnDef

	// DDL - текст CREATE TABLE из каталога схемы ("" если недоступен)
	DDL string
}

// ReadTableSchema читает дескриптор таблицы из каталога схемы.
// schemaName - имя присоединенной БД, "" = основная.
func ReadTableSchema(ctx context.Context, db store.DBTX, schemaName, table string) (*TableSchema, error) {
	pragma := fmt.Sprintf("PRAGMA table_info(%s)", table)
	if schemaName != "" {
		pragma = fmt.Sprintf("PRAGMA %s.table_info(%s)", schemaName, table)
	}

	rows, err := db.QueryContext(ctx, pragma)
	if err != nil {
		return nil, store.NewError(store.KindStorage, "transplant.ReadTableSchema", err)
	}
	defer rows.Close()

	schema := &TableSchema{Table: table}

	for rows.Next() {
		var (
			cid       int
			name      string
			dataType  string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &dfltValue, &pk); err != nil {
			return nil, store.NewError(store.KindStorage, "transplant.ReadTableSchema", err)
		}

		col := ColumnDef{
			Name:    name,
			Type:    dataType,
			NotNull: notNull != 0,
			PKOrder: pk,
		}
		if dfltValue.Valid {
			v := dfltValue.String
			col.Default = &v
		}

		schema.Columns = append(schema.Columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewError(store.KindStorage, "transplant.ReadTableSchema", err)
	}

	if len(schema.Columns) == 0 {
		return nil, store.NewError(store.KindStorage, "transplant.ReadTableSchema",
			fmt.Errorf("table %s not found or has no columns", table))
	}

	catalog := "sqlite_master"
	if schemaName != "" {
		catalog = schemaName + ".sqlite_master"
	}
	var ddl sql.NullString
	err = db.QueryRowContext(ctx,
		"SELECT sql FROM "+catalog+" WHERE type='table' AND name = ?", table).Scan(&ddl)
	if err != nil {
		return nil, store.NewError(store.KindStorage, "transplant.ReadTableSchema", err)
	}
	if ddl.Valid {
		schema.DDL = ddl.String
	}

	return schema, nil
}

// CreateSQL собирает CREATE TABLE statement для указанного schema и имени.
// table="" использует имя исходной таблицы; schemaName="" создает в основной БД.
// При наличии DDL из каталога тело определения (от первой открывающей скобки,
// включая хвост вроде WITHOUT ROWID) переносится дословно - вместе со всеми
// table-constraint-ами; заново собранная голова заменяет только имя.
func (s *TableSchema) CreateSQL(schemaName, table string) string {
	target := table
	if target == "" {
		target = s.Table
	}
	if schemaName != "" {
		target = schemaName + "." + target
	}

	if s.DDL != "" {
		if i := strings.Index(s.DDL, "("); i >= 0 {
			return "CREATE TABLE " + target + " " + s.DDL[i:]
		}
	}

	var defs []string
	var pk []ColumnDef

	for _, c := range s.Columns {
		def := c.Name
		if c.Type != "" {
			def += " " + c.Type
		}
		if c.NotNull {
			def += " NOT NULL"
		}
		if c.Default != nil {
			def += " DEFAULT " + *c.Default
		}
		defs = append(defs, def)

		if c.PKOrder > 0 {
			pk = append(pk, c)
		}
	}

	if len(pk) > 0 {
		sort.Slice(pk, func(i, j int) bool { return pk[i].PKOrder < pk[j].PKOrder })
		names := make([]string, len(pk))
		for i, c := range pk {
			names[i] = c.Name
		}
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(names, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", target, strings.Join(defs, ",\n  "))
}
