package dialect

import (
	"fmt"

	"qa-insight/internal/schema"
)

// SQLiteDialect serves local files and in-memory databases (modernc.org/sqlite).
type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string { return "sqlite" }

func (d *SQLiteDialect) DatabasesQuery() (string, []any) {
	return `SELECT name FROM pragma_database_list ORDER BY seq`, nil
}

func (d *SQLiteDialect) SchemasQuery(database string) (string, []any) {
	return `SELECT name FROM pragma_database_list ORDER BY seq`, nil
}

func (d *SQLiteDialect) TablesQuery(database, schemaName string) (string, []any) {
	return fmt.Sprintf(`SELECT name FROM %s.sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%%' ORDER BY name`,
		d.QuoteIdent(d.GetSchemaName(schemaName))), nil
}

func (d *SQLiteDialect) ColumnsQuery(database, schemaName, table string) (string, []any) {
	// pragma_table_info reports notnull as 0/1; expose it as YES/NO like INFORMATION_SCHEMA.
	q := fmt.Sprintf(`SELECT name, type, CASE WHEN "notnull" = 0 THEN 'YES' ELSE 'NO' END FROM pragma_table_info(%s, %s) ORDER BY cid`,
		d.Placeholder(0), d.Placeholder(1))
	return q, []any{table, d.GetSchemaName(schemaName)}
}

func (d *SQLiteDialect) CountQuery(database, schemaName, table string) string {
	parts := quoteAll(d, d.GetSchemaName(schemaName), table)
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", qualify(parts...))
}

func (d *SQLiteDialect) QuoteIdent(name string) string {
	return quoteWith(name, `"`, `"`)
}

func (d *SQLiteDialect) Placeholder(index int) string {
	return "?"
}

func (d *SQLiteDialect) GetSchemaName(input string) string {
	if input == "" {
		return "main"
	}
	return input
}

func (d *SQLiteDialect) NullabilityRule() schema.NullabilityRule {
	return schema.YesNoRule()
}
