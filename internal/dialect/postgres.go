package dialect

import (
	"fmt"

	"qa-insight/internal/schema"
)

// PostgresDialect introspects the database selected by the DSN; Postgres has
// no cross-database catalog, so the database argument is ignored.
type PostgresDialect struct{}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) DatabasesQuery() (string, []any) {
	return `SELECT datname FROM pg_database WHERE NOT datistemplate ORDER BY datname`, nil
}

func (d *PostgresDialect) SchemasQuery(database string) (string, []any) {
	return `SELECT schema_name FROM information_schema.schemata WHERE schema_name NOT IN ('pg_catalog', 'information_schema') ORDER BY schema_name`, nil
}

func (d *PostgresDialect) TablesQuery(database, schemaName string) (string, []any) {
	q := fmt.Sprintf(`SELECT table_name FROM information_schema.tables WHERE table_schema = %s AND table_type = 'BASE TABLE' ORDER BY table_name`,
		d.Placeholder(0))
	return q, []any{d.GetSchemaName(schemaName)}
}

func (d *PostgresDialect) ColumnsQuery(database, schemaName, table string) (string, []any) {
	q := fmt.Sprintf(`SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = %s AND table_name = %s
		ORDER BY ordinal_position`,
		d.Placeholder(0), d.Placeholder(1))
	return q, []any{d.GetSchemaName(schemaName), table}
}

func (d *PostgresDialect) CountQuery(database, schemaName, table string) string {
	parts := quoteAll(d, d.GetSchemaName(schemaName), table)
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", qualify(parts...))
}

func (d *PostgresDialect) QuoteIdent(name string) string {
	return quoteWith(name, `"`, `"`)
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}

func (d *PostgresDialect) NullabilityRule() schema.NullabilityRule {
	return schema.YesNoRule()
}
