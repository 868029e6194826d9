package dialect

import (
	"fmt"
	"strings"

	"qa-insight/internal/schema"
)

// MysqlDialect treats database and schema as the same thing: the schema
// argument wins, the database argument is the fallback.
type MysqlDialect struct{}

func (d *MysqlDialect) Name() string { return "mysql" }

func (d *MysqlDialect) DatabasesQuery() (string, []any) {
	return `SELECT SCHEMA_NAME FROM information_schema.SCHEMATA ORDER BY SCHEMA_NAME`, nil
}

func (d *MysqlDialect) SchemasQuery(database string) (string, []any) {
	return `SELECT SCHEMA_NAME FROM information_schema.SCHEMATA WHERE SCHEMA_NAME = ` + d.Placeholder(0), []any{database}
}

func (d *MysqlDialect) TablesQuery(database, schemaName string) (string, []any) {
	q := fmt.Sprintf(`SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = %s AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`,
		d.Placeholder(0))
	return q, []any{d.target(database, schemaName)}
}

func (d *MysqlDialect) ColumnsQuery(database, schemaName, table string) (string, []any) {
	q := fmt.Sprintf(`SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = %s AND TABLE_NAME = %s ORDER BY ORDINAL_POSITION`,
		d.Placeholder(0), d.Placeholder(1))
	return q, []any{d.target(database, schemaName), table}
}

func (d *MysqlDialect) CountQuery(database, schemaName, table string) string {
	parts := quoteAll(d, d.target(database, schemaName), table)
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", qualify(parts...))
}

func (d *MysqlDialect) target(database, schemaName string) string {
	if s := d.GetSchemaName(schemaName); s != "" {
		return s
	}
	return database
}

func (d *MysqlDialect) QuoteIdent(name string) string {
	return quoteWith(name, "`", "`")
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

// GetSchemaName has no default: an empty schema falls back to the database.
func (d *MysqlDialect) GetSchemaName(input string) string {
	return strings.TrimSpace(input)
}

func (d *MysqlDialect) NullabilityRule() schema.NullabilityRule {
	return schema.YesNoRule()
}
