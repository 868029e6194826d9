package dialect

import (
	"fmt"

	"qa-insight/internal/schema"
)

type MSSQLDialect struct{}

// Helper: MSSQL Driver (go-mssqldb) prefers @p1, @p2 parameters over ?.
// Database names are embedded as [db].INFORMATION_SCHEMA so a single
// connection can introspect every database on the server.

func (d *MSSQLDialect) Name() string { return "sqlserver" }

func (d *MSSQLDialect) DatabasesQuery() (string, []any) {
	return `SELECT name FROM sys.databases WHERE state_desc = 'ONLINE' ORDER BY name`, nil
}

func (d *MSSQLDialect) SchemasQuery(database string) (string, []any) {
	return fmt.Sprintf(`SELECT SCHEMA_NAME FROM %s ORDER BY SCHEMA_NAME`,
		qualify(d.dbPrefix(database), "INFORMATION_SCHEMA.SCHEMATA")), nil
}

func (d *MSSQLDialect) TablesQuery(database, schemaName string) (string, []any) {
	q := fmt.Sprintf(`SELECT TABLE_NAME FROM %s WHERE TABLE_SCHEMA = %s AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`,
		qualify(d.dbPrefix(database), "INFORMATION_SCHEMA.TABLES"), d.Placeholder(0))
	return q, []any{d.GetSchemaName(schemaName)}
}

func (d *MSSQLDialect) ColumnsQuery(database, schemaName, table string) (string, []any) {
	q := fmt.Sprintf(`
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE
		FROM %s
		WHERE TABLE_SCHEMA = %s AND TABLE_NAME = %s
		ORDER BY ORDINAL_POSITION`,
		qualify(d.dbPrefix(database), "INFORMATION_SCHEMA.COLUMNS"), d.Placeholder(0), d.Placeholder(1))
	return q, []any{d.GetSchemaName(schemaName), table}
}

func (d *MSSQLDialect) CountQuery(database, schemaName, table string) string {
	parts := quoteAll(d, database, d.GetSchemaName(schemaName), table)
	return fmt.Sprintf("SELECT COUNT_BIG(*) FROM %s", qualify(parts...))
}

func (d *MSSQLDialect) dbPrefix(database string) string {
	if database == "" {
		return ""
	}
	return d.QuoteIdent(database)
}

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return quoteWith(name, "[", "]")
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) GetSchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}

// NullabilityRule: INFORMATION_SCHEMA.COLUMNS.IS_NULLABLE is YES/NO.
func (d *MSSQLDialect) NullabilityRule() schema.NullabilityRule {
	return schema.YesNoRule()
}
