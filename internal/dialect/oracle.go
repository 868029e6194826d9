package dialect

import (
	"fmt"
	"strings"

	"qa-insight/internal/schema"
)

// OracleDialect maps schema to OWNER. There is one database per connection,
// so the database argument only appears in the listing.
type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

func (d *OracleDialect) DatabasesQuery() (string, []any) {
	return `SELECT SYS_CONTEXT('USERENV', 'DB_NAME') FROM DUAL`, nil
}

func (d *OracleDialect) SchemasQuery(database string) (string, []any) {
	return `SELECT USERNAME FROM ALL_USERS ORDER BY USERNAME`, nil
}

func (d *OracleDialect) TablesQuery(database, schemaName string) (string, []any) {
	return `SELECT TABLE_NAME FROM ALL_TABLES WHERE OWNER = ` + d.Placeholder(0) + ` ORDER BY TABLE_NAME`,
		[]any{d.GetSchemaName(schemaName)}
}

func (d *OracleDialect) ColumnsQuery(database, schemaName, table string) (string, []any) {
	// USER_TAB_COLUMNS when no owner is given, ALL_TAB_COLUMNS otherwise.
	if schemaName == "" {
		return `SELECT COLUMN_NAME, DATA_TYPE, NULLABLE FROM USER_TAB_COLUMNS WHERE TABLE_NAME = ` + d.Placeholder(0) + ` ORDER BY COLUMN_ID`,
			[]any{table}
	}
	q := fmt.Sprintf(`SELECT COLUMN_NAME, DATA_TYPE, NULLABLE FROM ALL_TAB_COLUMNS WHERE OWNER = %s AND TABLE_NAME = %s ORDER BY COLUMN_ID`,
		d.Placeholder(0), d.Placeholder(1))
	return q, []any{d.GetSchemaName(schemaName), table}
}

func (d *OracleDialect) CountQuery(database, schemaName, table string) string {
	parts := quoteAll(d, d.GetSchemaName(schemaName), table)
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", qualify(parts...))
}

func (d *OracleDialect) QuoteIdent(name string) string {
	return quoteWith(name, `"`, `"`)
}

func (d *OracleDialect) Placeholder(index int) string {
	// Oracle uses :1, :2, etc. (1-based index)
	return fmt.Sprintf(":%d", index+1)
}

// GetSchemaName upper-cases owners since Oracle stores unquoted names that way.
func (d *OracleDialect) GetSchemaName(input string) string {
	return strings.ToUpper(input)
}

// NullabilityRule: ALL_TAB_COLUMNS.NULLABLE is Y/N.
func (d *OracleDialect) NullabilityRule() schema.NullabilityRule {
	return schema.YNRule()
}
