package dialect

import (
	"fmt"

	"qa-insight/internal/schema"
)

// SnowflakeDialect targets the Snowflake warehouse through gosnowflake.
// Names are fully qualified, so no USE DATABASE / USE SCHEMA session state
// is needed on pooled connections.
type SnowflakeDialect struct{}

func (d *SnowflakeDialect) Name() string { return "snowflake" }

func (d *SnowflakeDialect) DatabasesQuery() (string, []any) {
	return `SELECT DATABASE_NAME FROM SNOWFLAKE.INFORMATION_SCHEMA.DATABASES ORDER BY DATABASE_NAME`, nil
}

func (d *SnowflakeDialect) SchemasQuery(database string) (string, []any) {
	return fmt.Sprintf(`SELECT SCHEMA_NAME FROM %s ORDER BY SCHEMA_NAME`,
		qualify(d.dbPrefix(database), "INFORMATION_SCHEMA.SCHEMATA")), nil
}

func (d *SnowflakeDialect) TablesQuery(database, schemaName string) (string, []any) {
	q := fmt.Sprintf(`SELECT TABLE_NAME FROM %s WHERE TABLE_SCHEMA = %s AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`,
		qualify(d.dbPrefix(database), "INFORMATION_SCHEMA.TABLES"), d.Placeholder(0))
	return q, []any{d.GetSchemaName(schemaName)}
}

func (d *SnowflakeDialect) ColumnsQuery(database, schemaName, table string) (string, []any) {
	q := fmt.Sprintf(`
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE
		FROM %s
		WHERE TABLE_SCHEMA = %s AND TABLE_NAME = %s
		ORDER BY ORDINAL_POSITION`,
		qualify(d.dbPrefix(database), "INFORMATION_SCHEMA.COLUMNS"), d.Placeholder(0), d.Placeholder(1))
	return q, []any{d.GetSchemaName(schemaName), table}
}

// CountQuery quotes every part, which makes the lookup case-sensitive.
// Pass names as stored in the catalog: unquoted Snowflake identifiers are
// stored upper-case, so `orders` must be given as `ORDERS`.
func (d *SnowflakeDialect) CountQuery(database, schemaName, table string) string {
	parts := quoteAll(d, database, d.GetSchemaName(schemaName), table)
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", qualify(parts...))
}

func (d *SnowflakeDialect) dbPrefix(database string) string {
	if database == "" {
		return ""
	}
	return d.QuoteIdent(database)
}

func (d *SnowflakeDialect) QuoteIdent(name string) string {
	return quoteWith(name, `"`, `"`)
}

func (d *SnowflakeDialect) Placeholder(index int) string {
	return "?"
}

func (d *SnowflakeDialect) GetSchemaName(input string) string {
	if input == "" {
		return "PUBLIC"
	}
	return input
}

// NullabilityRule accepts both the INFORMATION_SCHEMA (YES/NO) and the
// SHOW COLUMNS / export (Y/N) vocabularies.
func (d *SnowflakeDialect) NullabilityRule() schema.NullabilityRule {
	return schema.NewNullabilityRule(map[string]bool{
		"Y": true, "YES": true, "TRUE": true,
		"N": false, "NO": false, "FALSE": false,
	})
}
