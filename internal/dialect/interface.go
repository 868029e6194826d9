package dialect

import "qa-insight/internal/schema"

// Dialect abstracts database-specific introspection SQL.
//
// Every query method returns the SQL text together with its bind
// arguments. Identifiers are embedded with QuoteIdent, values are bound.
type Dialect interface {
	Name() string

	// Selection (Listing)
	DatabasesQuery() (string, []any)
	SchemasQuery(database string) (string, []any)
	TablesQuery(database, schema string) (string, []any)

	// Metadata Queries (Schema Introspection)
	// Columns must yield exactly: name, declared type, nullability token.
	ColumnsQuery(database, schema, table string) (string, []any)
	CountQuery(database, schema, table string) string

	// Helpers
	QuoteIdent(name string) string
	Placeholder(index int) string      // 0-based; returns ?, $1, @p1, :1
	GetSchemaName(input string) string // applies the backend's default schema
	NullabilityRule() schema.NullabilityRule
}
