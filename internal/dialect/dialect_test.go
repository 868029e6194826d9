package dialect_test

import (
	"strings"
	"testing"

	"qa-insight/internal/dialect"
)

func TestGetDialect(t *testing.T) {
	for _, driver := range []string{"sqlserver", "mssql", "snowflake", "postgres", "mysql", "oracle", "sqlite"} {
		d, err := dialect.GetDialect(driver)
		if err != nil {
			t.Fatalf("GetDialect(%s): %v", driver, err)
		}
		if d == nil {
			t.Fatalf("GetDialect(%s) returned nil", driver)
		}
	}

	if _, err := dialect.GetDialect("db2"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestCountQuery_Quoting(t *testing.T) {
	tests := []struct {
		driver string
		db     string
		schema string
		table  string
		want   string
	}{
		{"sqlserver", "Sales", "", "Orders", "SELECT COUNT_BIG(*) FROM [Sales].[dbo].[Orders]"},
		{"sqlserver", "", "hr", "we]ird", "SELECT COUNT_BIG(*) FROM [hr].[we]]ird]"},
		{"snowflake", "SALES", "RAW", "ORDERS", `SELECT COUNT(*) FROM "SALES"."RAW"."ORDERS"`},
		{"snowflake", "", "", "orders", `SELECT COUNT(*) FROM "PUBLIC"."orders"`},
		{"postgres", "ignored", "", "orders", `SELECT COUNT(*) FROM "public"."orders"`},
		{"mysql", "shop", "", "orders", "SELECT COUNT(*) FROM `shop`.`orders`"},
		{"oracle", "", "app", "ORDERS", `SELECT COUNT(*) FROM "APP"."ORDERS"`},
		{"sqlite", "", "", `a"b`, `SELECT COUNT(*) FROM "main"."a""b"`},
	}

	for _, tt := range tests {
		t.Run(tt.driver+"/"+tt.table, func(t *testing.T) {
			d, _ := dialect.GetDialect(tt.driver)
			if got := d.CountQuery(tt.db, tt.schema, tt.table); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestColumnsQuery_BindsValues(t *testing.T) {
	d, _ := dialect.GetDialect("sqlserver")
	q, args := d.ColumnsQuery("Sales", "", "Orders")
	if !strings.Contains(q, "[Sales].INFORMATION_SCHEMA.COLUMNS") {
		t.Errorf("expected database-qualified catalog, got %s", q)
	}
	if len(args) != 2 || args[0] != "dbo" || args[1] != "Orders" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestColumnsQuery_Placeholders(t *testing.T) {
	tests := []struct {
		driver string
		want   []string
	}{
		{"sqlserver", []string{"TABLE_SCHEMA = @p1", "TABLE_NAME = @p2"}},
		{"postgres", []string{"table_schema = $1", "table_name = $2"}},
		{"oracle", []string{"OWNER = :1", "TABLE_NAME = :2"}},
		{"mysql", []string{"TABLE_SCHEMA = ?", "TABLE_NAME = ?"}},
		{"snowflake", []string{"TABLE_SCHEMA = ?", "TABLE_NAME = ?"}},
		{"sqlite", []string{"pragma_table_info(?, ?)"}},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, _ := dialect.GetDialect(tt.driver)
			q, args := d.ColumnsQuery("db", "app", "orders")
			for _, w := range tt.want {
				if !strings.Contains(q, w) {
					t.Errorf("expected %q in %s", w, q)
				}
			}
			if len(args) != 2 {
				t.Errorf("expected 2 bind args, got %v", args)
			}
		})
	}
}

func TestTablesQuery_DefaultSchema(t *testing.T) {
	tests := []struct {
		driver string
		want   any
	}{
		{"sqlserver", "dbo"},
		{"postgres", "public"},
		{"snowflake", "PUBLIC"},
	}
	for _, tt := range tests {
		d, _ := dialect.GetDialect(tt.driver)
		_, args := d.TablesQuery("db", "")
		if len(args) != 1 || args[0] != tt.want {
			t.Errorf("%s: expected schema arg %v, got %v", tt.driver, tt.want, args)
		}
	}

	// MySQL has no default schema and falls back to the database.
	mysql, _ := dialect.GetDialect("mysql")
	if _, args := mysql.TablesQuery("shop", ""); len(args) != 1 || args[0] != "shop" {
		t.Errorf("mysql: expected database fallback, got %v", args)
	}
	if _, args := mysql.TablesQuery("shop", "audit"); args[0] != "audit" {
		t.Errorf("mysql: expected explicit schema, got %v", args)
	}
}

func TestNullabilityRules(t *testing.T) {
	mssql, _ := dialect.GetDialect("sqlserver")
	snow, _ := dialect.GetDialect("snowflake")
	ora, _ := dialect.GetDialect("oracle")

	if !mssql.NullabilityRule().Decode("YES") || mssql.NullabilityRule().Decode("NO") {
		t.Error("sqlserver should decode YES/NO")
	}
	for _, tok := range []string{"Y", "YES", "true"} {
		if !snow.NullabilityRule().Decode(tok) {
			t.Errorf("snowflake should decode %s as nullable", tok)
		}
	}
	if !ora.NullabilityRule().Decode("Y") || ora.NullabilityRule().Decode("N") {
		t.Error("oracle should decode Y/N")
	}
}
