package fetch_test

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"qa-insight/internal/dialect"
	"qa-insight/internal/fetch"
)

func openSQLite(t *testing.T, ddl ...string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1) // one in-memory database per connection
	t.Cleanup(func() { db.Close() })

	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return db
}

func newFetcher(t *testing.T, db *sql.DB) *fetch.SQLFetcher {
	t.Helper()
	d, err := dialect.GetDialect("sqlite")
	if err != nil {
		t.Fatal(err)
	}
	return fetch.NewSQLFetcher(db, d, nil, 0)
}

func TestSQLFetcher_Columns(t *testing.T) {
	db := openSQLite(t, `CREATE TABLE Orders (Id INTEGER NOT NULL, Amt DECIMAL, Note TEXT)`)
	f := newFetcher(t, db)

	res := f.Columns(context.Background(), fetch.Locator{Table: "Orders"})
	if res.Status != fetch.StatusOK {
		t.Fatalf("expected ok, got %s (%v)", res.Status, res.Err)
	}
	if len(res.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(res.Columns))
	}

	id := res.Columns[0]
	if id.Name != "Id" || id.DeclaredType != "INTEGER" || id.Nullable != "NO" {
		t.Errorf("unexpected first column %+v", id)
	}
	if res.Columns[1].Nullable != "YES" {
		t.Errorf("Amt should be nullable, got %q", res.Columns[1].Nullable)
	}
}

func TestSQLFetcher_ColumnsEmpty(t *testing.T) {
	f := newFetcher(t, openSQLite(t))

	res := f.Columns(context.Background(), fetch.Locator{Table: "missing"})
	if res.Status != fetch.StatusEmpty {
		t.Fatalf("expected empty, got %s", res.Status)
	}
	if res.Err != nil {
		t.Errorf("empty result must not carry an error: %v", res.Err)
	}
}

func TestSQLFetcher_RowCount(t *testing.T) {
	db := openSQLite(t,
		`CREATE TABLE t (a INTEGER)`,
		`INSERT INTO t VALUES (1), (2), (3)`,
		`CREATE TABLE empty_t (a INTEGER)`,
	)
	f := newFetcher(t, db)
	ctx := context.Background()

	got := f.RowCount(ctx, fetch.Locator{Table: "t"})
	if got.Status != fetch.StatusOK || got.Value != 3 {
		t.Errorf("expected 3 rows, got %+v", got)
	}

	empty := f.RowCount(ctx, fetch.Locator{Table: "empty_t"})
	if empty.Status != fetch.StatusOK || empty.Value != 0 {
		t.Errorf("expected ok zero count, got %+v", empty)
	}

	failed := f.RowCount(ctx, fetch.Locator{Table: "nope"})
	if failed.Status != fetch.StatusFailed || failed.Err == nil {
		t.Errorf("expected failure for missing table, got %+v", failed)
	}
}

func TestSQLFetcher_ClosedDB(t *testing.T) {
	db := openSQLite(t, `CREATE TABLE t (a INTEGER)`)
	f := newFetcher(t, db)
	db.Close()

	res := f.Columns(context.Background(), fetch.Locator{Table: "t"})
	if res.Status != fetch.StatusFailed {
		t.Fatalf("expected failed, got %s", res.Status)
	}
	if res.Err == nil {
		t.Error("failed result must carry the error")
	}
}

func TestSQLFetcher_Tables(t *testing.T) {
	db := openSQLite(t, `CREATE TABLE b (x INTEGER)`, `CREATE TABLE a (x INTEGER)`)
	f := newFetcher(t, db)

	tables, err := f.Tables(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 2 || tables[0] != "a" || tables[1] != "b" {
		t.Errorf("unexpected tables %v", tables)
	}

	dbs, err := f.Databases(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(dbs) == 0 || dbs[0] != "main" {
		t.Errorf("expected main database, got %v", dbs)
	}
}
