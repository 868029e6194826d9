package fetch

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"qa-insight/internal/dialect"
	"qa-insight/internal/schema"
)

const defaultTimeout = 30 * time.Second

// SQLFetcher reads metadata through database/sql using a Dialect.
type SQLFetcher struct {
	db      *sql.DB
	d       dialect.Dialect
	log     *zap.Logger
	timeout time.Duration
}

// NewSQLFetcher wraps an open handle. A zero timeout means 30s per query.
func NewSQLFetcher(db *sql.DB, d dialect.Dialect, log *zap.Logger, timeout time.Duration) *SQLFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLFetcher{
		db:      db,
		d:       d,
		log:     log.With(zap.String("dialect", d.Name())),
		timeout: timeout,
	}
}

func (f *SQLFetcher) Columns(ctx context.Context, loc Locator) ColumnSet {
	log := f.log.With(zap.Stringer("table", loc))
	log.Info("fetching schema")

	cols, err := f.columns(ctx, loc)
	if err != nil {
		log.Error("error fetching schema", zap.Error(err))
		return ColumnSet{Status: StatusFailed, Err: err}
	}
	if len(cols) == 0 {
		log.Warn("no columns found")
		return ColumnSet{Status: StatusEmpty}
	}

	log.Info("schema fetched", zap.Int("columns", len(cols)))
	return ColumnSet{Columns: cols, Status: StatusOK}
}

func (f *SQLFetcher) columns(ctx context.Context, loc Locator) ([]schema.RawColumn, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	query, args := f.d.ColumnsQuery(loc.Database, loc.Schema, loc.Table)
	rows, err := f.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var cols []schema.RawColumn
	for rows.Next() {
		var name, dType, isNull sql.NullString
		if err := rows.Scan(&name, &dType, &isNull); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		if !name.Valid {
			continue // Skip invalid rows
		}
		cols = append(cols, schema.RawColumn{
			Name:         name.String,
			DeclaredType: dType.String,
			Nullable:     isNull.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}
	return cols, nil
}

func (f *SQLFetcher) RowCount(ctx context.Context, loc Locator) RowCount {
	log := f.log.With(zap.Stringer("table", loc))
	log.Info("fetching record count")

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var n int64
	if err := f.db.QueryRowContext(ctx, f.d.CountQuery(loc.Database, loc.Schema, loc.Table)).Scan(&n); err != nil {
		err = fmt.Errorf("failed to count rows: %w", err)
		log.Error("error fetching record count", zap.Error(err))
		return RowCount{Status: StatusFailed, Err: err}
	}

	log.Info("record count fetched", zap.Int64("count", n))
	return RowCount{Value: n, Status: StatusOK}
}

func (f *SQLFetcher) Databases(ctx context.Context) ([]string, error) {
	q, args := f.d.DatabasesQuery()
	return f.list(ctx, "databases", q, args)
}

func (f *SQLFetcher) Schemas(ctx context.Context, database string) ([]string, error) {
	q, args := f.d.SchemasQuery(database)
	return f.list(ctx, "schemas", q, args)
}

func (f *SQLFetcher) Tables(ctx context.Context, database, schemaName string) ([]string, error) {
	q, args := f.d.TablesQuery(database, schemaName)
	return f.list(ctx, "tables", q, args)
}

func (f *SQLFetcher) list(ctx context.Context, what, query string, args []any) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	f.log.Info("fetching " + what)
	rows, err := f.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", what, err)
	}
	f.log.Info(what+" fetched", zap.Int("count", len(names)))
	return names, nil
}

var (
	_ Fetcher = (*SQLFetcher)(nil)
	_ Lister  = (*SQLFetcher)(nil)
)
