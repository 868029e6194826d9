package fetch

import (
	"context"
	"fmt"

	"qa-insight/internal/schema"
)

// Status tells a real empty result apart from a failed fetch.
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Locator addresses one table on one endpoint.
type Locator struct {
	Database string
	Schema   string
	Table    string
}

func (l Locator) String() string {
	s := l.Table
	if l.Schema != "" {
		s = l.Schema + "." + s
	}
	if l.Database != "" {
		s = l.Database + "." + s
	}
	return s
}

// ColumnSet is the outcome of a column fetch. Err is set only when Status is StatusFailed.
type ColumnSet struct {
	Columns []schema.RawColumn
	Status  Status
	Err     error
}

// RowCount is the outcome of a count fetch. A zero Value with StatusOK is a
// genuinely empty table.
type RowCount struct {
	Value  int64
	Status Status
	Err    error
}

// Fetcher returns table metadata. Implementations never fail the caller:
// problems are reported through StatusFailed and logged.
type Fetcher interface {
	Columns(ctx context.Context, loc Locator) ColumnSet
	RowCount(ctx context.Context, loc Locator) RowCount
}

// Lister enumerates selectable objects on an endpoint.
type Lister interface {
	Databases(ctx context.Context) ([]string, error)
	Schemas(ctx context.Context, database string) ([]string, error)
	Tables(ctx context.Context, database, schema string) ([]string, error)
}
