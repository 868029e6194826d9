package engine

import (
	"qa-insight/internal/fetch"
	"qa-insight/internal/schema"
)

// Validation statuses, ordered from best to worst.
const (
	StatusMatch      = "MATCH"
	StatusMismatch   = "MISMATCH"
	StatusIncomplete = "INCOMPLETE" // at least one side could not be fetched
)

// Pair names the same table on both endpoints. An empty Right means the same name as Left.
type Pair struct {
	Left  string `mapstructure:"left" json:"left" yaml:"left"`
	Right string `mapstructure:"right" json:"right" yaml:"right"`
}

// RightTable returns the right-side table name.
func (p Pair) RightTable() string {
	if p.Right == "" {
		return p.Left
	}
	return p.Right
}

func (p Pair) String() string {
	if r := p.RightTable(); r != p.Left {
		return p.Left + " <-> " + r
	}
	return p.Left
}

// CountResult is the outcome of a count validation.
type CountResult struct {
	RunID  string
	Pair   Pair
	Left   fetch.RowCount
	Right  fetch.RowCount
	Diff   *schema.CountDiff
	Status string
}

// SchemaResult is the outcome of a schema validation. Report is nil when
// the status is StatusIncomplete.
type SchemaResult struct {
	RunID           string
	Pair            Pair
	Left            fetch.ColumnSet
	Right           fetch.ColumnSet
	LeftDuplicates  []string
	RightDuplicates []string
	Report          *schema.SchemaReport
	Status          string
}

// PairResult holds whichever validations a batch ran for one pair.
type PairResult struct {
	Pair   Pair
	Count  *CountResult
	Schema *SchemaResult
}

// Status returns the worst status among the validations that ran.
func (r PairResult) Status() string {
	status := StatusMatch
	if r.Count != nil {
		status = worst(status, r.Count.Status)
	}
	if r.Schema != nil {
		status = worst(status, r.Schema.Status)
	}
	return status
}

func worst(a, b string) string {
	if rank(b) > rank(a) {
		return b
	}
	return a
}

func rank(status string) int {
	switch status {
	case StatusMatch:
		return 0
	case StatusMismatch:
		return 1
	default:
		return 2
	}
}
