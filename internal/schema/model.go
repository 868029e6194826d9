package schema

// RawColumn is one column's metadata exactly as a backend reports it.
type RawColumn struct {
	Name         string
	DeclaredType string
	Nullable     string // backend token, e.g. "YES"/"NO" or "Y"/"N"
}

// Descriptor is the backend-agnostic form of a column.
type Descriptor struct {
	CanonicalName string
	DeclaredType  string
	Nullable      bool
}

// ColumnComparison aligns one canonical name across both sides.
// Left or Right is nil when the column exists on one side only.
type ColumnComparison struct {
	CanonicalName    string
	Left             *Descriptor
	Right            *Descriptor
	NameMatch        bool
	TypeMatch        bool
	NullabilityMatch bool
}

// Matches reports whether all three flags hold.
func (c ColumnComparison) Matches() bool {
	return c.NameMatch && c.TypeMatch && c.NullabilityMatch
}

// SchemaReport is the result of Compare.
type SchemaReport struct {
	Rows         []ColumnComparison
	OverallMatch bool
}

// Mismatches returns the rows that do not fully match.
func (r SchemaReport) Mismatches() []ColumnComparison {
	var out []ColumnComparison
	for _, row := range r.Rows {
		if !row.Matches() {
			out = append(out, row)
		}
	}
	return out
}

// CountDiff carries both counts when they differ.
type CountDiff struct {
	Left  int64
	Right int64
}
