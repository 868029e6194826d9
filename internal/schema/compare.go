package schema

import "sort"

// TypeAlias declares a left-side type and a right-side type as equivalent.
type TypeAlias struct {
	Left  string `mapstructure:"left" json:"left" yaml:"left"`
	Right string `mapstructure:"right" json:"right" yaml:"right"`
}

// Options tunes CompareWith. The zero value compares declared types exactly.
type Options struct {
	TypeAliases []TypeAlias
}

func (o Options) typesEqual(left, right string) bool {
	if left == right {
		return true
	}
	for _, a := range o.TypeAliases {
		if a.Left == left && a.Right == right {
			return true
		}
	}
	return false
}

// Compare aligns two descriptor sets by canonical name (full outer join)
// and evaluates each column. Declared types are compared verbatim: no
// translation between type vocabularies happens here.
func Compare(left, right []Descriptor) SchemaReport {
	return CompareWith(left, right, Options{})
}

// CompareWith is Compare with a type-alias table.
func CompareWith(left, right []Descriptor, opts Options) SchemaReport {
	lm := index(left)
	rm := index(right)

	var common, leftOnly, rightOnly []string
	for name := range lm {
		if _, ok := rm[name]; ok {
			common = append(common, name)
		} else {
			leftOnly = append(leftOnly, name)
		}
	}
	for name := range rm {
		if _, ok := lm[name]; !ok {
			rightOnly = append(rightOnly, name)
		}
	}
	sort.Strings(common)
	sort.Strings(leftOnly)
	sort.Strings(rightOnly)

	report := SchemaReport{
		Rows:         make([]ColumnComparison, 0, len(common)+len(leftOnly)+len(rightOnly)),
		OverallMatch: true,
	}

	for _, name := range common {
		l, r := lm[name], rm[name]
		row := ColumnComparison{
			CanonicalName:    name,
			Left:             &l,
			Right:            &r,
			NameMatch:        true,
			TypeMatch:        opts.typesEqual(l.DeclaredType, r.DeclaredType),
			NullabilityMatch: l.Nullable == r.Nullable,
		}
		report.add(row)
	}
	for _, name := range leftOnly {
		l := lm[name]
		report.add(ColumnComparison{CanonicalName: name, Left: &l})
	}
	for _, name := range rightOnly {
		r := rm[name]
		report.add(ColumnComparison{CanonicalName: name, Right: &r})
	}

	return report
}

func (r *SchemaReport) add(row ColumnComparison) {
	r.Rows = append(r.Rows, row)
	if !row.Matches() {
		r.OverallMatch = false
	}
}

// index keys descriptors by canonical name; later entries overwrite earlier ones.
func index(ds []Descriptor) map[string]Descriptor {
	m := make(map[string]Descriptor, len(ds))
	for _, d := range ds {
		m[d.CanonicalName] = d
	}
	return m
}

// CompareCounts reports whether two record counts are equal, with a diff on mismatch.
func CompareCounts(left, right int64) (bool, *CountDiff) {
	if left == right {
		return true, nil
	}
	return false, &CountDiff{Left: left, Right: right}
}
