package report

import (
	"qa-insight/internal/engine"
	"qa-insight/internal/fetch"
	"qa-insight/internal/schema"
)

// The view types below are the serialized shape of results.

type CountView struct {
	RunID      string `json:"run_id" yaml:"run_id"`
	Left       string `json:"left_table" yaml:"left_table"`
	Right      string `json:"right_table" yaml:"right_table"`
	LeftCount  *int64 `json:"left_count" yaml:"left_count"`
	RightCount *int64 `json:"right_count" yaml:"right_count"`
	LeftError  string `json:"left_error,omitempty" yaml:"left_error,omitempty"`
	RightError string `json:"right_error,omitempty" yaml:"right_error,omitempty"`
	Status     string `json:"status" yaml:"status"`
}

type ColumnView struct {
	Name             string `json:"name" yaml:"name"`
	LeftType         string `json:"left_type,omitempty" yaml:"left_type,omitempty"`
	RightType        string `json:"right_type,omitempty" yaml:"right_type,omitempty"`
	LeftNullable     *bool  `json:"left_nullable,omitempty" yaml:"left_nullable,omitempty"`
	RightNullable    *bool  `json:"right_nullable,omitempty" yaml:"right_nullable,omitempty"`
	NameMatch        bool   `json:"name_match" yaml:"name_match"`
	TypeMatch        bool   `json:"type_match" yaml:"type_match"`
	NullabilityMatch bool   `json:"nullability_match" yaml:"nullability_match"`
}

type SchemaView struct {
	RunID           string       `json:"run_id" yaml:"run_id"`
	Left            string       `json:"left_table" yaml:"left_table"`
	Right           string       `json:"right_table" yaml:"right_table"`
	LeftError       string       `json:"left_error,omitempty" yaml:"left_error,omitempty"`
	RightError      string       `json:"right_error,omitempty" yaml:"right_error,omitempty"`
	LeftDuplicates  []string     `json:"left_duplicates,omitempty" yaml:"left_duplicates,omitempty"`
	RightDuplicates []string     `json:"right_duplicates,omitempty" yaml:"right_duplicates,omitempty"`
	OverallMatch    bool         `json:"overall_match" yaml:"overall_match"`
	Columns         []ColumnView `json:"columns" yaml:"columns"`
	Status          string       `json:"status" yaml:"status"`
}

type PairView struct {
	Status string      `json:"status" yaml:"status"`
	Count  *CountView  `json:"count,omitempty" yaml:"count,omitempty"`
	Schema *SchemaView `json:"schema,omitempty" yaml:"schema,omitempty"`
}

type BatchView struct {
	Total      int        `json:"total" yaml:"total"`
	Matched    int        `json:"matched" yaml:"matched"`
	Mismatched int        `json:"mismatched" yaml:"mismatched"`
	Incomplete int        `json:"incomplete" yaml:"incomplete"`
	Pairs      []PairView `json:"pairs" yaml:"pairs"`
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func countValue(c fetch.RowCount) *int64 {
	if c.Status == fetch.StatusFailed {
		return nil
	}
	v := c.Value
	return &v
}

func NewCountView(r engine.CountResult) CountView {
	return CountView{
		RunID:      r.RunID,
		Left:       r.Pair.Left,
		Right:      r.Pair.RightTable(),
		LeftCount:  countValue(r.Left),
		RightCount: countValue(r.Right),
		LeftError:  errString(r.Left.Err),
		RightError: errString(r.Right.Err),
		Status:     r.Status,
	}
}

func newColumnView(c schema.ColumnComparison) ColumnView {
	v := ColumnView{
		Name:             c.CanonicalName,
		NameMatch:        c.NameMatch,
		TypeMatch:        c.TypeMatch,
		NullabilityMatch: c.NullabilityMatch,
	}
	if c.Left != nil {
		n := c.Left.Nullable
		v.LeftType, v.LeftNullable = c.Left.DeclaredType, &n
	}
	if c.Right != nil {
		n := c.Right.Nullable
		v.RightType, v.RightNullable = c.Right.DeclaredType, &n
	}
	return v
}

// NewSchemaView lists every column when all is set, otherwise only mismatches.
func NewSchemaView(r engine.SchemaResult, all bool) SchemaView {
	v := SchemaView{
		RunID:           r.RunID,
		Left:            r.Pair.Left,
		Right:           r.Pair.RightTable(),
		LeftError:       errString(r.Left.Err),
		RightError:      errString(r.Right.Err),
		LeftDuplicates:  r.LeftDuplicates,
		RightDuplicates: r.RightDuplicates,
		Columns:         []ColumnView{},
		Status:          r.Status,
	}
	if r.Report == nil {
		return v
	}
	v.OverallMatch = r.Report.OverallMatch
	rows := r.Report.Rows
	if !all {
		rows = r.Report.Mismatches()
	}
	for _, row := range rows {
		v.Columns = append(v.Columns, newColumnView(row))
	}
	return v
}

func NewBatchView(results []engine.PairResult) BatchView {
	sum := engine.Summarize(results)
	v := BatchView{
		Total:      sum.Total,
		Matched:    sum.Matched,
		Mismatched: sum.Mismatched,
		Incomplete: sum.Incomplete,
		Pairs:      make([]PairView, 0, len(results)),
	}
	for _, r := range results {
		pv := PairView{Status: r.Status()}
		if r.Count != nil {
			c := NewCountView(*r.Count)
			pv.Count = &c
		}
		if r.Schema != nil {
			s := NewSchemaView(*r.Schema, false)
			pv.Schema = &s
		}
		v.Pairs = append(v.Pairs, pv)
	}
	return v
}
