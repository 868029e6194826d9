package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"qa-insight/internal/engine"
	"qa-insight/internal/fetch"
	"qa-insight/internal/report"
	"qa-insight/internal/schema"
)

func mismatchResult() engine.SchemaResult {
	left := schema.Normalize([]schema.RawColumn{
		{Name: "Id", DeclaredType: "int", Nullable: "NO"},
		{Name: "Amt", DeclaredType: "decimal", Nullable: "YES"},
	}, schema.YesNoRule())
	right := schema.Normalize([]schema.RawColumn{
		{Name: "id", DeclaredType: "NUMBER", Nullable: "N"},
		{Name: "amt", DeclaredType: "decimal", Nullable: "Y"},
		{Name: "note", DeclaredType: "varchar", Nullable: "Y"},
	}, schema.YNRule())
	rep := schema.Compare(left, right)
	return engine.SchemaResult{
		RunID:  "run-1",
		Pair:   engine.Pair{Left: "orders", Right: "ORDERS"},
		Left:   fetch.ColumnSet{Status: fetch.StatusOK},
		Right:  fetch.ColumnSet{Status: fetch.StatusOK},
		Report: &rep,
		Status: engine.StatusMismatch,
	}
}

func newRenderer(buf *bytes.Buffer, f report.Format) *report.Renderer {
	return &report.Renderer{W: buf, Format: f, LeftName: "SQL Server", RightName: "Snowflake"}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]report.Format{"": report.FormatTable, "JSON": report.FormatJSON, "yaml": report.FormatYAML} {
		got, err := report.ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := report.ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestSchema_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := newRenderer(&buf, report.FormatTable).Schema(mismatchResult(), false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Schemas do not match") {
		t.Errorf("missing verdict in %s", out)
	}
	if !strings.Contains(out, "note") || !strings.Contains(out, "Not Matching") {
		t.Errorf("missing diff rows in %s", out)
	}
	if strings.Contains(out, "amt ") {
		t.Errorf("matching column amt should not be listed:\n%s", out)
	}
}

func TestSchema_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := newRenderer(&buf, report.FormatJSON).Schema(mismatchResult(), true); err != nil {
		t.Fatal(err)
	}

	var got report.SchemaView
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if got.Status != engine.StatusMismatch || got.OverallMatch {
		t.Errorf("unexpected verdict %+v", got)
	}
	if len(got.Columns) != 3 {
		t.Fatalf("expected all 3 columns, got %d", len(got.Columns))
	}
	note := got.Columns[2]
	if note.Name != "note" || note.LeftNullable != nil || note.RightNullable == nil || !*note.RightNullable {
		t.Errorf("unexpected note column %+v", note)
	}
}

func TestCount_YAMLAndTable(t *testing.T) {
	res := engine.CountResult{
		RunID:  "run-2",
		Pair:   engine.Pair{Left: "orders"},
		Left:   fetch.RowCount{Value: 1234567, Status: fetch.StatusOK},
		Right:  fetch.RowCount{Status: fetch.StatusFailed, Err: errors.New("login failed")},
		Status: engine.StatusIncomplete,
	}

	var buf bytes.Buffer
	if err := newRenderer(&buf, report.FormatYAML).Count(res); err != nil {
		t.Fatal(err)
	}
	var got report.CountView
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if got.LeftCount == nil || *got.LeftCount != 1234567 {
		t.Errorf("unexpected left count %v", got.LeftCount)
	}
	if got.RightCount != nil {
		t.Error("failed count must be null, not zero")
	}
	if got.RightError != "login failed" {
		t.Errorf("unexpected right error %q", got.RightError)
	}

	buf.Reset()
	if err := newRenderer(&buf, report.FormatTable).Count(res); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "1,234,567") || !strings.Contains(out, "unavailable") {
		t.Errorf("unexpected table output:\n%s", out)
	}
}

func TestBatch(t *testing.T) {
	s := mismatchResult()
	results := []engine.PairResult{
		{Pair: engine.Pair{Left: "orders", Right: "ORDERS"}, Schema: &s},
		{Pair: engine.Pair{Left: "users"}, Count: &engine.CountResult{
			Pair:   engine.Pair{Left: "users"},
			Left:   fetch.RowCount{Value: 3, Status: fetch.StatusOK},
			Right:  fetch.RowCount{Value: 3, Status: fetch.StatusOK},
			Status: engine.StatusMatch,
		}},
	}

	var buf bytes.Buffer
	if err := newRenderer(&buf, report.FormatJSON).Batch(results); err != nil {
		t.Fatal(err)
	}
	var got report.BatchView
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Total != 2 || got.Matched != 1 || got.Mismatched != 1 {
		t.Errorf("unexpected summary %+v", got)
	}

	buf.Reset()
	if err := newRenderer(&buf, report.FormatTable).Batch(results); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Total: 2  Matched: 1  Mismatched: 1  Incomplete: 0") {
		t.Errorf("unexpected summary line:\n%s", buf.String())
	}
}
