package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"qa-insight/internal/engine"
	"qa-insight/internal/fetch"
	"qa-insight/internal/schema"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Renderer writes results in one format. LeftName and RightName label the endpoints.
type Renderer struct {
	W         io.Writer
	Format    Format
	LeftName  string
	RightName string
}

func (r *Renderer) encode(v any) error {
	switch r.Format {
	case FormatJSON:
		enc := json.NewEncoder(r.W)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.W)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %s is not an encoding", r.Format)
	}
}

func icon(status string) string {
	switch status {
	case engine.StatusMatch:
		return "✓"
	case engine.StatusMismatch:
		return "✗"
	default:
		return "!"
	}
}

func formatCount(c fetch.RowCount) string {
	if c.Status == fetch.StatusFailed {
		return "unavailable"
	}
	return humanize.Comma(c.Value)
}

func matchWord(ok bool) string {
	if ok {
		return "Matching"
	}
	return "Not Matching"
}

// Count renders one count validation.
func (r *Renderer) Count(res engine.CountResult) error {
	if r.Format != FormatTable {
		return r.encode(NewCountView(res))
	}

	fmt.Fprintf(r.W, "%s Record Count (%s): %s\n", r.LeftName, res.Pair.Left, formatCount(res.Left))
	if res.Left.Err != nil {
		fmt.Fprintf(r.W, "    └ Error: %v\n", res.Left.Err)
	}
	fmt.Fprintf(r.W, "%s Record Count (%s): %s\n", r.RightName, res.Pair.RightTable(), formatCount(res.Right))
	if res.Right.Err != nil {
		fmt.Fprintf(r.W, "    └ Error: %v\n", res.Right.Err)
	}

	switch res.Status {
	case engine.StatusMatch:
		fmt.Fprintf(r.W, "%s Record counts match between %s and %s!\n", icon(res.Status), r.LeftName, r.RightName)
	case engine.StatusMismatch:
		fmt.Fprintf(r.W, "%s Record counts do not match between %s and %s (difference: %s).\n",
			icon(res.Status), r.LeftName, r.RightName, humanize.Comma(res.Diff.Left-res.Diff.Right))
	default:
		fmt.Fprintf(r.W, "%s Could not fetch record counts. Please check configurations or table selections.\n", icon(res.Status))
	}
	return nil
}

// RawColumns prints a fetched column set as a table.
func (r *Renderer) RawColumns(title string, set fetch.ColumnSet) {
	fmt.Fprintf(r.W, "%s (%s):\n", title, set.Status)
	if set.Err != nil {
		fmt.Fprintf(r.W, "    └ Error: %v\n", set.Err)
		return
	}
	tw := tabwriter.NewWriter(r.W, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN_NAME\tDATA_TYPE\tIS_NULLABLE")
	for _, c := range set.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.DeclaredType, c.Nullable)
	}
	tw.Flush()
	fmt.Fprintln(r.W)
}

// Schema renders one schema validation. With showRaw the fetched schemas of
// both sides are printed before the comparison.
func (r *Renderer) Schema(res engine.SchemaResult, showRaw bool) error {
	if r.Format != FormatTable {
		return r.encode(NewSchemaView(res, showRaw))
	}

	if showRaw {
		r.RawColumns(fmt.Sprintf("%s Schema [%s]", r.LeftName, res.Pair.Left), res.Left)
		r.RawColumns(fmt.Sprintf("%s Schema [%s]", r.RightName, res.Pair.RightTable()), res.Right)
	}

	for _, d := range res.LeftDuplicates {
		fmt.Fprintf(r.W, "! %s has case-colliding columns named %q; the last one was compared\n", r.LeftName, d)
	}
	for _, d := range res.RightDuplicates {
		fmt.Fprintf(r.W, "! %s has case-colliding columns named %q; the last one was compared\n", r.RightName, d)
	}

	switch res.Status {
	case engine.StatusMatch:
		fmt.Fprintf(r.W, "%s Schemas match between %s and %s!\n", icon(res.Status), r.LeftName, r.RightName)
		return nil
	case engine.StatusIncomplete:
		fmt.Fprintf(r.W, "%s Could not fetch schemas. Please check configurations or table selections.\n", icon(res.Status))
		return nil
	}

	fmt.Fprintf(r.W, "%s Schemas do not match.\nDifferences in schema:\n", icon(res.Status))
	r.diffTable(res.Report.Mismatches())
	return nil
}

func (r *Renderer) diffTable(rows []schema.ColumnComparison) {
	tw := tabwriter.NewWriter(r.W, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "COLUMN\t%s TYPE\t%s TYPE\t%s NULLABLE\t%s NULLABLE\tCOLUMN_MATCH\tDATA_TYPE_MATCH\tIS_NULLABLE_MATCH\n",
		r.LeftName, r.RightName, r.LeftName, r.RightName)
	for _, row := range rows {
		lt, ln := describe(row.Left)
		rt, rn := describe(row.Right)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.CanonicalName, lt, rt, ln, rn,
			matchWord(row.NameMatch), matchWord(row.TypeMatch), matchWord(row.NullabilityMatch))
	}
	tw.Flush()
}

func describe(d *schema.Descriptor) (string, string) {
	if d == nil {
		return "-", "-"
	}
	if d.Nullable {
		return d.DeclaredType, "YES"
	}
	return d.DeclaredType, "NO"
}

// Batch renders the summary of a batch run.
func (r *Renderer) Batch(results []engine.PairResult) error {
	if r.Format != FormatTable {
		return r.encode(NewBatchView(results))
	}

	fmt.Fprintln(r.W, "\n📊 Summary Report:")
	for i, res := range results {
		fmt.Fprintf(r.W, "[%s] [%02d/%02d] %-30s : %s\n", icon(res.Status()), i+1, len(results), res.Pair, res.Status())
		if c := res.Count; c != nil {
			fmt.Fprintf(r.W, "    count  : %s=%s %s=%s\n", r.LeftName, formatCount(c.Left), r.RightName, formatCount(c.Right))
		}
		if s := res.Schema; s != nil && s.Report != nil {
			fmt.Fprintf(r.W, "    schema : %d columns, %d mismatched\n", len(s.Report.Rows), len(s.Report.Mismatches()))
		}
		for _, err := range pairErrors(res) {
			fmt.Fprintf(r.W, "    └ Error: %v\n", err)
		}
	}

	sum := engine.Summarize(results)
	fmt.Fprintln(r.W, "--------------------------------------------------")
	fmt.Fprintf(r.W, "Total: %d  Matched: %d  Mismatched: %d  Incomplete: %d\n",
		sum.Total, sum.Matched, sum.Mismatched, sum.Incomplete)
	return nil
}

func pairErrors(res engine.PairResult) []error {
	var errs []error
	if c := res.Count; c != nil {
		errs = appendErr(errs, c.Left.Err, c.Right.Err)
	}
	if s := res.Schema; s != nil {
		errs = appendErr(errs, s.Left.Err, s.Right.Err)
	}
	return errs
}

func appendErr(errs []error, candidates ...error) []error {
	for _, err := range candidates {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// List prints names one per line, or encodes them.
func (r *Renderer) List(names []string) error {
	if r.Format != FormatTable {
		if names == nil {
			names = []string{}
		}
		return r.encode(names)
	}
	for _, n := range names {
		fmt.Fprintln(r.W, n)
	}
	return nil
}
