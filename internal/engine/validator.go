package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"qa-insight/internal/fetch"
	"qa-insight/internal/schema"
)

// Side is one endpoint of a comparison.
type Side struct {
	Name     string
	Fetcher  fetch.Fetcher
	Rule     schema.NullabilityRule
	Database string
	Schema   string
}

func (s Side) locator(table string) fetch.Locator {
	return fetch.Locator{Database: s.Database, Schema: s.Schema, Table: table}
}

// Validator runs count and schema validations between two sides.
// It holds no mutable state and may be shared across goroutines.
type Validator struct {
	Left    Side
	Right   Side
	Options schema.Options
	log     *zap.Logger
}

func NewValidator(left, right Side, opts schema.Options, log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{Left: left, Right: right, Options: opts, log: log}
}

// Counts fetches both record counts concurrently and compares them.
func (v *Validator) Counts(ctx context.Context, pair Pair) CountResult {
	res := CountResult{RunID: uuid.NewString(), Pair: pair}
	log := v.log.With(zap.String("run_id", res.RunID), zap.Stringer("pair", pair))
	log.Info("comparing record counts",
		zap.String("left", v.Left.Name), zap.String("right", v.Right.Name))

	var wg conc.WaitGroup
	wg.Go(func() { res.Left = v.Left.Fetcher.RowCount(ctx, v.Left.locator(pair.Left)) })
	wg.Go(func() { res.Right = v.Right.Fetcher.RowCount(ctx, v.Right.locator(pair.RightTable())) })
	wg.Wait()

	if res.Left.Status == fetch.StatusFailed || res.Right.Status == fetch.StatusFailed {
		res.Status = StatusIncomplete
		log.Warn("record count unavailable",
			zap.Stringer("left_status", res.Left.Status), zap.Stringer("right_status", res.Right.Status))
		return res
	}

	match, diff := schema.CompareCounts(res.Left.Value, res.Right.Value)
	res.Diff = diff
	if match {
		res.Status = StatusMatch
		log.Info("record counts match", zap.Int64("count", res.Left.Value))
	} else {
		res.Status = StatusMismatch
		log.Info("record counts do not match",
			zap.Int64("left_count", diff.Left), zap.Int64("right_count", diff.Right))
	}
	return res
}

// Schemas fetches both column sets concurrently, normalizes each with its
// side's rule and compares them.
func (v *Validator) Schemas(ctx context.Context, pair Pair) SchemaResult {
	res := SchemaResult{RunID: uuid.NewString(), Pair: pair}
	log := v.log.With(zap.String("run_id", res.RunID), zap.Stringer("pair", pair))
	log.Info("comparing schemas",
		zap.String("left", v.Left.Name), zap.String("right", v.Right.Name))

	var wg conc.WaitGroup
	wg.Go(func() { res.Left = v.Left.Fetcher.Columns(ctx, v.Left.locator(pair.Left)) })
	wg.Go(func() { res.Right = v.Right.Fetcher.Columns(ctx, v.Right.locator(pair.RightTable())) })
	wg.Wait()

	if res.Left.Status == fetch.StatusFailed || res.Right.Status == fetch.StatusFailed {
		res.Status = StatusIncomplete
		log.Warn("schema unavailable",
			zap.Stringer("left_status", res.Left.Status), zap.Stringer("right_status", res.Right.Status))
		return res
	}

	res.LeftDuplicates = schema.Duplicates(res.Left.Columns)
	res.RightDuplicates = schema.Duplicates(res.Right.Columns)
	if len(res.LeftDuplicates) > 0 || len(res.RightDuplicates) > 0 {
		log.Warn("case-colliding column names, last definition wins",
			zap.Strings("left", res.LeftDuplicates), zap.Strings("right", res.RightDuplicates))
	}

	left := schema.Normalize(res.Left.Columns, v.Left.Rule)
	right := schema.Normalize(res.Right.Columns, v.Right.Rule)
	report := schema.CompareWith(left, right, v.Options)
	res.Report = &report

	if report.OverallMatch {
		res.Status = StatusMatch
		log.Info("schemas match", zap.Int("columns", len(report.Rows)))
	} else {
		res.Status = StatusMismatch
		log.Info("schemas do not match", zap.Int("mismatched_columns", len(report.Mismatches())))
	}
	return res
}
