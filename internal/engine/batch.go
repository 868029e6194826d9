package engine

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
)

// Mode selects which validations a batch runs.
type Mode string

const (
	ModeCount  Mode = "count"
	ModeSchema Mode = "schema"
	ModeAll    Mode = "all"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeCount, ModeSchema, ModeAll:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want count, schema or all)", s)
	}
}

// Run validates every pair on at most workers goroutines. Results keep the
// order of pairs. onProgress, if set, is called once per finished pair and
// may be called concurrently.
func Run(ctx context.Context, v *Validator, pairs []Pair, mode Mode, workers int, onProgress func()) ([]PairResult, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]PairResult, len(pairs))
	p := pool.New().WithMaxGoroutines(workers)

	for i, pair := range pairs {
		p.Go(func() {
			r := PairResult{Pair: pair}
			if mode == ModeCount || mode == ModeAll {
				c := v.Counts(ctx, pair)
				r.Count = &c
			}
			if mode == ModeSchema || mode == ModeAll {
				s := v.Schemas(ctx, pair)
				r.Schema = &s
			}
			results[i] = r
			if onProgress != nil {
				onProgress()
			}
		})
	}
	p.Wait()

	return results, nil
}

// Summary tallies batch results by status.
type Summary struct {
	Total      int
	Matched    int
	Mismatched int
	Incomplete int
}

// OK reports whether every pair matched.
func (s Summary) OK() bool {
	return s.Matched == s.Total
}

func Summarize(results []PairResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status() {
		case StatusMatch:
			s.Matched++
		case StatusMismatch:
			s.Mismatched++
		default:
			s.Incomplete++
		}
	}
	return s
}
