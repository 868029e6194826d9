package cmd

import (
	"fmt"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"qa-insight/internal/engine"
	"qa-insight/internal/report"
)

var (
	batchFlags tableFlags
	batchMode  string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Validate every table pair listed under pairs in the config",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(viper.GetString("settings.output"))
		if err != nil {
			return err
		}
		mode, err := engine.ParseMode(batchMode)
		if err != nil {
			return err
		}
		pairs, err := GetPairs()
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			return fmt.Errorf("no pairs configured (add a pairs: list to the config)")
		}

		v, cleanup, err := openValidator(cmd.Context(), &batchFlags)
		if err != nil {
			return err
		}
		defer cleanup()

		workers := viper.GetInt("settings.workers")
		Log.Info("starting batch", zap.Int("pairs", len(pairs)), zap.String("mode", string(mode)), zap.Int("workers", workers))
		start := time.Now()

		// Progress bar only for human output
		var onProgress func()
		if format == report.FormatTable {
			uiprogress.Start()
			bar := uiprogress.AddBar(len(pairs)).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return fmt.Sprintf("Validating %d/%d: ", b.Current(), len(pairs))
			})
			onProgress = func() { bar.Incr() }
		}

		results, err := engine.Run(cmd.Context(), v, pairs, mode, workers, onProgress)

		if format == report.FormatTable {
			uiprogress.Stop()
		}
		if err != nil {
			return err
		}

		r := newRenderer(v, format)
		if err := r.Batch(results); err != nil {
			return err
		}

		sum := engine.Summarize(results)
		Log.Info("batch done", zap.Duration("elapsed", time.Since(start)),
			zap.Int("matched", sum.Matched), zap.Int("mismatched", sum.Mismatched), zap.Int("incomplete", sum.Incomplete))
		if !sum.OK() {
			return ErrValidationFailed
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(batchCmd)
	batchFlags.register(batchCmd, false)
	batchCmd.Flags().StringVar(&batchMode, "mode", string(engine.ModeAll), "Validations to run: count, schema or all")
}
