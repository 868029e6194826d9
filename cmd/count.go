package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"qa-insight/internal/engine"
	"qa-insight/internal/report"
)

var countFlags tableFlags

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Compare record counts of a table on both endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(viper.GetString("settings.output"))
		if err != nil {
			return err
		}

		v, cleanup, err := openValidator(cmd.Context(), &countFlags)
		if err != nil {
			return err
		}
		defer cleanup()

		res := v.Counts(cmd.Context(), countFlags.pair())

		r := newRenderer(v, format)
		if err := r.Count(res); err != nil {
			return err
		}
		if res.Status != engine.StatusMatch {
			return ErrValidationFailed
		}
		return nil
	},
}

func newRenderer(v *engine.Validator, format report.Format) *report.Renderer {
	return &report.Renderer{
		W:         os.Stdout,
		Format:    format,
		LeftName:  v.Left.Name,
		RightName: v.Right.Name,
	}
}

func init() {
	RootCmd.AddCommand(countCmd)
	countFlags.register(countCmd, true)
}
