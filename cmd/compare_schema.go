package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"qa-insight/internal/engine"
	"qa-insight/internal/report"
)

var (
	schemaFlags tableFlags
	quiet       bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Compare column names, types and nullability of a table on both endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(viper.GetString("settings.output"))
		if err != nil {
			return err
		}

		v, cleanup, err := openValidator(cmd.Context(), &schemaFlags)
		if err != nil {
			return err
		}
		defer cleanup()

		res := v.Schemas(cmd.Context(), schemaFlags.pair())

		r := newRenderer(v, format)
		if err := r.Schema(res, !quiet); err != nil {
			return err
		}
		if res.Status != engine.StatusMatch {
			return ErrValidationFailed
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(schemaCmd)
	schemaFlags.register(schemaCmd, true)
	schemaCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the differences, not both fetched schemas")
}
