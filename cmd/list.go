package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"qa-insight/internal/report"
)

var (
	listSide     string
	listDatabase string
	listSchema   string
)

var listCmd = &cobra.Command{
	Use:       "list {databases|schemas|tables}",
	Short:     "List databases, schemas or tables on one endpoint",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"databases", "schemas", "tables"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(viper.GetString("settings.output"))
		if err != nil {
			return err
		}
		if listSide != SideLeft && listSide != SideRight {
			return fmt.Errorf("--side must be %s or %s", SideLeft, SideRight)
		}

		e, err := OpenEndpoint(cmd.Context(), listSide)
		if err != nil {
			return err
		}
		defer e.Close()

		database := e.Config.Database
		if listDatabase != "" {
			database = listDatabase
		}
		schemaName := e.Config.Schema
		if listSchema != "" {
			schemaName = listSchema
		}

		var names []string
		switch args[0] {
		case "databases":
			names, err = e.Fetcher.Databases(cmd.Context())
		case "schemas":
			names, err = e.Fetcher.Schemas(cmd.Context(), database)
		case "tables":
			names, err = e.Fetcher.Tables(cmd.Context(), database, schemaName)
		}
		if err != nil {
			return err
		}

		r := &report.Renderer{W: cmd.OutOrStdout(), Format: format}
		return r.List(names)
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listSide, "side", SideLeft, "Endpoint to list: left or right")
	listCmd.Flags().StringVar(&listDatabase, "database", "", "Database (defaults to the endpoint's configured database)")
	listCmd.Flags().StringVar(&listSchema, "schema", "", "Schema (defaults to the endpoint's configured schema)")
}
