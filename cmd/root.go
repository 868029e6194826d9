package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"qa-insight/internal/logging"
)

// ErrValidationFailed is returned when a comparison ran but did not match
// or could not be completed.
var ErrValidationFailed = errors.New("validation failed")

var (
	cfgFile    string
	Log        = zap.NewNop()
	logCleanup = func() {}
)

var RootCmd = &cobra.Command{
	Use:   "qa-insight",
	Short: "Reconcile a table between a transactional database and a warehouse",
	Long: `
  ___    _      ___           _       _     _
 / _ \  / \    |_ _|_ __  ___(_) __ _| |__ | |_
| | | |/ _ \    | || '_ \/ __| |/ _' | '_ \| __|
| |_| / ___ \   | || | | \__ \ | (_| | | | | |_
 \__\_\_/  \_\ |___|_| |_|___/_|\__, |_| |_|\__|
                                |___/
QA INSIGHT - record count and schema parity between two data stores
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, cleanup, err := logging.Setup(LoggingConfig())
		if err != nil {
			return err
		}
		Log, logCleanup = logger, cleanup
		if used := viper.ConfigFileUsed(); used != "" {
			Log.Info("using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logCleanup()
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logCleanup()
		if !errors.Is(err, ErrValidationFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./qa-insight.yaml)")
	RootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table, json or yaml")
	RootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Timeout for each metadata query")
	RootCmd.PersistentFlags().String("log-level", "info", "Log level for the log file")

	bindFlags()
}

// bindFlags binds the persistent flags to viper keys and sets the defaults.
func bindFlags() {
	viper.BindPFlag("settings.output", RootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("settings.timeout", RootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("logging.level", RootCmd.PersistentFlags().Lookup("log-level"))

	// Set defaults for Viper (fallback if no config/flag)
	viper.SetDefault("settings.workers", 4)
	viper.SetDefault("settings.cache_ttl", 5*time.Minute)
	viper.SetDefault("logging.file", "qa-insight.log")
	viper.SetDefault("logging.format", "console")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("qa-insight")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("QAINSIGHT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Warning: failed to read config:", err)
		}
	}
}
