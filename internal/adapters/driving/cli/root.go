package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pew/internal/logger"
)

var (
	version = "dev"

	verbose   bool
	configDir string
	envFile   string
)

var rootCmd = &cobra.Command{
	Use:   "pew",
	Short: "Propers and service sheets for the Eucharist",
	Long: `pew looks up the propers of the Eucharist (introit, collect, readings,
chants) for each feast and generates DOCX and PDF documents for feasts and
complete service sheets.

Reference tables are read from feasts.csv and neh.csv in the data directory,
or from a SQLite database created with 'pew data import'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if verbose {
			logger.SetVerbose(true)
		}
		return openSettings()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.pew)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with PEW_* overrides")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by 'pew version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}
