package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pew/internal/adapters/driving/tui"
)

var browseExportDir string

// ErrNotInteractive is returned when the terminal UI is started without a terminal.
var ErrNotInteractive = errors.New("browse needs an interactive terminal")

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse feasts and hymns in the terminal",
	Long: `Open a full-screen browser for the feasts and hymns tables.

Pick a feast to read its propers; press 'e' to export them as DOCX into
--export-dir (default the current directory).

Examples:
  pew browse
  pew browse --export-dir ~/Documents/services`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseExportDir, "export-dir", "", "directory for exported documents (default current directory)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	if !isTerminal(cmd.OutOrStdout()) {
		return ErrNotInteractive
	}

	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	dir := browseExportDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = wd
	}

	app, err := tui.NewApp(&tui.Ports{
		Records: recordService,
		Export:  exportService,
	})
	if err != nil {
		return err
	}
	return app.WithContext(cmd.Context()).WithExportDir(dir).Run()
}
