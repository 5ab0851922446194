package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pew/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the data source, web server and PDF converter.

Settings live in ~/.pew/config.toml. PEW_* environment variables and a .env
file override them without being saved, e.g. PEW_DATA_DIR=/srv/pew/data.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSourceCmd = &cobra.Command{
	Use:   "source [csv|sqlite]",
	Short: "Set the data source",
	Long: `Set where the reference tables are loaded from.

Available sources:
  csv     - feasts.csv and neh.csv in the data directory
  sqlite  - a database created with 'pew data import'

Without an argument, the source is chosen interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsSource,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSourceCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Data]")
	cmd.Printf("  Source: %s\n", settings.Data.Source.Description())
	cmd.Printf("  Directory: %s\n", settings.Data.Dir)
	if settings.Data.Source == domain.DataSourceSQLite {
		cmd.Printf("  Database: %s\n", settings.Data.DatabasePath())
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Println()

	cmd.Println("[Converter]")
	cmd.Printf("  Command: %s\n", settings.Converter.Command)
	if settings.Converter.VerifyCommand != "" {
		cmd.Printf("  Verify with: %s\n", settings.Converter.VerifyCommand)
	} else {
		cmd.Printf("  Verify with: (off)\n")
	}
	cmd.Printf("  Timeout: %s\n", settings.Converter.Timeout)
	cmd.Printf("  Throttle: %d per minute, burst %d\n", settings.Converter.PerMinute, settings.Converter.Burst)
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Verbose: %t\n", settings.Log.Verbose)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSource(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	sources := []domain.DataSource{domain.DataSourceCSV, domain.DataSourceSQLite}

	var selected domain.DataSource
	if len(args) == 1 {
		selected = domain.DataSource(strings.ToLower(args[0]))
	} else {
		reader := bufio.NewReader(cmd.InOrStdin())
		cmd.Println("Select Data Source")
		cmd.Println("------------------")
		for i, s := range sources {
			cmd.Printf("  %d. %s\n", i+1, s.Description())
		}
		cmd.Print("\nEnter choice: ")
		idx := parseChoice(readLine(reader), len(sources), 0)
		if idx == 0 {
			return errors.New("invalid selection")
		}
		selected = sources[idx-1]
	}

	if err := settingsService.SetDataSource(selected); err != nil {
		return fmt.Errorf("failed to set data source: %w", err)
	}
	cmd.Printf("Data source set to: %s\n", selected.Description())

	if selected == domain.DataSourceSQLite {
		cmd.Println("Run 'pew data import' if the database has not been created yet.")
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
