package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pew/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pew/internal/adapters/driven/storage/tabular"
	"github.com/custodia-labs/pew/internal/core/domain"
)

var (
	dataImportFrom string
	dataImportTo   string
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Manage the reference tables",
}

var dataImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the CSV tables into a SQLite database",
	Long: `Read feasts.csv and neh.csv, validate their columns, and replace the
contents of the SQLite database with them. Use 'pew settings source sqlite'
afterwards to load the tables from the database.`,
	Args: cobra.NoArgs,
	RunE: runDataImport,
}

var dataCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configured reference tables",
	Args:  cobra.NoArgs,
	RunE:  runDataCheck,
}

func init() {
	dataImportCmd.Flags().StringVar(&dataImportFrom, "from", "", "directory holding the CSV files (default data.dir)")
	dataImportCmd.Flags().StringVar(&dataImportTo, "to", "", "SQLite database path (default data.sqlite_path)")
	dataCmd.AddCommand(dataImportCmd)
	dataCmd.AddCommand(dataCheckCmd)
	rootCmd.AddCommand(dataCmd)
}

func runDataImport(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	from := dataImportFrom
	if from == "" {
		from = settings.Data.Dir
	}
	to := dataImportTo
	if to == "" {
		to = settings.Data.DatabasePath()
	}

	tables, err := tabular.NewLoader(from).LoadTables(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading %s: %w", from, err)
	}

	store, err := sqlite.NewStore(to)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ImportTables(cmd.Context(), tables); err != nil {
		return fmt.Errorf("importing into %s: %w", to, err)
	}

	cmd.Printf("Imported %d feasts and %d hymns into %s\n", len(tables.Feasts), len(tables.Hymns), store.Path())
	if settings.Data.Source != domain.DataSourceSQLite {
		cmd.Println("Run 'pew settings source sqlite' to load the tables from the database.")
	}
	return nil
}

func runDataCheck(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	tables, err := loadTables(cmd.Context(), settings.Data)
	if err != nil {
		return err
	}

	cmd.Printf("Source: %s\n", settings.Data.Source.Description())
	cmd.Printf("Feasts: %d\n", len(tables.Feasts))
	cmd.Printf("Hymns: %d\n", len(tables.Hymns))

	seen := make(map[string]int, len(tables.Feasts))
	for i := range tables.Feasts {
		seen[tables.Feasts[i].Name]++
	}
	var dups int
	for name, n := range seen {
		if n > 1 {
			cmd.Printf("Warning: feast %q appears %d times; lookups by name will fail\n", name, n)
			dups++
		}
	}
	if dups > 0 {
		return fmt.Errorf("%d duplicate feast names: %w", dups, domain.ErrMultipleMatches)
	}
	cmd.Println("Tables are valid.")
	return nil
}
