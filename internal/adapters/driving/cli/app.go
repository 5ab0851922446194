package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/pew/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pew/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pew/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pew/internal/adapters/driven/storage/tabular"
	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
	"github.com/custodia-labs/pew/internal/core/services"
	"github.com/custodia-labs/pew/internal/documents/docx"
	"github.com/custodia-labs/pew/internal/documents/pdf"
	"github.com/custodia-labs/pew/internal/logger"
)

// Services injected into the commands. Settings are opened before every
// command; the rest are built on first use because they need the tables.
var (
	settingsService driving.SettingsService
	recordService   driving.RecordService
	serviceBuilder  driving.ServiceBuilder
	exportService   driving.ExportService

	// converterCheck reports whether PDF conversion can work. Optional.
	converterCheck func() error
)

// Services bundles the driving ports used by the commands.
type Services struct {
	Settings       driving.SettingsService
	Records        driving.RecordService
	Builder        driving.ServiceBuilder
	Export         driving.ExportService
	ConverterCheck func() error
}

// SetServices injects services, bypassing configuration and table loading
// for every non-nil field.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	settingsService = s.Settings
	recordService = s.Records
	serviceBuilder = s.Builder
	exportService = s.Export
	converterCheck = s.ConverterCheck
}

// openSettings opens the config file and applies .env and PEW_* overrides.
func openSettings() error {
	if settingsService != nil {
		return nil
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	if err := store.ApplyEnv(envFile); err != nil {
		return fmt.Errorf("reading %s: %w", envFile, err)
	}
	settingsService = services.NewSettingsService(store)

	if settings, err := settingsService.Get(); err == nil && settings.Log.Verbose {
		logger.SetVerbose(true)
	}
	logger.Debug("config: %s", store.Path())
	return nil
}

// ensureServices loads the reference tables and builds the core services.
// A schema mismatch is fatal: nothing is served from malformed tables.
func ensureServices(ctx context.Context) error {
	if recordService != nil && serviceBuilder != nil && exportService != nil {
		return nil
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	tables, err := loadTables(ctx, settings.Data)
	if err != nil {
		return fmt.Errorf("loading reference tables: %w", err)
	}
	logger.Info("loaded %d feasts and %d hymns (%s)", len(tables.Feasts), len(tables.Hymns), settings.Data.Source.Description())

	records := services.NewRecordService(memory.NewRecordStore(tables))
	builder := services.NewServiceBuilder(records)
	converter := pdf.New(pdf.Config{
		Command:       settings.Converter.Command,
		VerifyCommand: settings.Converter.VerifyCommand,
		RateLimit: pdf.RateLimitConfig{
			PerMinute: settings.Converter.PerMinute,
			Burst:     settings.Converter.Burst,
		},
	}, docx.NewReader())

	recordService = records
	serviceBuilder = builder
	exportService = services.NewExportService(records, builder, docx.NewWriter(), converter, settings.Converter.Timeout)
	converterCheck = converter.CheckAvailable
	return nil
}

// loadTables reads the reference tables from the configured source.
func loadTables(ctx context.Context, data domain.DataSettings) (*domain.Tables, error) {
	switch data.Source {
	case domain.DataSourceSQLite:
		path := data.DatabasePath()
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("database %s: %w (run 'pew data import' first)", path, err)
		}
		store, err := sqlite.NewStore(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadTables(ctx)
	default:
		return tabular.NewLoader(data.Dir).LoadTables(ctx)
	}
}
