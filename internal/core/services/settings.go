package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driven"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir          = "data.dir"
	keyDataSource       = "data.source"
	keyDataSQLitePath   = "data.sqlite_path"
	keyServerAddr       = "server.addr"
	keyConverterCommand = "converter.command"
	keyConverterVerify  = "converter.verify_command"
	keyConverterTimeout = "converter.timeout"
	keyConverterRate    = "converter.per_minute"
	keyConverterBurst   = "converter.burst"
	keyLogVerbose       = "log.verbose"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Data: domain.DataSettings{
			Dir:        s.getString(keyDataDir, defaults.Data.Dir),
			Source:     s.getDataSource(defaults.Data.Source),
			SQLitePath: s.configStore.GetString(keyDataSQLitePath), // empty means <dir>/pew.db
		},
		Server: domain.ServerSettings{
			Addr: s.getString(keyServerAddr, defaults.Server.Addr),
		},
		Converter: domain.ConverterSettings{
			Command:       s.getString(keyConverterCommand, defaults.Converter.Command),
			VerifyCommand: s.configStore.GetString(keyConverterVerify),
			Timeout: time.Duration(
				s.getInt(keyConverterTimeout, int(defaults.Converter.Timeout/time.Second)),
			) * time.Second,
			PerMinute: s.getInt(keyConverterRate, defaults.Converter.PerMinute),
			Burst:     s.getInt(keyConverterBurst, defaults.Converter.Burst),
		},
		Log: domain.LogSettings{
			Verbose: s.getBool(keyLogVerbose, defaults.Log.Verbose),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyDataDir, settings.Data.Dir},
		{keyDataSource, settings.Data.Source.String()},
		{keyDataSQLitePath, settings.Data.SQLitePath},
		{keyServerAddr, settings.Server.Addr},
		{keyConverterCommand, settings.Converter.Command},
		{keyConverterVerify, settings.Converter.VerifyCommand},
		{keyConverterTimeout, int(settings.Converter.Timeout / time.Second)},
		{keyConverterRate, settings.Converter.PerMinute},
		{keyConverterBurst, settings.Converter.Burst},
		{keyLogVerbose, settings.Log.Verbose},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetDataSource switches the backend the tables are loaded from.
func (s *SettingsService) SetDataSource(source domain.DataSource) error {
	if !source.IsValid() {
		return fmt.Errorf("invalid data source: %s", source)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Data.Source = source
	return s.Save(settings)
}

// Validate checks that the current settings can be used.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if settings.Data.Dir == "" && settings.Data.Source == domain.DataSourceCSV {
		errs = append(errs, errors.New("data.dir must be set for the csv data source"))
	}
	if settings.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must be set"))
	}
	if settings.Converter.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("converter.timeout must be positive, got %s", settings.Converter.Timeout))
	}
	if settings.Converter.PerMinute < 0 || settings.Converter.Burst < 0 {
		errs = append(errs, errors.New("converter throttle values must not be negative"))
	}

	return errors.Join(errs...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDataSource(defaultVal domain.DataSource) domain.DataSource {
	val := s.configStore.GetString(keyDataSource)
	if val == "" {
		return defaultVal
	}
	source := domain.DataSource(val)
	if !source.IsValid() {
		return defaultVal
	}
	return source
}
