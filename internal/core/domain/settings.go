package domain

import (
	"path/filepath"
	"time"
)

const unknownDescription = "Unknown"

// DataSource selects where the reference tables are loaded from.
type DataSource string

// Available data sources.
const (
	// DataSourceCSV reads feasts.csv and neh.csv from the data directory.
	DataSourceCSV DataSource = "csv"

	// DataSourceSQLite reads the tables from a database created by `pew data import`.
	DataSourceSQLite DataSource = "sqlite"
)

// IsValid returns true if the data source is recognised.
func (d DataSource) IsValid() bool {
	switch d {
	case DataSourceCSV, DataSourceSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d DataSource) String() string {
	return string(d)
}

// Description returns a human-readable description of the source.
func (d DataSource) Description() string {
	switch d {
	case DataSourceCSV:
		return "CSV files in the data directory"
	case DataSourceSQLite:
		return "SQLite database"
	default:
		return unknownDescription
	}
}

// DataSettings configures the reference tables.
type DataSettings struct {
	// Dir holds feasts.csv and neh.csv.
	Dir string

	// Source selects the backend the tables are loaded from.
	Source DataSource

	// SQLitePath is the database used when Source is DataSourceSQLite.
	// Empty means <Dir>/pew.db.
	SQLitePath string
}

// DatabasePath returns the SQLite path, defaulting to a file in Dir.
func (d DataSettings) DatabasePath() string {
	if d.SQLitePath != "" {
		return d.SQLitePath
	}
	return filepath.Join(d.Dir, "pew.db")
}

// ServerSettings configures the web server.
type ServerSettings struct {
	Addr string
}

// ConverterSettings configures DOCX to PDF conversion.
type ConverterSettings struct {
	// Command is the office suite binary, e.g. "soffice".
	Command string

	// VerifyCommand optionally names a PDF text extractor ("pdftotext")
	// used to detect conversions that silently drop content.
	VerifyCommand string

	// Timeout bounds a single conversion. Exceeding it is a conversion failure.
	Timeout time.Duration

	// PerMinute and Burst throttle how often the office suite is started.
	PerMinute int
	Burst     int
}

// LogSettings configures logging.
type LogSettings struct {
	Verbose bool
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Data      DataSettings
	Server    ServerSettings
	Converter ConverterSettings
	Log       LogSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Data: DataSettings{
			Dir:    "data",
			Source: DataSourceCSV,
		},
		Server: ServerSettings{
			Addr: "127.0.0.1:5000",
		},
		Converter: ConverterSettings{
			Command:   "soffice",
			Timeout:   60 * time.Second,
			PerMinute: 30,
			Burst:     2,
		},
	}
}
