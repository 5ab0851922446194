// Package tabular loads the reference tables from CSV files.
//
// A data directory holds two files:
//
//   - feasts.csv: one row per feast, columns domain.FeastColumns
//   - neh.csv: the New English Hymnal index, columns domain.HymnColumns
//
// The header row of each file must match the expected column list exactly,
// order included. A mismatch is reported as a *domain.SchemaError and the
// process must refuse to start.
package tabular
