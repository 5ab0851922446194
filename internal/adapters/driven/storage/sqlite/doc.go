// Package sqlite provides a SQLite-backed copy of the reference tables.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It serves two roles:
//
//   - ImportTables: replace the stored tables with freshly loaded ones (pew data import)
//   - LoadTables: implement driven.TableLoader for data.source = "sqlite"
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// LoadTables checks the live column list of every table against the domain's
// column list, so a hand-edited database fails the same way a bad CSV header does.
//
// # Data Location
//
// By default, the database is stored at ~/.pew/pew.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
