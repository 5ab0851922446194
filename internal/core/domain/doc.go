// Package domain defines the core business entities for pew.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Feast: a named liturgical occasion with its proper texts
//   - Music: a hymn, anthem or piece of plainsong
//   - Service: a request-scoped composition of feasts, ministers and music
//   - Tables: the read-only reference data loaded at startup
//
// It also provides the generic single-record lookup (Get, GetFunc) used
// for every record kind.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
