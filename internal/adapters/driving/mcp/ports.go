package mcp

import (
	"github.com/custodia-labs/pew/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Records looks up feasts and hymns.
	Records driving.RecordService

	// Builder assembles services. Optional; service tools fail without it.
	Builder driving.ServiceBuilder
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Records == nil {
		return ErrMissingRecordService
	}
	return nil
}
