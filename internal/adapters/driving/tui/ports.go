// Package tui provides an interactive terminal browser for feasts and hymns.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/pew/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Records looks up feasts and hymns. Required.
	Records driving.RecordService

	// Export writes feast documents. Optional; without it the export key
	// reports an error.
	Export driving.ExportService
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrMissingPorts
	}
	if p.Records == nil {
		return ErrMissingRecordService
	}
	return nil
}
