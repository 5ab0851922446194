package web

import "github.com/custodia-labs/pew/internal/core/ports/driving"

// Ports holds the driving ports the web server needs.
type Ports struct {
	Records driving.RecordService
	Builder driving.ServiceBuilder
	Export  driving.ExportService
}

// Validate checks that all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrMissingPorts
	}
	if p.Records == nil {
		return ErrMissingRecordService
	}
	if p.Builder == nil {
		return ErrMissingServiceBuilder
	}
	if p.Export == nil {
		return ErrMissingExportService
	}
	return nil
}
