package web

import "errors"

// Port validation errors.
var (
	ErrMissingPorts          = errors.New("web: ports are required")
	ErrMissingRecordService  = errors.New("web: record service is required")
	ErrMissingServiceBuilder = errors.New("web: service builder is required")
	ErrMissingExportService  = errors.New("web: export service is required")
	ErrServerRunning         = errors.New("web: server already started")
)
