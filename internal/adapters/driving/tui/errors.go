package tui

import "errors"

// ErrMissingRecordService is returned when the record service is not provided.
var ErrMissingRecordService = errors.New("tui: record service is required")

// ErrMissingPorts is returned when no ports are provided at all.
var ErrMissingPorts = errors.New("tui: ports are required")
