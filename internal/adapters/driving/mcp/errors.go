// Package mcp provides an MCP (Model Context Protocol) server adapter for pew.
// It lets AI assistants look up feasts and their propers and compose
// service subtitles with the same formatting as the web pages.
package mcp

import "errors"

var (
	// ErrMissingRecordService is returned when the record service is not provided.
	ErrMissingRecordService = errors.New("mcp: record service is required")

	// ErrBuilderUnavailable is returned by service tools when no builder is configured.
	ErrBuilderUnavailable = errors.New("mcp: service builder is not configured")
)
