// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The export pipeline lives here: resolve the entity, render the editable
// document, then convert it when a fixed-layout format is requested.
// A conversion failure never hides a successful render; it is reported as
// a domain.ConversionError, distinct from domain.ErrNotFound.
package services
