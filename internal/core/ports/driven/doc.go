// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RecordStore: read-only access to the feasts and hymns tables
//   - TableLoader: loads and validates the tables at startup (CSV or SQLite)
//   - DocumentRenderer: writes editable (DOCX) documents
//   - ConfigStore: Application configuration
//   - TemplateStore: page templates for the web interface
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DocumentConverter: DOCX to PDF conversion. Without it every PDF
//     request takes the conversion-failure path and DOCX remains available.
//   - DocumentReader: reads generated documents back, used for verification.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or document package
package driven
