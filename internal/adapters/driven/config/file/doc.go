// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage with PEW_* environment overrides
//   - TemplateStore: user-editable page templates with built-in defaults
//   - TemplateWatcher: fsnotify watch that reports edits to the templates
package file
