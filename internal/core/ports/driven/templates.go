package driven

// TemplateStore provides the page templates served by the web interface.
// Implementations may load templates from files, embed them in the binary,
// or combine both so operators can restyle pages without rebuilding.
type TemplateStore interface {
	// Load returns the template text for the given page name.
	// Unknown names return an error.
	Load(name string) (string, error)

	// Reload clears any cached templates, forcing fresh loads on next access.
	Reload()
}
