// Package web provides the HTML interface of pew.
//
// It is a driving adapter: it translates browser requests into calls on the
// record, builder and export services and renders the results with
// html/template. Page templates come from a driven.TemplateStore so they can
// be restyled without rebuilding; the built-in defaults are embedded.
//
// Routes:
//
//	GET /                          index
//	GET /feasts                    all feasts
//	GET /feasts/{name}             one feast's propers
//	GET /feasts/{name}/{format}    feast document (docx or pdf)
//	GET /services                  service sheet form
//	GET /services/{name}           service sheet for a primary feast
//	GET /services/{name}/{format}  service document (docx or pdf)
//	GET /hymns                     hymnal index
//	GET /healthz                   liveness probe
//
// Unknown names re-render the index with status 404. A PDF conversion
// failure redirects to the detail page with two flash notices; the DOCX
// download stays available.
package web
