// Package pdf converts editable documents to PDF with an office suite.
//
// Conversion shells out to LibreOffice (soffice) in headless mode. It is
// best effort: the office suite can fail outright, or exit cleanly while
// writing nothing or dropping content. Converter treats all three as
// errors. The last is only detectable when a text extractor (pdftotext)
// is configured as the verify command.
//
// Conversions are throttled by a token bucket so a burst of requests
// cannot start an unbounded number of office suite processes.
package pdf
