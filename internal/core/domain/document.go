package domain

import "strings"

// Format identifies an output document format.
type Format string

const (
	// FormatDOCX is the editable word-processing format. It is always generated first.
	FormatDOCX Format = "docx"

	// FormatPDF is the fixed-layout format, converted from the DOCX file.
	FormatPDF Format = "pdf"
)

// ParseFormat maps a case-insensitive extension ("docx", ".pdf") to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case FormatDOCX:
		return FormatDOCX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Extension returns the file extension without the leading dot.
func (f Format) Extension() string {
	return string(f)
}

// MIMEType returns the media type sent with files of this format.
func (f Format) MIMEType() string {
	switch f {
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Document is the text structure of a rendered document, as read back from disk.
type Document struct {
	// Title is the document's core title property.
	Title string

	// Paragraphs are the body paragraphs in order.
	Paragraphs []Paragraph
}

// Paragraph is one body paragraph.
type Paragraph struct {
	// Style is the paragraph style id, e.g. "Title" or "Heading1". Empty for body text.
	Style string

	// Text is the concatenated text of all runs.
	Text string

	// Italic is true when every non-empty run is italic.
	Italic bool
}

// Heading returns the text of the first paragraph styled "Title".
func (d *Document) Heading() string {
	for _, p := range d.Paragraphs {
		if p.Style == "Title" {
			return p.Text
		}
	}
	return ""
}

// Text joins all paragraph texts with newlines.
func (d *Document) Text() string {
	parts := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		parts[i] = p.Text
	}
	return strings.Join(parts, "\n")
}
