package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.DocumentReader = (*Reader)(nil)

// Reader parses .docx packages into their text structure.
type Reader struct{}

// NewReader creates a new DOCX reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadFile parses the package at path.
func (r *Reader) ReadFile(path string) (*domain.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return r.Read(content)
}

// Read parses a package held in memory.
func (r *Reader) Read(content []byte) (*domain.Document, error) {
	// Open as ZIP archive
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a zip package: %v", domain.ErrInvalidInput, err)
	}

	body, err := readPart(zr, partDocument)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, partDocument)
	}

	paragraphs, err := parseDocumentXML(body)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{Paragraphs: paragraphs}

	// Core properties are optional
	if core, err := readPart(zr, partCore); err == nil && core != nil {
		doc.Title = parseTitle(core)
	}
	return doc, nil
}

// readPart returns the content of the named part, or nil when absent.
func readPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, file := range zr.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrInvalidInput, name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrInvalidInput, name, err)
		}
		return content, nil
	}
	return nil, nil
}

// documentXMLBody represents the structure of word/document.xml.
type documentXMLBody struct {
	Body struct {
		Paragraphs []paragraphXML `xml:"p"`
	} `xml:"body"`
}

type paragraphXML struct {
	Style struct {
		Val string `xml:"val,attr"`
	} `xml:"pPr>pStyle"`
	Runs []runXML `xml:"r"`
}

// runXML collects the text of a run in document order. Breaks become
// newlines and tabs become tab characters.
type runXML struct {
	Italic bool
	Text   string
}

type onOff struct {
	Val string `xml:"val,attr"`
}

func (o onOff) on() bool {
	switch strings.ToLower(o.Val) {
	case "0", "false", "off":
		return false
	}
	return true
}

func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				text.WriteString(s)
			case "br", "cr":
				text.WriteString("\n")
				if err := d.Skip(); err != nil {
					return err
				}
			case "tab":
				text.WriteString("\t")
				if err := d.Skip(); err != nil {
					return err
				}
			case "rPr":
				var props struct {
					Italic *onOff `xml:"i"`
				}
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				r.Italic = props.Italic != nil && props.Italic.on()
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				r.Text = text.String()
				return nil
			}
		}
	}
}

// parseDocumentXML extracts paragraphs from the document XML.
func parseDocumentXML(content []byte) ([]domain.Paragraph, error) {
	var doc documentXMLBody
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, partDocument, err)
	}

	paragraphs := make([]domain.Paragraph, 0, len(doc.Body.Paragraphs))
	for _, p := range doc.Body.Paragraphs {
		var text strings.Builder
		italic, hasText := true, false
		for _, run := range p.Runs {
			if run.Text == "" {
				continue
			}
			hasText = true
			italic = italic && run.Italic
			text.WriteString(run.Text)
		}
		paragraphs = append(paragraphs, domain.Paragraph{
			Style:  p.Style.Val,
			Text:   text.String(),
			Italic: hasText && italic,
		})
	}
	return paragraphs, nil
}

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title string `xml:"title"`
}

// parseTitle extracts the title from docProps/core.xml.
func parseTitle(content []byte) string {
	var core coreXML
	if err := xml.Unmarshal(content, &core); err != nil {
		return ""
	}
	return strings.TrimSpace(core.Title)
}
