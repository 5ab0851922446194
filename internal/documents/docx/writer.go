package docx

import (
	"archive/zip"
	"bufio"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/format"
	"github.com/custodia-labs/pew/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.DocumentRenderer = (*Writer)(nil)

// Writer renders feasts and services as .docx packages.
type Writer struct {
	now func() time.Time
}

// NewWriter creates a new DOCX writer.
func NewWriter() *Writer {
	return &Writer{now: time.Now}
}

// Format returns domain.FormatDOCX.
func (w *Writer) Format() domain.Format {
	return domain.FormatDOCX
}

// RenderFeast writes a document headed by the feast's name followed by
// one section per non-empty proper.
func (w *Writer) RenderFeast(ctx context.Context, feast *domain.Feast, path string) error {
	if feast == nil {
		return domain.ErrInvalidInput
	}
	return w.writeFile(ctx, FeastDocument(feast), path)
}

// RenderService writes a document headed by the service title.
func (w *Writer) RenderService(ctx context.Context, svc *domain.Service, path string) error {
	if svc == nil {
		return domain.ErrInvalidInput
	}
	return w.writeFile(ctx, ServiceDocument(svc), path)
}

// FeastDocument lays out a feast: Title heading, then a Heading1 and body
// paragraph for each proper that has text.
func FeastDocument(feast *domain.Feast) *domain.Document {
	doc := &domain.Document{Title: feast.Name}
	doc.Paragraphs = append(doc.Paragraphs, domain.Paragraph{Style: StyleTitle, Text: feast.Name})

	addSection(doc, "Introit", feast.Introit)
	addSection(doc, "Collect", feast.Collect)
	addSection(doc, reading("Epistle", feast.EpistleRef), feast.Epistle)
	addSection(doc, "Gradual, Alleluia or Tract", feast.Gat)
	addSection(doc, "Gradual", feast.Gradual)
	addSection(doc, "Alleluia", feast.Alleluia)
	addSection(doc, "Tract", feast.Tract)
	addSection(doc, reading("Gospel", feast.GospelRef), feast.Gospel)
	addSection(doc, "Offertory", feast.Offertory)
	addSection(doc, "Communion", feast.Communion)
	return doc
}

// ServiceDocument lays out a service: Title heading, the italic date
// paragraph (empty when undated), the subtitle, then the order of service.
func ServiceDocument(svc *domain.Service) *domain.Document {
	doc := &domain.Document{Title: svc.Title}
	doc.Paragraphs = append(doc.Paragraphs,
		domain.Paragraph{Style: StyleTitle, Text: svc.Title},
		domain.Paragraph{Text: format.EnglishDate(svc.Date), Italic: svc.HasDate()},
		domain.Paragraph{Style: StyleSubtitle, Text: format.ServiceSubtitle(svc)},
	)

	addMusic(doc, "Introit Hymn", svc.IntroitHymn)
	addSection(doc, "Introit", svc.IntroitProper())
	if collects := svc.Collects(); len(collects) > 0 {
		doc.Paragraphs = append(doc.Paragraphs, domain.Paragraph{Style: StyleHeading1, Text: "Collects"})
		for _, c := range collects {
			doc.Paragraphs = append(doc.Paragraphs, domain.Paragraph{Text: c})
		}
	}
	addSection(doc, reading("Epistle", svc.EpistleRef()), svc.Epistle())
	addSection(doc, reading("Gospel", svc.GospelRef()), svc.Gospel())
	addMusic(doc, "Offertory Hymn", svc.OffertoryHymn)
	addSection(doc, "Offertory", svc.OffertoryProper())
	if svc.Anthem.Title != "" {
		text := svc.Anthem.Title
		if svc.Anthem.Composer != "" {
			text += " (" + svc.Anthem.Composer + ")"
		}
		addSection(doc, "Anthem", text)
	}
	addSection(doc, "Communion", svc.CommunionProper())
	addMusic(doc, "Recessional Hymn", svc.RecessionalHymn)
	return doc
}

func addSection(doc *domain.Document, heading, text string) {
	if text == "" {
		return
	}
	doc.Paragraphs = append(doc.Paragraphs,
		domain.Paragraph{Style: StyleHeading1, Text: heading},
		domain.Paragraph{Text: text},
	)
}

func addMusic(doc *domain.Document, heading string, m *domain.Music) {
	if m != nil {
		addSection(doc, heading, m.String())
	}
}

// reading builds a heading such as "Epistle: Hebrews 1:1-12".
func reading(label, ref string) string {
	if ref == "" {
		return label
	}
	return label + ": " + ref
}

// writeFile writes doc to path, replacing any existing file.
func (w *Writer) writeFile(ctx context.Context, doc *domain.Document, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	if err := w.Write(bw, doc); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Write encodes doc as a .docx package.
func (w *Writer) Write(out io.Writer, doc *domain.Document) error {
	zw := zip.NewWriter(out)

	parts := []struct {
		name    string
		content string
	}{
		{partContentTypes, contentTypesXML},
		{partRels, relsXML},
		{partDocumentRels, documentRelsXML},
		{partStyles, stylesXML},
		{partCore, fmt.Sprintf(coreXMLFormat, escape(doc.Title), w.now().UTC().Format(time.RFC3339))},
		{partDocument, documentXML(doc)},
	}

	for _, p := range parts {
		pw, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("creating part %s: %w", p.name, err)
		}
		if _, err := io.WriteString(pw, p.content); err != nil {
			return fmt.Errorf("writing part %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing package: %w", err)
	}
	return nil
}

// documentXML renders the body of word/document.xml.
func documentXML(doc *domain.Document) string {
	var b strings.Builder
	b.WriteString(documentOpen)
	for _, p := range doc.Paragraphs {
		writeParagraph(&b, p)
	}
	b.WriteString(documentClose)
	return b.String()
}

func writeParagraph(b *strings.Builder, p domain.Paragraph) {
	b.WriteString("<w:p>")
	if p.Style != "" {
		b.WriteString(`<w:pPr><w:pStyle w:val="`)
		b.WriteString(escape(p.Style))
		b.WriteString(`"/></w:pPr>`)
	}
	if p.Text != "" {
		b.WriteString("<w:r>")
		if p.Italic {
			b.WriteString("<w:rPr><w:i/></w:rPr>")
		}
		for i, line := range strings.Split(p.Text, "\n") {
			if i > 0 {
				b.WriteString("<w:br/>")
			}
			if line == "" {
				continue
			}
			b.WriteString(`<w:t xml:space="preserve">`)
			b.WriteString(escape(line))
			b.WriteString("</w:t>")
		}
		b.WriteString("</w:r>")
	}
	b.WriteString("</w:p>")
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
