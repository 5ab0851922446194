package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pew/internal/core/domain"
)

func christmas() *domain.Feast {
	return &domain.Feast{
		Name:       "Christmas Day",
		Introit:    "Puer natus est nobis",
		Collect:    "Almighty God, who hast given us thy only-begotten Son",
		EpistleRef: "Hebrews 1:1-12",
		Epistle:    "God, who at sundry times\nand in divers manners",
		GospelRef:  "John 1:1-14",
		Gospel:     "In the beginning was the Word",
		Communion:  "Viderunt omnes",
	}
}

func fixedWriter() *Writer {
	w := NewWriter()
	w.now = func() time.Time { return time.Date(2021, 12, 1, 9, 0, 0, 0, time.UTC) }
	return w
}

func TestWriter_Format(t *testing.T) {
	assert.Equal(t, domain.FormatDOCX, NewWriter().Format())
}

func TestWriter_RenderFeast_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feast.docx")

	err := fixedWriter().RenderFeast(context.Background(), christmas(), path)
	require.NoError(t, err)

	doc, err := NewReader().ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Christmas Day", doc.Title)
	assert.Equal(t, "Christmas Day", doc.Heading())
	assert.Equal(t, FeastDocument(christmas()).Paragraphs, doc.Paragraphs)
}

func TestWriter_RenderFeast_Sections(t *testing.T) {
	doc := FeastDocument(christmas())

	var headings []string
	for _, p := range doc.Paragraphs {
		if p.Style == StyleHeading1 {
			headings = append(headings, p.Text)
		}
	}

	assert.Equal(t, []string{
		"Introit",
		"Collect",
		"Epistle: Hebrews 1:1-12",
		"Gospel: John 1:1-14",
		"Communion",
	}, headings)
}

func TestWriter_RenderFeast_NameOnly(t *testing.T) {
	doc := FeastDocument(&domain.Feast{Name: "St Stephen"})

	require.Len(t, doc.Paragraphs, 1)
	assert.Equal(t, domain.Paragraph{Style: StyleTitle, Text: "St Stephen"}, doc.Paragraphs[0])
}

func TestWriter_RenderService_DatedRoundTrip(t *testing.T) {
	svc := &domain.Service{
		Title:        "Midnight Mass",
		Date:         time.Date(2021, time.December, 25, 0, 0, 0, 0, time.UTC),
		Celebrant:    "Fr Smith",
		Preacher:     "Fr Jones",
		PrimaryFeast: *christmas(),
		IntroitHymn:  &domain.Music{Title: "O come, all ye faithful", Category: domain.CategoryHymn, Ref: "NEH: 30"},
		Anthem:       domain.Music{Title: "A Spotless Rose", Category: domain.CategoryAnthem, Composer: "Howells"},
	}
	path := filepath.Join(t.TempDir(), "service.docx")

	require.NoError(t, fixedWriter().RenderService(context.Background(), svc, path))

	doc, err := NewReader().ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Midnight Mass", doc.Heading())
	require.GreaterOrEqual(t, len(doc.Paragraphs), 3)
	assert.Equal(t, domain.Paragraph{Text: "Saturday 25th December 2021", Italic: true}, doc.Paragraphs[1])
	assert.Equal(t, "Christmas Day, Fr Smith (Preacher: Fr Jones)", doc.Paragraphs[2].Text)
	assert.Contains(t, doc.Text(), "NEH: 30, O come, all ye faithful")
	assert.Contains(t, doc.Text(), "A Spotless Rose (Howells)")
	assert.Equal(t, ServiceDocument(svc).Paragraphs, doc.Paragraphs)
}

func TestWriter_RenderService_Undated(t *testing.T) {
	svc := &domain.Service{Title: "Christmas Day", PrimaryFeast: *christmas()}
	path := filepath.Join(t.TempDir(), "service.docx")

	require.NoError(t, fixedWriter().RenderService(context.Background(), svc, path))

	doc, err := NewReader().ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Christmas Day", doc.Heading())
	assert.Equal(t, domain.Paragraph{}, doc.Paragraphs[1])
}

func TestWriter_RenderService_TwoCollects(t *testing.T) {
	svc := &domain.Service{
		Title:          "Christmas Day",
		PrimaryFeast:   *christmas(),
		SecondaryFeast: &domain.Feast{Name: "St Stephen", Collect: "Grant, O Lord"},
	}

	doc := ServiceDocument(svc)

	text := doc.Text()
	first := strings.Index(text, "Almighty God")
	second := strings.Index(text, "Grant, O Lord")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestWriter_EscapesMarkup(t *testing.T) {
	feast := &domain.Feast{Name: `Saints & Martyrs <"Holy Innocents">`}
	path := filepath.Join(t.TempDir(), "feast.docx")

	require.NoError(t, NewWriter().RenderFeast(context.Background(), feast, path))

	doc, err := NewReader().ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, feast.Name, doc.Title)
	assert.Equal(t, feast.Name, doc.Heading())
}

func TestWriter_PackageParts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(&buf, FeastDocument(christmas())))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"docProps/core.xml",
		"word/document.xml",
	}, names)
}

func TestWriter_NilInput(t *testing.T) {
	w := NewWriter()
	path := filepath.Join(t.TempDir(), "x.docx")

	assert.ErrorIs(t, w.RenderFeast(context.Background(), nil, path), domain.ErrInvalidInput)
	assert.ErrorIs(t, w.RenderService(context.Background(), nil, path), domain.ErrInvalidInput)
}

func TestWriter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewWriter().RenderFeast(ctx, christmas(), filepath.Join(t.TempDir(), "x.docx"))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriter_BadPath(t *testing.T) {
	err := NewWriter().RenderFeast(context.Background(), christmas(),
		filepath.Join(t.TempDir(), "missing", "x.docx"))

	assert.Error(t, err)
}
