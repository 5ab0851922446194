package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/pew/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driven"
)

func testTables() *domain.Tables {
	return &domain.Tables{
		Feasts: []domain.Feast{
			{
				Name:       "Christmas Day",
				Introit:    "Puer natus est nobis",
				Collect:    "Almighty God, who hast given us thy only-begotten Son",
				EpistleRef: "Hebrews 1:1-12",
				GospelRef:  "John 1:1-14",
				Offertory:  "Tui sunt caeli",
				Communion:  "Viderunt omnes",
			},
			{
				Name:    "St Stephen",
				Collect: "Grant, O Lord, that in all our sufferings",
			},
			{Name: "Easter Day", Collect: "Almighty God, who through thine only-begotten Son"},
		},
		Hymns: []domain.HymnRow{
			{Number: 30, FirstLine: "O come, all ye faithful"},
			{Number: 29, FirstLine: "Hark! the herald-angels sing"},
			{Number: 24, FirstLine: "Christians, awake"},
		},
	}
}

func newTestRecords() *RecordService {
	return NewRecordService(memory.NewRecordStore(testTables()))
}

// fakeRenderer writes a small marker file so exports leave something on disk.
type fakeRenderer struct {
	mu       sync.Mutex
	rendered []string
	err      error
}

var _ driven.DocumentRenderer = (*fakeRenderer)(nil)

func (r *fakeRenderer) RenderFeast(_ context.Context, feast *domain.Feast, path string) error {
	return r.render(feast.Name, path)
}

func (r *fakeRenderer) RenderService(_ context.Context, svc *domain.Service, path string) error {
	return r.render(svc.Title, path)
}

func (r *fakeRenderer) Format() domain.Format { return domain.FormatDOCX }

func (r *fakeRenderer) render(heading, path string) error {
	r.mu.Lock()
	r.rendered = append(r.rendered, heading)
	r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	return os.WriteFile(path, []byte(heading), 0o600)
}

// fakeConverter copies the source next to itself with a .pdf extension.
type fakeConverter struct {
	err   error
	block bool
	calls int
}

var _ driven.DocumentConverter = (*fakeConverter)(nil)

func (c *fakeConverter) Convert(ctx context.Context, src string) (string, error) {
	c.calls++
	if c.block {
		<-ctx.Done()
		return "", errors.New("soffice killed")
	}
	if c.err != nil {
		return "", c.err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	out := strings.TrimSuffix(src, filepath.Ext(src)) + ".pdf"
	return out, os.WriteFile(out, data, 0o600)
}

func (c *fakeConverter) Format() domain.Format { return domain.FormatPDF }
