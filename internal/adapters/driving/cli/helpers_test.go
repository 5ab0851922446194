package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pew/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/services"
	"github.com/custodia-labs/pew/internal/documents/docx"
)

func testTables() *domain.Tables {
	return &domain.Tables{
		Feasts: []domain.Feast{
			{
				Name:       "Christmas Day",
				Introit:    "Puer natus est nobis",
				Collect:    "Almighty God, who hast given us thy only-begotten Son",
				EpistleRef: "Hebrews 1.1",
				Epistle:    "God, who at sundry times",
				GospelRef:  "John 1.1",
				Gospel:     "In the beginning was the Word",
				Offertory:  "Tui sunt caeli",
			},
			{Name: "St Stephen", Collect: "Grant, O Lord, that in all our sufferings"},
		},
		Hymns: []domain.HymnRow{
			{Number: 30, FirstLine: "Hark! the herald-angels sing"},
			{Number: 24, FirstLine: "A great and mighty wonder"},
		},
	}
}

// stubConverter writes a fake PDF next to the source, or fails with err.
type stubConverter struct {
	err error
}

func (c *stubConverter) Convert(_ context.Context, src string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	out := strings.TrimSuffix(src, filepath.Ext(src)) + ".pdf"
	return out, os.WriteFile(out, []byte("%PDF-1.4 stub"), 0o600)
}

func (c *stubConverter) Format() domain.Format { return domain.FormatPDF }

// setupTestServices injects in-memory services and restores the globals
// when the test ends.
func setupTestServices(t *testing.T, converter *stubConverter, seed map[string]any) *services.SettingsService {
	t.Helper()

	settings := services.NewSettingsService(memory.NewConfigStore(seed))
	records := services.NewRecordService(memory.NewRecordStore(testTables()))
	builder := services.NewServiceBuilder(records)
	export := services.NewExportService(records, builder, docx.NewWriter(), converter, time.Second)
	export.SetScratchRoot(t.TempDir())

	SetServices(&Services{
		Settings: settings,
		Records:  records,
		Builder:  builder,
		Export:   export,
	})
	t.Cleanup(func() { SetServices(nil) })
	return settings
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags clears flag variables left over from earlier executions.
func resetFlags() {
	verbose = false
	feastJSON = false
	hymnJSON = false
	exportFormat = "docx"
	exportOutput = ""
	dataImportFrom = ""
	dataImportTo = ""
	serviceFlags.title = ""
	serviceFlags.date = ""
	serviceFlags.celebrant = ""
	serviceFlags.preacher = ""
	serviceFlags.secondary = ""
	serviceFlags.introit = ""
	serviceFlags.offertory = ""
	serviceFlags.recessional = ""
	serviceFlags.anthem = ""
	serviceFlags.composer = ""
	browseExportDir = ""
}

// readDocx parses a DOCX file written by an export command.
func readDocx(t *testing.T, content []byte) *domain.Document {
	t.Helper()
	doc, err := docx.NewReader().Read(content)
	require.NoError(t, err)
	return doc
}
