// Package propers provides the view showing the propers of one feast.
package propers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pew/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pew/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
	"github.com/custodia-labs/pew/internal/documents/docx"
)

// line is one rendered row; headings are styled differently from text.
type line struct {
	text    string
	heading bool
}

// View shows a feast's propers laid out as in its document.
type View struct {
	styles  *styles.Styles
	records driving.RecordService
	export  driving.ExportService

	exportDir string

	name         string
	feast        *domain.Feast
	lines        []line
	scrollOffset int
	width        int
	height       int
	err          error
	loading      bool
}

// NewView creates a propers view. export may be nil, which disables exporting.
func NewView(s *styles.Styles, records driving.RecordService, export driving.ExportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		records:   records,
		export:    export,
		exportDir: ".",
		width:     80,
		height:    24,
	}
}

// SetExportDir sets where exported documents are written.
func (v *View) SetExportDir(dir string) {
	if dir != "" {
		v.exportDir = dir
	}
}

// SetFeast switches to the named feast and loads it.
func (v *View) SetFeast(name string) tea.Cmd {
	v.name = name
	v.feast = nil
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.loading = true
	return func() tea.Msg {
		if v.records == nil {
			return messages.FeastLoaded{Err: errors.New("record service not available")}
		}
		feast, err := v.records.Feast(context.Background(), name)
		return messages.FeastLoaded{Feast: feast, Err: err}
	}
}

// Update handles messages for the propers view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.FeastLoaded:
		v.loading = false
		v.err = msg.Err
		v.feast = msg.Feast
		v.layout()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.scrollOffset = max(v.scrollOffset-1, 0)
	case "down", "j":
		v.scrollOffset = min(v.scrollOffset+1, v.maxScrollOffset())
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "e":
		return v, v.exportDocx()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewFeasts}
		}
	}
	return v, nil
}

// exportDocx writes the feast's DOCX document into the export directory.
func (v *View) exportDocx() tea.Cmd {
	if v.feast == nil {
		return nil
	}
	if v.export == nil {
		return func() tea.Msg {
			return messages.ExportCompleted{Err: errors.New("export not available")}
		}
	}

	name, dir := v.feast.Name, v.exportDir
	return func() tea.Msg {
		artifact, err := v.export.ExportFeast(context.Background(), name, domain.FormatDOCX)
		if err != nil {
			return messages.ExportCompleted{Err: err}
		}
		defer artifact.Close()

		path, err := save(artifact, dir)
		return messages.ExportCompleted{Path: path, Err: err}
	}
}

func save(artifact *driving.Artifact, dir string) (string, error) {
	dest := filepath.Join(dir, artifact.Filename)

	src, err := os.Open(artifact.Path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", err
	}
	return dest, dst.Close()
}

// layout wraps the feast document to the view width.
func (v *View) layout() {
	v.lines = nil
	if v.feast == nil {
		return
	}

	wrap := lipgloss.NewStyle().Width(max(v.width-4, 20))
	for _, p := range docx.FeastDocument(v.feast).Paragraphs {
		switch p.Style {
		case docx.StyleTitle:
			continue
		case docx.StyleHeading1:
			if len(v.lines) > 0 {
				v.lines = append(v.lines, line{})
			}
			v.lines = append(v.lines, line{text: p.Text, heading: true})
		default:
			for _, l := range strings.Split(wrap.Render(p.Text), "\n") {
				v.lines = append(v.lines, line{text: strings.TrimRight(l, " ")})
			}
		}
	}
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

func (v *View) visibleLines() int {
	// title, separator, blank, position, blank, help
	return max(v.height-6, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the propers.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.name))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(strings.Repeat("─", min(max(v.width-4, 1), 60))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading propers..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No propers)"))
	default:
		end := min(v.scrollOffset+v.visibleLines(), len(v.lines))
		for _, l := range v.lines[v.scrollOffset:end] {
			if l.heading {
				b.WriteString(v.styles.Heading.Render(l.text))
			} else {
				b.WriteString(v.styles.Normal.Render(l.text))
			}
			b.WriteString("\n")
		}
		if len(v.lines) > v.visibleLines() {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Line %d-%d of %d", v.scrollOffset+1, end, len(v.lines))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [e] export docx  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions and rewraps the text.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.layout()
}

// Feast returns the loaded feast, or nil.
func (v *View) Feast() *domain.Feast {
	return v.feast
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
