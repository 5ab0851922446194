package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pew/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pew/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pew/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pew/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pew/internal/adapters/driving/tui/views/feasts"
	"github.com/custodia-labs/pew/internal/adapters/driving/tui/views/hymns"
	"github.com/custodia-labs/pew/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/pew/internal/adapters/driving/tui/views/propers"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView    *menu.View
	feastsView  *feasts.View
	propersView *propers.View
	hymnsView   *hymns.View
	statusBar   *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		feastsView:  feasts.NewView(s, ports.Records),
		propersView: propers.NewView(s, ports.Records, ports.Export),
		hymnsView:   hymns.NewView(s, ports.Records),
		statusBar:   status.NewBar(s, keymap.DefaultKeyMap()),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithExportDir sets where exported documents are written.
func (a *App) WithExportDir(dir string) *App {
	a.propersView.SetExportDir(dir)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("pew")
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "q" && !a.filtering() && a.currentView != messages.ViewMenu {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.FeastsLoaded:
		a.feastsView, cmd = a.feastsView.Update(msg)
		a.report(msg.Err, fmt.Sprintf("%d feasts", len(msg.Feasts)))
		return a, cmd

	case messages.HymnsLoaded:
		a.hymnsView, cmd = a.hymnsView.Update(msg)
		a.report(msg.Err, fmt.Sprintf("%d hymns", len(msg.Hymns)))
		return a, cmd

	case messages.FeastSelected:
		a.currentView = messages.ViewPropers
		a.statusBar.SetHints(status.HintsPropers)
		a.statusBar.Set(status.StateLoading, "")
		return a, a.propersView.SetFeast(msg.Name)

	case messages.FeastLoaded:
		a.propersView, cmd = a.propersView.Update(msg)
		a.report(msg.Err, "")
		return a, cmd

	case messages.ExportCompleted:
		if msg.Err != nil {
			a.report(msg.Err, "")
		} else {
			a.statusBar.Set(status.StateDone, "Wrote "+msg.Path)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.report(msg.Err, "")
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewFeasts:
		a.feastsView, cmd = a.feastsView.Update(msg)
	case messages.ViewPropers:
		a.propersView, cmd = a.propersView.Update(msg)
	case messages.ViewHymns:
		a.hymnsView, cmd = a.hymnsView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// switchTo activates view, loading its data when needed.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.err = nil
	a.statusBar.Clear()

	switch view {
	case messages.ViewFeasts:
		a.statusBar.SetHints(status.HintsList)
		return a.feastsView.Init()
	case messages.ViewHymns:
		a.statusBar.SetHints(status.HintsList)
		return a.hymnsView.Init()
	case messages.ViewPropers:
		a.statusBar.SetHints(status.HintsPropers)
	case messages.ViewMenu, messages.ViewHelp:
		a.statusBar.SetHints(status.HintsShort)
	}
	return nil
}

// report shows err on the status bar, or message when err is nil.
func (a *App) report(err error, message string) {
	a.err = err
	if err != nil {
		a.statusBar.Set(status.StateError, err.Error())
		return
	}
	a.statusBar.Set(status.StateReady, message)
}

func (a *App) filtering() bool {
	switch a.currentView {
	case messages.ViewFeasts:
		return a.feastsView.Filtering()
	case messages.ViewHymns:
		return a.hymnsView.Filtering()
	}
	return false
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewFeasts:
		body = a.feastsView.View()
	case messages.ViewPropers:
		body = a.propersView.View()
	case messages.ViewHymns:
		body = a.hymnsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		return a.menuView.View()
	}

	gap := max(a.height-lipgloss.Height(body)-1, 0)
	return lipgloss.JoinVertical(lipgloss.Left, body, lipgloss.NewStyle().Height(gap).Render(""), a.statusBar.View())
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  q, ctrl+c   Quit

Feasts and hymns:
  j/k, ↑/↓    Move
  /           Filter by name
  enter       Open the feast

Propers:
  j/k, PgUp/PgDn  Scroll
  e               Export DOCX

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.feastsView.SetDimensions(width, height-1)
	a.propersView.SetDimensions(width, height-1)
	a.hymnsView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
