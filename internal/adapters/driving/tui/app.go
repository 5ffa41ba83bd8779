package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/views/extractions"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/views/providers"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/views/request"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/views/requests"
)

// App is the root Bubbletea model. It routes messages to the active view
// and renders the status bar beneath it.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView        *menu.View
	requestsView    *requests.View
	requestView     *request.View
	providersView   *providers.View
	extractionsView *extractions.View
	statusBar       *status.Bar

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		menuView:        menu.NewView(s),
		requestsView:    requests.NewView(s, ports.Documents),
		requestView:     request.NewView(s, ports.Documents),
		providersView:   providers.NewView(s, ports.Documents),
		extractionsView: extractions.NewView(s, ports.Documents),
		statusBar:       status.NewBar(s),
		currentView:     messages.ViewMenu,
	}, nil
}

// WithContext sets the context backend calls run under. Cancelling it
// aborts any outstanding wait.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.requestsView.SetContext(ctx)
	a.requestView.SetContext(ctx)
	a.providersView.SetContext(ctx)
	a.extractionsView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("docpay")
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.syncStatus()
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if keymap.Matches(msg.String(), a.keymap.Back) {
				a.currentView = messages.ViewMenu
			}
			return nil
		}
		return a.updateCurrent(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		a.err = nil
		switch msg.View {
		case messages.ViewRequests:
			return a.requestsView.Init()
		case messages.ViewRequest:
			a.requestView.Reset()
			return a.requestView.Init()
		case messages.ViewProviders:
			return a.providersView.Init()
		case messages.ViewExtractions:
			a.extractionsView.Reset()
			return a.extractionsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return nil

	case messages.RequestsLoaded:
		a.requestsView, cmd = a.requestsView.Update(msg)
		return cmd

	case messages.RequestLoaded, messages.RequestResolved:
		a.requestView, cmd = a.requestView.Update(msg)
		return cmd

	case messages.ProvidersLoaded:
		a.providersView, cmd = a.providersView.Update(msg)
		return cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return nil

	case messages.Quit:
		return tea.Quit
	}

	return a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewRequests:
		a.requestsView, cmd = a.requestsView.Update(msg)
	case messages.ViewRequest:
		a.requestView, cmd = a.requestView.Update(msg)
	case messages.ViewProviders:
		a.providersView, cmd = a.providersView.Update(msg)
	case messages.ViewExtractions:
		a.extractionsView, cmd = a.extractionsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// syncStatus derives the status bar from the active view.
func (a *App) syncStatus() {
	var (
		loading bool
		err     error
		hints   []key.Binding
		info    string
	)

	switch a.currentView {
	case messages.ViewMenu:
		hints = a.keymap.ShortHelp()
	case messages.ViewRequests:
		loading, err, hints = a.requestsView.Loading(), a.requestsView.Err(), a.keymap.ListHelp()
		if n := len(a.requestsView.Requests()); n > 0 {
			info = fmt.Sprintf("%d requests", n)
		}
	case messages.ViewRequest:
		loading, hints = a.requestView.Loading(), a.keymap.DetailHelp()
		if a.requestView.Editing() {
			hints = a.keymap.LookupHelp()
		}
	case messages.ViewProviders:
		loading, err, hints = a.providersView.Loading(), a.providersView.Err(), a.keymap.ListHelp()
	case messages.ViewExtractions:
		loading, hints = a.extractionsView.Loading(), a.keymap.ListHelp()
		if a.extractionsView.Editing() {
			hints = a.keymap.LookupHelp()
		}
	case messages.ViewHelp:
		hints = []key.Binding{a.keymap.Back}
	}

	if a.err != nil {
		err = a.err
	}

	a.statusBar.SetHints(hints)
	switch {
	case err != nil:
		a.statusBar.SetState(status.StateError, err.Error())
	case loading:
		a.statusBar.SetState(status.StateLoading, "")
	default:
		a.statusBar.SetState(status.StateReady, info)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewRequests:
		body = a.requestsView.View()
	case messages.ViewRequest:
		body = a.requestView.View()
	case messages.ViewProviders:
		body = a.providersView.View()
	case messages.ViewExtractions:
		body = a.extractionsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}
	return body + "\n\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Muted.Render("Payment requests are resolved with the values they were created with."))
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("Extractions wait until the backend has processed the document."))
	return b.String()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error reported to the app.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// Leave two lines for the status bar.
	bodyHeight := max(height-2, 1)
	a.menuView.SetDimensions(width, bodyHeight)
	a.requestsView.SetDimensions(width, bodyHeight)
	a.requestView.SetDimensions(width, bodyHeight)
	a.extractionsView.SetDimensions(width, bodyHeight)
	a.statusBar.SetWidth(width)
}
