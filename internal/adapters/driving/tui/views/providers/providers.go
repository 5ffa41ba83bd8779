// Package providers provides the payment provider list view for the TUI.
package providers

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// Lister lists payment providers.
type Lister interface {
	GetPaymentProviders(ctx context.Context) ([]domain.PaymentProvider, error)
}

// View lists the banking apps payment requests can be sent to.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service Lister
	ctx     context.Context

	providers []domain.PaymentProvider
	selected  int
	loading   bool
	err       error
}

// NewView creates a new provider list view.
func NewView(s *styles.Styles, service Lister) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		service: service,
		ctx:     context.Background(),
	}
}

// SetContext sets the context used for backend calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the providers.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	ctx, service := v.ctx, v.service
	return func() tea.Msg {
		if service == nil {
			return messages.ProvidersLoaded{Err: fmt.Errorf("document manager not available")}
		}
		providers, err := service.GetPaymentProviders(ctx)
		return messages.ProvidersLoaded{Providers: providers, Err: err}
	}
}

// Update handles messages for the provider view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ProvidersLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.providers = msg.Providers
			v.selected = 0
		}
		return v, nil

	case tea.KeyMsg:
		switch k := msg.String(); {
		case keymap.Matches(k, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(k, v.keymap.Down):
			if v.selected < len(v.providers)-1 {
				v.selected++
			}
		case keymap.Matches(k, v.keymap.Refresh):
			if !v.loading {
				return v, v.Init()
			}
		case keymap.Matches(k, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// View renders the provider list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Payment providers"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading payment providers..."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		return b.String()
	case len(v.providers) == 0:
		b.WriteString(v.styles.Muted.Render("No payment providers found."))
		return b.String()
	}

	for i := range v.providers {
		p := &v.providers[i]
		line := fmt.Sprintf("%-24s %s", p.Name, p.ID)
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		if p.AppVersion != "" {
			b.WriteString(v.styles.Muted.Render("  app " + p.AppVersion + "+"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Providers returns the loaded providers.
func (v *View) Providers() []domain.PaymentProvider {
	return v.providers
}

// SelectedProvider returns the highlighted provider, or nil if none.
func (v *View) SelectedProvider() *domain.PaymentProvider {
	if v.selected < 0 || v.selected >= len(v.providers) {
		return nil
	}
	return &v.providers[v.selected]
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
