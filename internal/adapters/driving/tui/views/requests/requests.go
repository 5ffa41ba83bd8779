// Package requests provides the payment request list view for the TUI.
package requests

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/components/detail"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// Lister lists payment requests.
type Lister interface {
	GetPaymentRequests(ctx context.Context) ([]domain.PaymentRequest, error)
}

// View lists all payment requests with the selected one expanded.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service Lister
	ctx     context.Context

	requests []domain.PaymentRequest
	selected int
	width    int
	height   int
	loading  bool
	err      error
}

// NewView creates a new payment request list view.
func NewView(s *styles.Styles, service Lister) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		service: service,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// SetContext sets the context used for backend calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the payment requests.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.load()
}

func (v *View) load() tea.Cmd {
	ctx, service := v.ctx, v.service
	return func() tea.Msg {
		if service == nil {
			return messages.RequestsLoaded{Err: fmt.Errorf("document manager not available")}
		}
		requests, err := service.GetPaymentRequests(ctx)
		return messages.RequestsLoaded{Requests: requests, Err: err}
	}
}

// Update handles messages for the list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.RequestsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.requests = msg.Requests
			if v.selected >= len(v.requests) {
				v.selected = max(len(v.requests)-1, 0)
			}
		}
		return v, nil

	case tea.KeyMsg:
		switch k := msg.String(); {
		case keymap.Matches(k, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(k, v.keymap.Down):
			if v.selected < len(v.requests)-1 {
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

// View renders the list and the selected request.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Payment requests"))
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.requests) == 0:
		b.WriteString(v.styles.Muted.Render("Loading payment requests..."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		return b.String()
	case len(v.requests) == 0:
		b.WriteString(v.styles.Muted.Render("No payment requests found."))
		return b.String()
	}

	start, end := v.visibleRange()
	for i := start; i < end; i++ {
		b.WriteString(v.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderSelected())
	return b.String()
}

// visibleRange keeps the selection on screen, leaving room for the detail box.
func (v *View) visibleRange() (int, int) {
	visible := v.height - 16
	if visible < 3 {
		visible = 3
	}
	start := 0
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	return start, min(start+visible, len(v.requests))
}

func (v *View) renderRow(i int) string {
	req := &v.requests[i]
	line := fmt.Sprintf("%-12s %-28s %s", req.Amount, truncate(req.Recipient, 28), truncate(req.Purpose, 30))
	if i == v.selected {
		return "> " + v.styles.Selected.Render(line) + " " + v.styles.Status(req.Status).Render(string(req.Status))
	}
	return "  " + v.styles.Normal.Render(line) + " " + v.styles.Status(req.Status).Render(string(req.Status))
}

func (v *View) renderSelected() string {
	req := v.SelectedRequest()
	if req == nil {
		return ""
	}
	return detail.PaymentRequest(v.styles, req)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Requests returns the loaded payment requests.
func (v *View) Requests() []domain.PaymentRequest {
	return v.requests
}

// SelectedRequest returns the highlighted request, or nil if none.
func (v *View) SelectedRequest() *domain.PaymentRequest {
	if v.selected < 0 || v.selected >= len(v.requests) {
		return nil
	}
	return &v.requests[v.selected]
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
