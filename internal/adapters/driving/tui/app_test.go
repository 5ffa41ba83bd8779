package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driving"
)

// mockDocumentManager overrides the calls the TUI makes. Any other call
// panics through the nil embedded interface.
type mockDocumentManager struct {
	driving.DocumentManager

	requests  []domain.PaymentRequest
	providers []domain.PaymentProvider
	request   *domain.PaymentRequest
	err       error
}

func (m *mockDocumentManager) GetPaymentRequests(context.Context) ([]domain.PaymentRequest, error) {
	return m.requests, m.err
}

func (m *mockDocumentManager) GetPaymentProviders(context.Context) ([]domain.PaymentProvider, error) {
	return m.providers, m.err
}

func (m *mockDocumentManager) GetPaymentRequest(context.Context, string) (*domain.PaymentRequest, error) {
	return m.request, m.err
}

func (m *mockDocumentManager) ResolvePaymentRequest(context.Context, string, domain.ResolvePaymentInput) (string, error) {
	return "pay-1", m.err
}

func (m *mockDocumentManager) GetPayment(context.Context, string) (*domain.Payment, error) {
	return &domain.Payment{PaidAt: "2026-10-02T08:30:00Z"}, m.err
}

func (m *mockDocumentManager) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	return &domain.Document{ID: id}, m.err
}

func (m *mockDocumentManager) GetExtractions(context.Context, *domain.Document) (*domain.ExtractionsContainer, error) {
	return &domain.ExtractionsContainer{}, m.err
}

func newTestApp(t *testing.T, docs *mockDocumentManager) *App {
	t.Helper()
	app, err := NewApp(&Ports{Documents: docs})
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

// run delivers msg and every message its commands produce, depth first.
// Blink and window-title commands are skipped.
func run(app *App, msg tea.Msg) {
	_, cmd := app.Update(msg)
	drain(app, cmd)
}

func drain(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			drain(app, c)
		}
	case messages.ViewChanged, messages.RequestsLoaded, messages.RequestLoaded,
		messages.RequestResolved, messages.ProvidersLoaded:
		run(app, msg)
	}
}

func TestNewApp(t *testing.T) {
	t.Run("valid ports", func(t *testing.T) {
		app, err := NewApp(&Ports{Documents: &mockDocumentManager{}})

		require.NoError(t, err)
		assert.Equal(t, messages.ViewMenu, app.CurrentView())
		assert.False(t, app.Ready())
		assert.Equal(t, "Initialising...", app.View())
	})

	t.Run("missing document manager", func(t *testing.T) {
		app, err := NewApp(&Ports{})

		assert.ErrorIs(t, err, ErrMissingDocumentManager)
		assert.Nil(t, app)
	})
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t, &mockDocumentManager{})
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "value")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Documents: &mockDocumentManager{}})
	require.NoError(t, err)

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
	assert.Contains(t, app.View(), "docpay")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t, &mockDocumentManager{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_BrowseRequests(t *testing.T) {
	docs := &mockDocumentManager{
		requests: []domain.PaymentRequest{
			{Recipient: "Dr. med. Hackler", Amount: "335.50:EUR", Status: domain.PaymentRequestStatusOpen},
			{Recipient: "Stadtwerke", Amount: "12.00:EUR", Status: domain.PaymentRequestStatusPaid},
		},
	}
	app := newTestApp(t, docs)

	run(app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, messages.ViewRequests, app.CurrentView())
	out := app.View()
	assert.Contains(t, out, "Dr. med. Hackler")
	assert.Contains(t, out, "2 requests")

	run(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ResolveRequest(t *testing.T) {
	docs := &mockDocumentManager{
		request: &domain.PaymentRequest{Recipient: "Dr. med. Hackler", Amount: "335.50:EUR", Status: domain.PaymentRequestStatusOpen},
	}
	app := newTestApp(t, docs)

	run(app, messages.ViewChanged{View: messages.ViewRequest})
	require.Equal(t, messages.ViewRequest, app.CurrentView())
	assert.Contains(t, app.View(), "enter: select")

	for _, r := range "pr-1" {
		run(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	run(app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, app.View(), "p: mark paid")

	docs.request = &domain.PaymentRequest{Recipient: "Dr. med. Hackler", Amount: "335.50:EUR", Status: domain.PaymentRequestStatusPaid}
	run(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})

	out := app.View()
	assert.Contains(t, out, "Resolved (payment pay-1)")
	assert.Contains(t, out, "2026-10-02T08:30:00Z")
}

func TestApp_Providers(t *testing.T) {
	app := newTestApp(t, &mockDocumentManager{
		providers: []domain.PaymentProvider{{ID: "pp-1", Name: "Sparkasse"}},
	})

	run(app, messages.ViewChanged{View: messages.ViewProviders})

	assert.Contains(t, app.View(), "Sparkasse")
}

func TestApp_LoadErrorShownInStatusBar(t *testing.T) {
	app := newTestApp(t, &mockDocumentManager{err: errors.New("backend down")})

	run(app, messages.ViewChanged{View: messages.ViewProviders})

	assert.Equal(t, status.StateError, app.statusBar.State())
	assert.Contains(t, app.View(), "Error: backend down")
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, &mockDocumentManager{})

	run(app, messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.Equal(t, status.StateError, app.statusBar.State())

	run(app, messages.ViewChanged{View: messages.ViewHelp})
	assert.NoError(t, app.Err(), "navigating clears the error")
}

func TestApp_Help(t *testing.T) {
	app := newTestApp(t, &mockDocumentManager{})

	run(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	require.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "mark paid")

	run(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, messages.ViewHelp, app.CurrentView(), "help ignores other keys")

	run(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_QuitMessage(t *testing.T) {
	app := newTestApp(t, &mockDocumentManager{})

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
