package request

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// MockService implements Service for testing.
type MockService struct {
	GetFunc        func(ctx context.Context, id string) (*domain.PaymentRequest, error)
	ResolveFunc    func(ctx context.Context, id string, input domain.ResolvePaymentInput) (string, error)
	GetPaymentFunc func(ctx context.Context, id string) (*domain.Payment, error)
}

func (m *MockService) GetPaymentRequest(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, errors.New("not found")
}

func (m *MockService) ResolvePaymentRequest(ctx context.Context, id string, input domain.ResolvePaymentInput) (string, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, id, input)
	}
	return "", errors.New("not implemented")
}

func (m *MockService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	if m.GetPaymentFunc != nil {
		return m.GetPaymentFunc(ctx, id)
	}
	return nil, errors.New("not found")
}

func openRequest() *domain.PaymentRequest {
	return &domain.PaymentRequest{
		PaymentProvider: "pp-1", Recipient: "Dr. med. Hackler", IBAN: "DE02300209000106531065",
		BIC: "BYLADEM1001", Amount: "335.50:EUR", Purpose: "ReNr AZ356789Z",
		Status: domain.PaymentRequestStatusOpen,
	}
}

func typeID(v *View, id string) {
	for _, r := range id {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// submit types id, presses enter and delivers the load result.
func submit(t *testing.T, v *View, id string) {
	t.Helper()
	typeID(v, id)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.True(t, view.Editing())
	assert.Nil(t, view.Request())
	assert.NotNil(t, view.Init())
}

func TestView_Submit(t *testing.T) {
	t.Run("loads the request", func(t *testing.T) {
		var gotID string
		view := NewView(nil, &MockService{
			GetFunc: func(_ context.Context, id string) (*domain.PaymentRequest, error) {
				gotID = id
				return openRequest(), nil
			},
		})

		submit(t, view, "pr-1")

		assert.Equal(t, "pr-1", gotID)
		assert.False(t, view.Editing())
		assert.False(t, view.Loading())
		require.NotNil(t, view.Request())
		assert.Nil(t, view.Payment())
		assert.True(t, view.CanResolve())
		assert.Contains(t, view.View(), "Press p to mark this request as paid.")
	})

	t.Run("empty id is ignored", func(t *testing.T) {
		view := NewView(nil, &MockService{})

		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Nil(t, cmd)
		assert.True(t, view.Editing())
	})

	t.Run("settled request loads its payment", func(t *testing.T) {
		view := NewView(nil, &MockService{
			GetFunc: func(context.Context, string) (*domain.PaymentRequest, error) {
				req := openRequest()
				req.Status = domain.PaymentRequestStatusPaidAdjusted
				return req, nil
			},
			GetPaymentFunc: func(_ context.Context, id string) (*domain.Payment, error) {
				return &domain.Payment{PaidAt: "2026-10-02T08:30:00Z", Amount: "330.00:EUR"}, nil
			},
		})

		submit(t, view, "pr-1")

		require.NotNil(t, view.Payment())
		assert.False(t, view.CanResolve())
		assert.Contains(t, view.View(), "330.00:EUR")
	})

	t.Run("missing payment still shows the request", func(t *testing.T) {
		view := NewView(nil, &MockService{
			GetFunc: func(context.Context, string) (*domain.PaymentRequest, error) {
				req := openRequest()
				req.Status = domain.PaymentRequestStatusPaid
				return req, nil
			},
		})

		submit(t, view, "pr-1")

		require.NotNil(t, view.Request())
		assert.Nil(t, view.Payment())
		assert.NoError(t, view.Err())
	})

	t.Run("load error", func(t *testing.T) {
		view := NewView(nil, &MockService{})

		submit(t, view, "pr-missing")

		assert.Nil(t, view.Request())
		assert.EqualError(t, view.Err(), "not found")
		assert.Contains(t, view.View(), "Error: not found")
	})

	t.Run("nil service", func(t *testing.T) {
		view := NewView(nil, nil)

		submit(t, view, "pr-1")

		assert.Error(t, view.Err())
		assert.False(t, view.CanResolve())
	})
}

func TestView_StaleLoadIgnored(t *testing.T) {
	view := NewView(nil, &MockService{
		GetFunc: func(context.Context, string) (*domain.PaymentRequest, error) {
			return openRequest(), nil
		},
	})
	submit(t, view, "pr-2")

	view.Update(messages.RequestLoaded{ID: "pr-1", Err: errors.New("late")})

	assert.NoError(t, view.Err())
	assert.NotNil(t, view.Request())
}

func TestView_Resolve(t *testing.T) {
	t.Run("resolves with the request values and reloads", func(t *testing.T) {
		status := domain.PaymentRequestStatusOpen
		var got domain.ResolvePaymentInput
		var gotCtx context.Context
		type ctxKey struct{}
		ctx := context.WithValue(context.Background(), ctxKey{}, "tui")

		view := NewView(nil, &MockService{
			GetFunc: func(context.Context, string) (*domain.PaymentRequest, error) {
				req := openRequest()
				req.Status = status
				return req, nil
			},
			ResolveFunc: func(ctx context.Context, id string, input domain.ResolvePaymentInput) (string, error) {
				gotCtx = ctx
				got = input
				status = domain.PaymentRequestStatusPaid
				return "pay-1", nil
			},
			GetPaymentFunc: func(context.Context, string) (*domain.Payment, error) {
				return &domain.Payment{PaidAt: "2026-10-02T08:30:00Z"}, nil
			},
		})
		view.SetContext(ctx)
		submit(t, view, "pr-1")

		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
		require.NotNil(t, cmd)
		assert.True(t, view.Loading())
		assert.False(t, view.CanResolve(), "no second resolve while one is in flight")

		_, reload := view.Update(cmd())
		require.NotNil(t, reload)
		view.Update(reload())

		assert.Equal(t, domain.ResolvePaymentInput{
			Recipient: "Dr. med. Hackler", IBAN: "DE02300209000106531065", BIC: "BYLADEM1001",
			Amount: "335.50:EUR", Purpose: "ReNr AZ356789Z",
		}, got)
		assert.Equal(t, "tui", gotCtx.Value(ctxKey{}))
		assert.Equal(t, domain.PaymentRequestStatusPaid, view.Request().Status)
		assert.NotNil(t, view.Payment())
		assert.Contains(t, view.View(), "Resolved (payment pay-1)")
	})

	t.Run("resolve error is shown", func(t *testing.T) {
		view := NewView(nil, &MockService{
			GetFunc: func(context.Context, string) (*domain.PaymentRequest, error) {
				return openRequest(), nil
			},
			ResolveFunc: func(context.Context, string, domain.ResolvePaymentInput) (string, error) {
				return "", errors.New("request is not open")
			},
		})
		submit(t, view, "pr-1")

		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
		require.NotNil(t, cmd)
		_, next := view.Update(cmd())

		assert.Nil(t, next)
		assert.EqualError(t, view.Err(), "request is not open")
		assert.Contains(t, view.View(), "Error: request is not open")
		assert.True(t, view.CanResolve())
	})

	t.Run("only open requests resolve", func(t *testing.T) {
		view := NewView(nil, &MockService{
			GetFunc: func(context.Context, string) (*domain.PaymentRequest, error) {
				req := openRequest()
				req.Status = domain.PaymentRequestStatusExpired
				return req, nil
			},
		})
		submit(t, view, "pr-1")

		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})

		assert.Nil(t, cmd)
	})
}

func TestView_Refresh(t *testing.T) {
	calls := 0
	view := NewView(nil, &MockService{
		GetFunc: func(context.Context, string) (*domain.PaymentRequest, error) {
			calls++
			return openRequest(), nil
		},
	})
	submit(t, view, "pr-1")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	view.Update(cmd())

	assert.Equal(t, 2, calls)
}

func TestView_Back(t *testing.T) {
	t.Run("from detail returns to the prompt", func(t *testing.T) {
		view := NewView(nil, &MockService{
			GetFunc: func(context.Context, string) (*domain.PaymentRequest, error) {
				return openRequest(), nil
			},
		})
		submit(t, view, "pr-1")

		view.Update(tea.KeyMsg{Type: tea.KeyEsc})

		assert.True(t, view.Editing())
		assert.Nil(t, view.Request())
	})

	t.Run("from prompt returns to the menu", func(t *testing.T) {
		view := NewView(nil, &MockService{})

		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

		require.NotNil(t, cmd)
		assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
	})

	t.Run("p and r are typed while editing", func(t *testing.T) {
		view := NewView(nil, &MockService{})

		typeID(view, "pr")

		assert.True(t, view.Editing())
		assert.Equal(t, "pr", view.input.Value())
	})
}
