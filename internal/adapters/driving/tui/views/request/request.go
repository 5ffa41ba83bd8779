// Package request provides the view that looks up a single payment
// request by id and marks it as paid.
package request

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/components/detail"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// Service reads and resolves payment requests.
type Service interface {
	GetPaymentRequest(ctx context.Context, id string) (*domain.PaymentRequest, error)
	ResolvePaymentRequest(ctx context.Context, requestID string, input domain.ResolvePaymentInput) (string, error)
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
}

// View asks for a request id, then shows the request and its payment.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service Service
	ctx     context.Context
	input   *input.IDInput

	id        string
	request   *domain.PaymentRequest
	payment   *domain.Payment
	paymentID string
	loading   bool
	resolving bool
	err       error
	width     int
}

// NewView creates a new payment request view.
func NewView(s *styles.Styles, service Service) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		service: service,
		ctx:     context.Background(),
		input:   input.NewIDInput(s, "Request", "payment request id"),
		width:   80,
	}
}

// SetContext sets the context used for backend calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Reset returns to the id prompt.
func (v *View) Reset() {
	v.input.Reset()
	v.input.Focus()
	v.id = ""
	v.request = nil
	v.payment = nil
	v.paymentID = ""
	v.loading = false
	v.resolving = false
	v.err = nil
}

// Init starts the input cursor.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// load fetches the request and, for settled requests, its payment.
func (v *View) load(id string) tea.Cmd {
	ctx, service := v.ctx, v.service
	return func() tea.Msg {
		if service == nil {
			return messages.RequestLoaded{ID: id, Err: fmt.Errorf("document manager not available")}
		}
		req, err := service.GetPaymentRequest(ctx, id)
		if err != nil {
			return messages.RequestLoaded{ID: id, Err: err}
		}
		msg := messages.RequestLoaded{ID: id, Request: req}
		if isSettled(req.Status) {
			// A missing payment does not hide the request.
			if p, err := service.GetPayment(ctx, id); err == nil {
				msg.Payment = p
			}
		}
		return msg
	}
}

// resolve marks the request paid with the values it was created with.
func (v *View) resolve(id string, req domain.PaymentRequest) tea.Cmd {
	ctx, service := v.ctx, v.service
	return func() tea.Msg {
		paymentID, err := service.ResolvePaymentRequest(ctx, id, domain.ResolvePaymentInput{
			Recipient: req.Recipient,
			IBAN:      req.IBAN,
			BIC:       req.BIC,
			Amount:    req.Amount,
			Purpose:   req.Purpose,
		})
		return messages.RequestResolved{ID: id, PaymentID: paymentID, Err: err}
	}
}

func isSettled(s domain.PaymentRequestStatus) bool {
	return s == domain.PaymentRequestStatusPaid || s == domain.PaymentRequestStatusPaidAdjusted
}

// Update handles messages for the request view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.RequestLoaded:
		if msg.ID != v.id {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		v.request = msg.Request
		v.payment = msg.Payment
		return v, nil

	case messages.RequestResolved:
		if msg.ID != v.id {
			return v, nil
		}
		v.resolving = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.paymentID = msg.PaymentID
		v.loading = true
		return v, v.load(v.id)

	case tea.KeyMsg:
		if v.input.Focused() {
			return v.handleInputKey(msg)
		}
		return v.handleDetailKey(msg)
	}

	if v.input.Focused() {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		id := v.input.Value()
		if id == "" {
			return v, nil
		}
		v.input.Blur()
		v.id = id
		v.request = nil
		v.payment = nil
		v.paymentID = ""
		v.err = nil
		v.loading = true
		return v, v.load(id)
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleDetailKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch k := msg.String(); {
	case keymap.Matches(k, v.keymap.Back):
		v.Reset()
		return v, v.input.Init()
	case keymap.Matches(k, v.keymap.Refresh):
		if v.loading || v.resolving {
			return v, nil
		}
		v.loading = true
		v.err = nil
		return v, v.load(v.id)
	case keymap.Matches(k, v.keymap.Resolve):
		if !v.CanResolve() {
			return v, nil
		}
		v.resolving = true
		v.err = nil
		return v, v.resolve(v.id, *v.request)
	}
	return v, nil
}

// CanResolve reports whether the shown request can be marked as paid.
func (v *View) CanResolve() bool {
	return v.request != nil && v.request.Status == domain.PaymentRequestStatusOpen &&
		!v.loading && !v.resolving && v.service != nil
}

// View renders the prompt or the request.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Payment request"))
	b.WriteString("\n\n")

	if v.input.Focused() {
		b.WriteString(v.input.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("Enter the id returned when the request was created."))
		return b.String()
	}

	b.WriteString(v.styles.Subtitle.Render(v.id))
	b.WriteString("\n\n")

	switch {
	case v.loading && v.request == nil:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		return b.String()
	case v.request == nil && v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		return b.String()
	case v.request == nil:
		return b.String()
	}

	b.WriteString(detail.PaymentRequest(v.styles, v.request))

	if v.payment != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Subtitle.Render("Payment"))
		b.WriteString("\n")
		b.WriteString(detail.Payment(v.styles, v.payment))
	}

	b.WriteString("\n\n")
	switch {
	case v.resolving:
		b.WriteString(v.styles.Muted.Render("Marking as paid..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
	case v.paymentID != "":
		b.WriteString(v.styles.Success.Render("Resolved (payment " + v.paymentID + ")"))
	case v.CanResolve():
		b.WriteString(v.styles.Muted.Render("Press p to mark this request as paid."))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
	v.input.SetWidth(width)
}

// Editing reports whether the id prompt has focus.
func (v *View) Editing() bool {
	return v.input.Focused()
}

// Request returns the shown request, or nil.
func (v *View) Request() *domain.PaymentRequest {
	return v.request
}

// Payment returns the payment of a settled request, or nil.
func (v *View) Payment() *domain.Payment {
	return v.payment
}

// Loading reports whether a backend call is in flight.
func (v *View) Loading() bool {
	return v.loading || v.resolving
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
