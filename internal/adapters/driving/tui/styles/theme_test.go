package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s.Theme())
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}

func TestNewStyles_CustomTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Primary = lipgloss.Color("#000000")

	s := NewStyles(theme)

	assert.Equal(t, lipgloss.Color("#000000"), s.Title.GetForeground())
	assert.Equal(t, lipgloss.Color("#000000"), s.Selected.GetBackground())
}

func TestStyles_Status(t *testing.T) {
	s := DefaultStyles()
	theme := s.Theme()

	tests := []struct {
		status domain.PaymentRequestStatus
		want   lipgloss.TerminalColor
	}{
		{domain.PaymentRequestStatusOpen, theme.Secondary},
		{domain.PaymentRequestStatusPaid, theme.Success},
		{domain.PaymentRequestStatusPaidAdjusted, theme.Success},
		{domain.PaymentRequestStatusExpired, theme.Muted},
		{domain.PaymentRequestStatusCanceled, theme.Muted},
		{domain.PaymentRequestStatus("refunded"), theme.Warning},
		{domain.PaymentRequestStatus(""), theme.Warning},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, s.Status(tt.status).GetForeground())
		})
	}
}
