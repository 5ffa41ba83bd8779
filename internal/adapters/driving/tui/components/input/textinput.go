// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/styles"
)

// IDInput is a labelled single-line input for document and request ids.
type IDInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
}

// NewIDInput creates a focused id input.
func NewIDInput(s *styles.Styles, label, placeholder string) *IDInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()

	return &IDInput{
		textinput: ti,
		styles:    s,
		label:     label,
	}
}

// Init starts the cursor blinking.
func (i *IDInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards the message to the underlying input.
func (i *IDInput) Update(msg tea.Msg) (*IDInput, tea.Cmd) {
	var cmd tea.Cmd
	i.textinput, cmd = i.textinput.Update(msg)
	return i, cmd
}

// View renders the label and input.
func (i *IDInput) View() string {
	label := i.styles.Title.Render(i.label + ": ")
	field := i.styles.InputField.Render(i.textinput.View())
	//nolint:misspell // lipgloss.Center is the library's spelling
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the trimmed input value.
func (i *IDInput) Value() string {
	return strings.TrimSpace(i.textinput.Value())
}

// SetValue sets the input value.
func (i *IDInput) SetValue(value string) {
	i.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (i *IDInput) Focus() tea.Cmd {
	return i.textinput.Focus()
}

// Blur removes focus from the input.
func (i *IDInput) Blur() {
	i.textinput.Blur()
}

// Focused returns whether the input is focused.
func (i *IDInput) Focused() bool {
	return i.textinput.Focused()
}

// SetWidth sets the width available to the input.
func (i *IDInput) SetWidth(width int) {
	inputWidth := width - len(i.label) - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	i.textinput.Width = inputWidth
}

// Reset clears the input.
func (i *IDInput) Reset() {
	i.textinput.Reset()
}
