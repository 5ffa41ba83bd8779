// Package extractions provides the view that waits for a document and
// shows what the backend extracted from it.
package extractions

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// Service fetches documents and their extractions.
type Service interface {
	GetDocument(ctx context.Context, documentID string) (*domain.Document, error)
	GetExtractions(ctx context.Context, doc *domain.Document) (*domain.ExtractionsContainer, error)
}

// View asks for a document id and shows its extractions. Loading waits
// for the backend to finish the document; leaving the view cancels the wait.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	service Service
	ctx     context.Context
	cancel  context.CancelFunc
	input   *input.IDInput

	// gen identifies the outstanding load; results of older loads are dropped.
	gen         int
	documentID  string
	extractions *domain.ExtractionsContainer
	lines       []string
	offset      int
	height      int
	loading     bool
	err         error
}

// NewView creates a new extractions view.
func NewView(s *styles.Styles, service Service) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		service: service,
		ctx:     context.Background(),
		input:   input.NewIDInput(s, "Document", "document id"),
		height:  24,
	}
}

// SetContext sets the parent context for backend calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init starts the input cursor.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Reset cancels any outstanding load and returns to the id prompt.
func (v *View) Reset() {
	v.stop()
	v.input.Reset()
	v.input.Focus()
	v.documentID = ""
	v.extractions = nil
	v.lines = nil
	v.offset = 0
	v.err = nil
}

func (v *View) stop() {
	v.gen++
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.loading = false
}

// loadedMsg tags a result with the load that produced it.
type loadedMsg struct {
	messages.ExtractionsLoaded
	gen int
}

func (v *View) load(id string) tea.Cmd {
	v.stop()
	v.loading = true
	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel
	gen, service := v.gen, v.service
	return func() tea.Msg {
		defer cancel()
		msg := loadedMsg{ExtractionsLoaded: messages.ExtractionsLoaded{DocumentID: id}, gen: gen}
		if service == nil {
			msg.Err = fmt.Errorf("document manager not available")
			return msg
		}
		doc, err := service.GetDocument(ctx, id)
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.Extractions, msg.Err = service.GetExtractions(ctx, doc)
		return msg
	}
}

// Update handles messages for the extractions view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.gen != v.gen || !v.loading {
			return v, nil
		}
		v.cancel = nil
		v.loading = false
		v.err = msg.Err
		v.extractions = msg.Extractions
		v.lines = v.render()
		v.offset = 0
		return v, nil

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
		v.documentID = id
		v.extractions = nil
		v.lines = nil
		v.err = nil
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
	case keymap.Matches(k, v.keymap.Up):
		if v.offset > 0 {
			v.offset--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.offset < len(v.lines)-v.pageSize() {
			v.offset++
		}
	case keymap.Matches(k, v.keymap.Refresh):
		if !v.loading {
			v.err = nil
			return v, v.load(v.documentID)
		}
	}
	return v, nil
}

func (v *View) pageSize() int {
	return max(v.height-8, 3)
}

// render lays out the extractions once so scrolling is a slice.
func (v *View) render() []string {
	c := v.extractions
	if c == nil {
		return nil
	}

	var lines []string
	for _, name := range sortedKeys(c.SpecificExtractions) {
		ex := c.SpecificExtractions[name]
		line := v.styles.Label.Width(20).Render(name) + v.styles.Normal.Render(ex.Value)
		if ex.Entity != "" {
			line += v.styles.Muted.Render("  " + ex.Entity)
		}
		lines = append(lines, line)
		if len(ex.Candidates) > 1 {
			values := make([]string, len(ex.Candidates))
			for i, cand := range ex.Candidates {
				values[i] = cand.Value
			}
			lines = append(lines, v.styles.Muted.Render(strings.Repeat(" ", 20)+"candidates: "+strings.Join(values, ", ")))
		}
	}

	for _, name := range sortedKeys(c.CompoundExtractions) {
		compound := c.CompoundExtractions[name]
		lines = append(lines, "", v.styles.Subtitle.Render(name))
		for i, row := range compound.SpecificExtractionMaps {
			fields := make([]string, 0, len(row))
			for _, field := range sortedKeys(row) {
				fields = append(fields, field+"="+row[field].Value)
			}
			lines = append(lines, fmt.Sprintf("  [%d] %s", i+1, strings.Join(fields, " ")))
		}
	}

	if len(c.ReturnReasons) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Return reasons"))
		for _, rr := range c.ReturnReasons {
			lines = append(lines, fmt.Sprintf("  %s: %s", rr.ID, rr.LocalizedLabels["en"]))
		}
	}
	return lines
}

// View renders the prompt or the extractions.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Extractions"))
	b.WriteString("\n\n")

	if v.input.Focused() {
		b.WriteString(v.input.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("Waits until the document is processed."))
		return b.String()
	}

	b.WriteString(v.styles.Subtitle.Render(v.documentID))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Waiting for the document to be processed..."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		return b.String()
	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("No extractions found."))
		return b.String()
	}

	end := min(v.offset+v.pageSize(), len(v.lines))
	b.WriteString(strings.Join(v.lines[v.offset:end], "\n"))
	if end < len(v.lines) {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("... %d more", len(v.lines)-end)))
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.height = height
	v.input.SetWidth(width)
}

// Editing reports whether the id prompt has focus.
func (v *View) Editing() bool {
	return v.input.Focused()
}

// Extractions returns the loaded extractions, or nil.
func (v *View) Extractions() *domain.ExtractionsContainer {
	return v.extractions
}

// Loading reports whether the view is waiting for the backend.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
