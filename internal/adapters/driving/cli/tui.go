package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse payment requests and extractions interactively",
	Long: `Launch the interactive terminal interface.

Browse payment requests and payment providers, look up a request by id
and mark it as paid, or wait for a document and read its extractions.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / submit id
  p        - Mark the shown request as paid
  r        - Refresh
  Esc      - Back
  ?        - Help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}
	if !isTerminal(cmd) {
		return errors.New("tui requires an interactive terminal")
	}

	app, err := tui.NewApp(&tui.Ports{Documents: documentManager})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
