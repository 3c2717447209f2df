package cmd

import (
	"fmt"

	"github.com/theirongolddev/finmock/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagFrom string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Open an interactive P&L dashboard for a generated dataset",
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&flagFrom, "from", "", "Read existing CSV tables from this directory instead of generating")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	p := tea.NewProgram(tui.NewApp(cfg, flagFrom), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if app, ok := final.(tui.App); ok && app.Err() != nil {
		return app.Err()
	}
	return nil
}
