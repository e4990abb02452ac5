package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/taxsheet/internal/tui"
	"github.com/jask/taxsheet/internal/wizard"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the data collection wizard (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd.Context())
		},
	}
}

func runWizard(ctx context.Context) error {
	svc, closeArchive, err := newExportService()
	if err != nil {
		return err
	}
	defer closeArchive()

	wiz := wizard.New(wizard.NewStore())
	defer wiz.Close()

	logger.Info("wizard started", "export_dir", cfg.Export.Dir, "archive", cfg.Archive.Enabled)
	app := tui.New(ctx, wiz, tui.Options{Report: svc.Report, Exporter: svc, Logger: logger})
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return err
	}
	logger.Info("wizard closed", "step", wiz.Current().Title)
	return nil
}
