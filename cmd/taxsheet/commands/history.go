package commands

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.Archive.Enabled {
				return errors.New("archive is disabled (archive.enabled = false)")
			}
			svc, closeArchive, err := newExportService()
			if err != nil {
				return err
			}
			defer closeArchive()

			subs, err := svc.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No archived exports.")
				return nil
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "Taken", "Taxpayer", "PDF")
			for _, s := range subs {
				name := s.Taxpayer
				if name == "" {
					name = "-"
				}
				t.Row(s.ID, s.TakenAt.Local().Format("2006-01-02 15:04"), name, s.PDFPath)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of exports to show (0 for all)")
	return cmd
}
