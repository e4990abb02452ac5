package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/taxsheet/internal/service"
)

func renderCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render <submission-id>",
		Short: "Re-render an archived export as a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeArchive, err := newExportService()
			if err != nil {
				return err
			}
			defer closeArchive()

			id := args[0]
			if out == "-" {
				return svc.Render(cmd.Context(), id, cmd.OutOrStdout())
			}
			if out == "" {
				snap, err := svc.Snapshot(cmd.Context(), id)
				if err != nil {
					return err
				}
				out = service.FileName(snap)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := svc.Render(cmd.Context(), id, f); err != nil {
				_ = f.Close()
				_ = os.Remove(out)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			logger.Info("rendered archived export", "id", id, "path", out)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, - for stdout (default: original file name in the current directory)")
	return cmd
}
