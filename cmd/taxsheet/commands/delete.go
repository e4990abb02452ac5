package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	var keepFile bool
	cmd := &cobra.Command{
		Use:   "delete <submission-id>",
		Short: "Remove an archived export and its PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeArchive, err := newExportService()
			if err != nil {
				return err
			}
			defer closeArchive()

			sub, err := svc.Delete(cmd.Context(), args[0], !keepFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%s)\n", sub.ID, sub.Taxpayer)
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepFile, "keep-file", false, "keep the exported PDF on disk")
	return cmd
}
