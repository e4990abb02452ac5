package commands

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/taxsheet/internal/testdata"
)

func seedCmd() *cobra.Command {
	var (
		count   int
		entries int
		seed    int64
	)
	cmd := &cobra.Command{
		Use:    "seed",
		Short:  "Export generated sample returns (for demos)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeArchive, err := newExportService()
			if err != nil {
				return err
			}
			defer closeArchive()

			r := rand.New(rand.NewSource(seed))
			now := time.Now()
			for i := 0; i < count; i++ {
				snap := testdata.Snapshot(r, entries, now.Add(time.Duration(i)*time.Second))
				res, err := svc.Export(cmd.Context(), snap)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.ID, res.Path)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 3, "number of returns to export")
	cmd.Flags().IntVar(&entries, "entries", 2, "entries per list section")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	return cmd
}
