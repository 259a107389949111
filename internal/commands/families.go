package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

func newFamiliesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List the report families accepted by import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, f := range model.Families() {
				note := ""
				if f.Quarterly() {
					note = " (quarterly: --trimestre)"
				}
				fmt.Fprintf(out, "%-22s %s%s\n", f, f.Title(), note)
			}
			return nil
		},
	}
}
