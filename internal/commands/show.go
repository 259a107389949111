package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

func newShowCommand() *cobra.Command {
	var repoDir, entity string

	cmd := &cobra.Command{
		Use:   "show [family]",
		Short: "Print the consolidated state of a family, or list the entity's families",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family := ""
			if len(args) > 0 {
				family = args[0]
			}
			return runShow(cmd.OutOrStdout(), repoDir, entity, family)
		},
	}

	addRepoFlag(cmd, &repoDir)
	addEntityFlag(cmd, &entity)
	return cmd
}

func runShow(out io.Writer, repoDir, entity, family string) error {
	ws, err := openWorkspace(repoDir)
	if err != nil {
		return err
	}
	defer ws.close()

	if family == "" {
		fams, err := ws.engine.Families(entity)
		if err != nil {
			return err
		}
		if len(fams) == 0 {
			fmt.Fprintf(out, "no data for %s\n", entity)
			return nil
		}
		for _, f := range fams {
			fmt.Fprintf(out, "%-22s %s\n", f, f.Title())
		}
		return nil
	}

	f, err := model.ParseFamily(family)
	if err != nil {
		return err
	}
	st, err := ws.engine.GetConsolidated(entity, f)
	if err != nil {
		return err
	}
	if st == nil {
		fmt.Fprintf(out, "no data for %s\n", f)
		return nil
	}
	return writeJSON(out, st)
}
