package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

func newClearCommand() *cobra.Command {
	var repoDir, entity string

	cmd := &cobra.Command{
		Use:   "clear <family>",
		Short: "Delete the consolidated state of a family",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd.OutOrStdout(), repoDir, entity, args[0])
		},
	}

	addRepoFlag(cmd, &repoDir)
	addEntityFlag(cmd, &entity)
	return cmd
}

func runClear(out io.Writer, repoDir, entity, family string) error {
	f, err := model.ParseFamily(family)
	if err != nil {
		return err
	}
	ws, err := openWorkspace(repoDir)
	if err != nil {
		return err
	}
	defer ws.close()

	if err := ws.engine.Clear(entity, f); err != nil {
		return err
	}
	fmt.Fprintf(out, "Cleared %s for %s\n", f, entityKey(entity))
	ws.commit(out, fmt.Sprintf("clear: %s %s", f, entityKey(entity)))
	return nil
}
