package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/importlog"
)

func newHistoryCommand() *cobra.Command {
	var repoDir, entity, family string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the import log of an entity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.OutOrStdout(), repoDir, entity, family)
		},
	}

	addRepoFlag(cmd, &repoDir)
	addEntityFlag(cmd, &entity)
	cmd.Flags().StringVar(&family, "family", "", "only this family")
	return cmd
}

func runHistory(out io.Writer, repoDir, entity, family string) error {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	entries, err := importlog.Read(root)
	if err != nil {
		return err
	}
	entries = importlog.ForEntity(entries, entityKey(entity), family)
	if len(entries) == 0 {
		fmt.Fprintf(out, "no imports for %s\n", entityKey(entity))
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %s  %-6s %-20s %s", e.Timestamp.Local().Format(time.DateTime), e.ImportID, e.Status, e.Family, e.Source)
		if e.Error != "" {
			line += "  (" + e.Error + ")"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
