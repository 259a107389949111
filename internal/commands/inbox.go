package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/engine"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/inbox"
)

func newInboxCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Import every export waiting under import/<entity>/<family>/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInbox(cmd.OutOrStdout(), repoDir)
		},
	}

	addRepoFlag(cmd, &repoDir)
	return cmd
}

func runInbox(out io.Writer, repoDir string) error {
	ws, err := openWorkspace(repoDir)
	if err != nil {
		return err
	}
	defer ws.close()

	items, err := inbox.Scan(ws.root)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "Inbox is empty")
		return nil
	}

	var (
		imported, failed int
		stopErr          error
	)
	for _, it := range items {
		raw, err := os.ReadFile(it.Path)
		if err != nil {
			stopErr = fmt.Errorf("reading %s: %w", it.Rel(), err)
			break
		}
		res := ws.engine.ImportReport(it.Entity, it.Family, raw, engine.ImportOptions{Source: it.Rel()})
		ws.record(it.Entity, it.Family, it.Rel(), res)

		if !res.Success {
			failed++
			fmt.Fprintf(out, "FAIL %s: %s\n", it.Rel(), res.Error)
			if !engine.IsInputError(res.Err()) {
				// The store is failing; later files would fail the same way.
				stopErr = fmt.Errorf("inbox stopped at %s: %w", it.Rel(), res.Err())
				break
			}
			continue
		}
		if _, err := inbox.MarkProcessed(ws.root, it); err != nil {
			stopErr = err
			break
		}
		imported++
		fmt.Fprintf(out, "ok   %s\n", it.Rel())
	}

	if imported > 0 {
		ws.commit(out, fmt.Sprintf("inbox: %d imported", imported))
	}
	fmt.Fprintf(out, "%d imported, %d failed\n", imported, failed)
	if stopErr != nil {
		return stopErr
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", errImportFailed, failed, len(items))
	}
	return nil
}
