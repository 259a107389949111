package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/engine"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/importlog"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/period"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

// errImportFailed is returned after a failed import's Result was printed.
var errImportFailed = errors.New("import failed")

func newImportCommand() *cobra.Command {
	var repoDir, entity, encoding, trimestre string
	var ano int

	cmd := &cobra.Command{
		Use:   "import <family> <file>",
		Short: "Import one Domínio export into an entity's consolidated state",
		Long: "Import one Domínio export into an entity's consolidated state.\n\n" +
			"Prints the import result as JSON. Run `agilidash families` for the family ids.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := engine.ImportOptions{Ano: ano}
			if trimestre != "" {
				n, err := period.Ordinal(trimestre)
				if err != nil {
					return err
				}
				opts.Trimestre = n
			}
			if encoding != "" {
				enc, err := textnorm.ParseEncoding(encoding)
				if err != nil {
					return err
				}
				opts.Encoding = enc
			}
			return runImport(cmd.OutOrStdout(), repoDir, entity, args[0], args[1], opts)
		},
	}

	addRepoFlag(cmd, &repoDir)
	addEntityFlag(cmd, &entity)
	cmd.Flags().StringVar(&trimestre, "trimestre", "", "quarter (1-4 or 3º) of a CSLL or IRPJ export, overriding the file")
	cmd.Flags().IntVar(&ano, "ano", 0, "year of a CSLL or IRPJ quarter, overriding the file")
	cmd.Flags().StringVar(&encoding, "encoding", "", "input encoding, overriding the config (auto, utf-8, iso-8859-1, windows-1252)")

	return cmd
}

func runImport(out io.Writer, repoDir, entity, family, file string, opts engine.ImportOptions) error {
	ws, err := openWorkspace(repoDir)
	if err != nil {
		return err
	}
	defer ws.close()

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading export: %w", err)
	}
	opts.Source = sourceName(ws.root, file)

	f := model.Family(strings.ToLower(strings.TrimSpace(family)))
	res := ws.engine.ImportReport(entity, f, raw, opts)
	ws.record(entity, f, opts.Source, res)

	if err := writeJSON(out, res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", errImportFailed, res.Error)
	}

	ws.commit(out, fmt.Sprintf("import: %s %s", f, entityKey(entity)))
	return nil
}

// record appends the outcome to the workspace import log.
func (w *workspace) record(entity string, f model.Family, source string, res engine.Result) {
	e := importlog.Entry{
		Timestamp: time.Now(),
		ImportID:  res.ImportID,
		Entity:    entityKey(entity),
		Family:    string(f),
		Source:    source,
		Status:    importlog.StatusOK,
	}
	if !res.Success {
		e.Status = importlog.StatusFailed
		e.Error = res.Error
	}
	if err := importlog.Append(w.root, e); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write import log: %v\n", err)
	}
}

// entityKey is the normalized id when entity is valid, else entity as given.
func entityKey(entity string) string {
	if id, err := model.NormalizeEntityID(entity); err == nil {
		return id
	}
	return entity
}

// sourceName shows file relative to the workspace when it lives inside it.
func sourceName(root, file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		return file
	}
	if rel, err := filepath.Rel(root, abs); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return abs
}
