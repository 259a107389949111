package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/classify"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/config"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/engine"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/gitops"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/logging"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/store"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

// workspace is an opened AgiliDash directory: its config, store and
// engine.
type workspace struct {
	root   string
	cfg    *config.Config
	logger *zap.Logger
	store  store.Backend
	engine *engine.Engine
	closed bool
}

func addRepoFlag(cmd *cobra.Command, repoDir *string) {
	cmd.Flags().StringVar(repoDir, "repo", ".", "workspace directory")
}

func addEntityFlag(cmd *cobra.Command, entity *string) {
	cmd.Flags().StringVar(entity, "entity", "", "legal entity id or CNPJ (required)")
	_ = cmd.MarkFlagRequired("entity")
}

func openWorkspace(repoDir string) (*workspace, error) {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadDir(root)
	if err != nil {
		return nil, fmt.Errorf("not an AgiliDash workspace (%s): %w", root, err)
	}
	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	enc, err := textnorm.ParseEncoding(cfg.Import.Encoding)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	classifier, err := classify.Load(config.Resolve(root, cfg.Rules.Path))
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg, root)
	if err != nil {
		return nil, err
	}

	return &workspace{
		root:   root,
		cfg:    cfg,
		logger: logger,
		store:  st,
		engine: engine.New(st, engine.Options{
			Logger:          logger,
			Classifier:      classifier,
			Encoding:        enc,
			BalanceteWindow: cfg.Import.BalanceteWindow,
		}),
	}, nil
}

// close releases the store. Safe to call twice.
func (w *workspace) close() {
	if w.closed {
		return
	}
	w.closed = true
	if err := w.store.Close(); err != nil {
		w.logger.Warn("closing store", zap.Error(err))
	}
	_ = w.logger.Sync()
}

// commit records the workspace changes in git when auto-commit is on.
// The store is closed first so a SQLite database is checkpointed.
func (w *workspace) commit(out io.Writer, message string) {
	w.close()
	if !w.cfg.Git.AutoCommit || !gitops.IsRepo(w.root) {
		return
	}

	var paths []string
	for _, p := range []string{w.cfg.Store.Path, "logs", "import"} {
		if filepath.IsAbs(p) {
			continue
		}
		if _, err := os.Stat(filepath.Join(w.root, p)); err == nil {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return
	}

	hash, err := gitops.CommitPaths(w.root, message, w.cfg.Git.AuthorName, w.cfg.Git.AuthorEmail, paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: git commit failed: %v\n", err)
		return
	}
	if hash != "" {
		fmt.Fprintf(out, "Committed %s\n", hash)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
