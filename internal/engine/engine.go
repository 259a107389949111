// Package engine is the import API: decode an export, parse it, merge it
// into the entity's state for that family and persist the result. A
// failed import never touches the store.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/classify"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/consolidate"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/report"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/store"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

// Options configure an Engine. Zero values select the defaults.
type Options struct {
	Logger          *zap.Logger
	Parsers         *report.Registry
	Classifier      *classify.Classifier
	Encoding        textnorm.Encoding
	BalanceteWindow int
}

// Engine serialises imports so the read, merge and write of one import
// never interleave with another inside the process.
type Engine struct {
	store      store.EntityStateStore
	parsers    *report.Registry
	classifier *classify.Classifier
	logger     *zap.Logger
	encoding   textnorm.Encoding
	window     int

	mu sync.Mutex
}

// New creates an Engine over st.
func New(st store.EntityStateStore, opts Options) *Engine {
	e := &Engine{
		store:      st,
		parsers:    opts.Parsers,
		classifier: opts.Classifier,
		logger:     opts.Logger,
		encoding:   opts.Encoding,
		window:     opts.BalanceteWindow,
	}
	if e.parsers == nil {
		e.parsers = report.DefaultRegistry()
	}
	if e.classifier == nil {
		e.classifier = classify.Default()
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.encoding == "" {
		e.encoding = textnorm.EncodingAuto
	}
	if e.window <= 0 {
		e.window = consolidate.DefaultBalanceteWindow
	}
	return e
}

// ImportOptions carry the operator's input for one import.
type ImportOptions struct {
	// Trimestre (1..4) and Ano override the quarter of a CSLL/IRPJ export.
	Trimestre int
	Ano       int
	// Encoding overrides the engine's input encoding.
	Encoding textnorm.Encoding
	// Source names the imported file in logs.
	Source string
}

// Result is the outcome handed to callers that want a document rather
// than a Go error.
type Result struct {
	Success  bool        `json:"success"`
	Dados    model.State `json:"dados,omitempty"`
	ImportID string      `json:"importId"`
	Error    string      `json:"error,omitempty"`

	err error
}

// Err returns the failure behind an unsuccessful Result.
func (r Result) Err() error { return r.err }

// Import parses raw as an export of family f and merges it into the
// stored state of entityID, returning the new state.
func (e *Engine) Import(entityID string, f model.Family, raw []byte, opts ImportOptions) (model.State, error) {
	st, _, err := e.run(entityID, f, raw, opts)
	return st, err
}

// ImportReport is Import returning a Result.
func (e *Engine) ImportReport(entityID string, f model.Family, raw []byte, opts ImportOptions) Result {
	st, id, err := e.run(entityID, f, raw, opts)
	if err != nil {
		return Result{Success: false, ImportID: id, Error: err.Error(), err: err}
	}
	return Result{Success: true, Dados: st, ImportID: id}
}

func (e *Engine) run(entityID string, f model.Family, raw []byte, opts ImportOptions) (model.State, string, error) {
	importID := uuid.NewString()
	log := e.logger.With(
		zap.String("import_id", importID),
		zap.String("entity", entityID),
		zap.String("family", string(f)),
	)
	if opts.Source != "" {
		log = log.With(zap.String("source", opts.Source))
	}

	st, in, err := e.importOnce(log, entityID, f, raw, opts)
	if err != nil {
		log.Error("import failed", zap.Error(err))
		return nil, importID, err
	}
	log.Info("import succeeded", zap.String("competencia", periodOf(in, st)))
	return st, importID, nil
}

func (e *Engine) importOnce(log *zap.Logger, entityID string, f model.Family, raw []byte, opts ImportOptions) (model.State, model.Report, error) {
	entity, err := model.NormalizeEntityID(entityID)
	if err != nil {
		return nil, nil, err
	}
	if !f.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", model.ErrUnknownFamily, string(f))
	}
	p := e.parsers.Get(f)
	if p == nil {
		return nil, nil, fmt.Errorf("%w: no parser for %q", model.ErrUnknownFamily, string(f))
	}

	enc := opts.Encoding
	if enc == "" {
		enc = e.encoding
	}
	text, err := textnorm.Decode(raw, enc)
	if err != nil {
		return nil, nil, &report.ParseError{Family: f, Reason: err.Error()}
	}
	in, err := p.Parse(text)
	if err != nil {
		return nil, nil, err
	}
	if f.Quarterly() {
		warnQuarterOverride(log, in, opts)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	prior, ok, err := e.store.Get(entity, f)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s state: %w", f, err)
	}
	if !ok {
		prior = nil
	}
	next, err := consolidate.Merge(prior, in, consolidate.Options{
		Trimestre:       opts.Trimestre,
		Ano:             opts.Ano,
		BalanceteWindow: e.window,
		Classifier:      e.classifier,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := e.store.Set(entity, f, next); err != nil {
		return nil, nil, fmt.Errorf("saving %s state: %w", f, err)
	}
	return next, in, nil
}

// warnQuarterOverride flags an operator quarter that contradicts the one
// printed in the export. The override still wins.
func warnQuarterOverride(log *zap.Logger, in model.Report, opts ImportOptions) {
	if opts.Trimestre == 0 {
		return
	}
	var printed int
	switch r := in.(type) {
	case *model.CSLL:
		printed = r.TrimestreNumero
	case *model.IRPJ:
		printed = r.TrimestreNumero
	}
	if printed != 0 && printed != opts.Trimestre {
		log.Warn("trimestre override differs from export",
			zap.Int("trimestre_export", printed),
			zap.Int("trimestre_override", opts.Trimestre),
		)
	}
}

// periodOf names the period an import covered, for logs.
func periodOf(in model.Report, st model.State) string {
	switch r := in.(type) {
	case *model.Balancete:
		return r.Competencia.String()
	case *model.AnaliseHorizontal:
		return r.Competencia
	case *model.DREMensal:
		return r.Periodo
	case *model.ResumoAcumulador:
		return r.Competencia
	}
	switch s := st.(type) {
	case *model.CSLLState:
		if n := len(s.Trimestres); n > 0 {
			return s.Trimestres[n-1].Trimestre
		}
	case *model.IRPJState:
		if n := len(s.Trimestres); n > 0 {
			return s.Trimestres[n-1].Trimestre
		}
	}
	return ""
}

// GetConsolidated returns the stored state of (entityID, f), or nil when
// the family was never imported for that entity.
func (e *Engine) GetConsolidated(entityID string, f model.Family) (model.State, error) {
	entity, err := model.NormalizeEntityID(entityID)
	if err != nil {
		return nil, err
	}
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownFamily, string(f))
	}
	st, ok, err := e.store.Get(entity, f)
	if err != nil {
		return nil, fmt.Errorf("loading %s state: %w", f, err)
	}
	if !ok {
		return nil, nil
	}
	return st, nil
}

// Clear deletes the stored state of (entityID, f).
func (e *Engine) Clear(entityID string, f model.Family) error {
	entity, err := model.NormalizeEntityID(entityID)
	if err != nil {
		return err
	}
	if !f.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownFamily, string(f))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.Clear(entity, f); err != nil {
		return fmt.Errorf("clearing %s state: %w", f, err)
	}
	e.logger.Info("state cleared", zap.String("entity", entity), zap.String("family", string(f)))
	return nil
}

// Families lists the families holding state for entityID.
func (e *Engine) Families(entityID string) ([]model.Family, error) {
	entity, err := model.NormalizeEntityID(entityID)
	if err != nil {
		return nil, err
	}
	return e.store.Families(entity)
}

// IsInputError reports whether err was caused by the import itself, such
// as a bad file or a missing quarter, rather than by the store.
func IsInputError(err error) bool {
	return errors.Is(err, report.ErrParse) ||
		errors.Is(err, model.ErrUnknownFamily) ||
		errors.Is(err, model.ErrInvalidEntity) ||
		errors.Is(err, consolidate.ErrTrimestreRequired) ||
		errors.Is(err, consolidate.ErrMerge)
}
