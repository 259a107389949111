// Package consolidate merges a freshly parsed report into the running
// state of its family. Every merge is pure: prior and incoming are never
// modified and the result shares no slice or map with either.
package consolidate

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/classify"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

// DefaultBalanceteWindow is how many trial balances are retained.
const DefaultBalanceteWindow = 12

var (
	// ErrMerge is matched by every *MergeError.
	ErrMerge = errors.New("merge error")
	// ErrTrimestreRequired is returned for a quarterly import whose
	// quarter is neither given nor printed in the export.
	ErrTrimestreRequired = errors.New("trimestre required")
)

// MergeError reports a report/state combination that cannot be merged.
type MergeError struct {
	Family model.Family
	Reason string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merging %s: %s", e.Family, e.Reason)
}

func (e *MergeError) Unwrap() error { return ErrMerge }

// Options tune a merge.
type Options struct {
	// Trimestre (1..4) overrides the quarter of a CSLL/IRPJ export.
	Trimestre int
	// Ano overrides the year of a CSLL/IRPJ quarter.
	Ano int
	// BalanceteWindow defaults to DefaultBalanceteWindow.
	BalanceteWindow int
	// Classifier defaults to classify.Default().
	Classifier *classify.Classifier
}

// Merge folds in into prior, which is nil on the first import of a family.
func Merge(prior model.State, in model.Report, opts Options) (model.State, error) {
	if in == nil {
		return nil, &MergeError{Reason: "nil report"}
	}
	f := in.Family()
	if prior != nil && prior.Family() != f {
		return nil, &MergeError{Family: f, Reason: fmt.Sprintf("prior state belongs to %s", prior.Family())}
	}

	switch r := in.(type) {
	case *model.Balancete:
		p, err := priorAs[*model.BalanceteState](prior, f)
		if err != nil {
			return nil, err
		}
		return Balancete(p, r, opts.BalanceteWindow), nil
	case *model.AnaliseHorizontal:
		p, err := priorAs[*model.AnaliseHorizontal](prior, f)
		if err != nil {
			return nil, err
		}
		return AnaliseHorizontal(p, r), nil
	case *model.CSLL:
		p, err := priorAs[*model.CSLLState](prior, f)
		if err != nil {
			return nil, err
		}
		return CSLL(p, r, opts)
	case *model.IRPJ:
		p, err := priorAs[*model.IRPJState](prior, f)
		if err != nil {
			return nil, err
		}
		return IRPJ(p, r, opts)
	case *model.Faturamento:
		p, err := priorAs[*model.FaturamentoState](prior, f)
		if err != nil {
			return nil, err
		}
		return Faturamento(p, r), nil
	case *model.ResumoAcumulador:
		p, err := priorAs[*model.ResumoAcumuladorState](prior, f)
		if err != nil {
			return nil, err
		}
		return ResumoAcumulador(p, r, opts.Classifier), nil
	case *model.DREComparativa, *model.DREMensal, *model.DemonstrativoMensal,
		*model.ResumoImpostos, *model.FGTS, *model.INSS,
		*model.Empregados, *model.SalarioBase, *model.Ferias:
		return Replace(in)
	}
	return nil, &MergeError{Family: f, Reason: fmt.Sprintf("unsupported report type %T", in)}
}

func priorAs[T model.State](prior model.State, f model.Family) (T, error) {
	var zero T
	if prior == nil {
		return zero, nil
	}
	p, ok := prior.(T)
	if !ok {
		return zero, &MergeError{Family: f, Reason: fmt.Sprintf("unexpected prior state type %T", prior)}
	}
	return p, nil
}

// Replace returns a deep copy of a replace-whole report as the new state.
func Replace(in model.Report) (model.State, error) {
	next, err := model.NewState(in.Family())
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(in)
	if err != nil {
		return nil, &MergeError{Family: in.Family(), Reason: err.Error()}
	}
	if err := json.Unmarshal(data, next); err != nil {
		return nil, &MergeError{Family: in.Family(), Reason: err.Error()}
	}
	return next, nil
}
