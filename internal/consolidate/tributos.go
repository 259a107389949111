package consolidate

import (
	"fmt"
	"sort"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/period"
)

// ResolveTrimestre picks the quarter an apuração is stored under: the
// override in opts when set, otherwise the quarter printed in the export.
func ResolveTrimestre(f model.Family, numero, ano int, opts Options) (period.Trimestre, error) {
	if opts.Trimestre != 0 {
		if opts.Trimestre < 1 || opts.Trimestre > 4 {
			return period.Trimestre{}, &MergeError{Family: f, Reason: fmt.Sprintf("invalid trimestre %d", opts.Trimestre)}
		}
		numero = opts.Trimestre
	}
	if opts.Ano != 0 {
		ano = opts.Ano
	}
	if numero == 0 {
		return period.Trimestre{}, fmt.Errorf("%s: %w", f, ErrTrimestreRequired)
	}
	t, err := period.NewTrimestre(numero, ano)
	if err != nil {
		return period.Trimestre{}, &MergeError{Family: f, Reason: err.Error()}
	}
	return t, nil
}

func trimestreOf(numero, ano int) period.Trimestre {
	return period.Trimestre{Numero: numero, Ano: ano}
}

// replaces reports whether an import for t supersedes the stored quarter
// q. A quarter whose year is unknown matches on the number alone.
func replaces(t, q period.Trimestre) bool {
	if t.Numero != q.Numero {
		return false
	}
	return t.Ano == q.Ano || t.Ano == 0 || q.Ano == 0
}

// inheritYear gives t the latest known year among the stored quarters it
// replaces.
func inheritYear(t period.Trimestre, stored []period.Trimestre) period.Trimestre {
	if t.Ano != 0 {
		return t
	}
	for _, q := range stored {
		if replaces(t, q) && q.Ano > t.Ano {
			t.Ano = q.Ano
		}
	}
	return t
}

// CSLL stores the quarter, replacing any entry for the same quarter
// number and year, and recomputes the totals. When either year is
// unknown the quarter number alone decides.
func CSLL(prior *model.CSLLState, in *model.CSLL, opts Options) (*model.CSLLState, error) {
	t, err := ResolveTrimestre(model.FamilyCSLL, in.TrimestreNumero, in.Ano, opts)
	if err != nil {
		return nil, err
	}
	next := &model.CSLLState{}
	if prior != nil {
		stored := make([]period.Trimestre, len(prior.Trimestres))
		for i, q := range prior.Trimestres {
			stored[i] = trimestreOf(q.TrimestreNumero, q.Ano)
		}
		t = inheritYear(t, stored)
		for i, q := range prior.Trimestres {
			if replaces(t, stored[i]) {
				continue
			}
			next.Trimestres = append(next.Trimestres, q)
		}
	}
	next.Trimestres = append(next.Trimestres, model.CSLL{
		Trimestre:       t.String(),
		TrimestreNumero: t.Numero,
		Ano:             t.Ano,
		Dados:           in.Dados,
	})
	sort.SliceStable(next.Trimestres, func(i, j int) bool {
		a, b := next.Trimestres[i], next.Trimestres[j]
		return period.CompareTrimestre(trimestreOf(a.TrimestreNumero, a.Ano), trimestreOf(b.TrimestreNumero, b.Ano)) < 0
	})
	for _, q := range next.Trimestres {
		next.Totais = next.Totais.Add(q.Dados)
	}
	return next, nil
}

// IRPJ mirrors CSLL for the IRPJ apuração.
func IRPJ(prior *model.IRPJState, in *model.IRPJ, opts Options) (*model.IRPJState, error) {
	t, err := ResolveTrimestre(model.FamilyIRPJ, in.TrimestreNumero, in.Ano, opts)
	if err != nil {
		return nil, err
	}
	next := &model.IRPJState{}
	if prior != nil {
		stored := make([]period.Trimestre, len(prior.Trimestres))
		for i, q := range prior.Trimestres {
			stored[i] = trimestreOf(q.TrimestreNumero, q.Ano)
		}
		t = inheritYear(t, stored)
		for i, q := range prior.Trimestres {
			if replaces(t, stored[i]) {
				continue
			}
			next.Trimestres = append(next.Trimestres, q)
		}
	}
	next.Trimestres = append(next.Trimestres, model.IRPJ{
		Trimestre:       t.String(),
		TrimestreNumero: t.Numero,
		Ano:             t.Ano,
		Dados:           in.Dados,
	})
	sort.SliceStable(next.Trimestres, func(i, j int) bool {
		a, b := next.Trimestres[i], next.Trimestres[j]
		return period.CompareTrimestre(trimestreOf(a.TrimestreNumero, a.Ano), trimestreOf(b.TrimestreNumero, b.Ano)) < 0
	})
	for _, q := range next.Trimestres {
		next.Totais = next.Totais.Add(q.Dados)
	}
	return next, nil
}
