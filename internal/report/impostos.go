package report

import (
	"strings"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/period"
)

// ResumoImpostosParser parses the tax summary. One file may carry several
// competências, each introduced by its own "Competência:" header.
type ResumoImpostosParser struct{}

func (ResumoImpostosParser) Family() model.Family { return model.FamilyResumoImpostos }

var impostoColumns = []column{
	{name: "nome", keywords: []string{"IMPOSTO", "TRIBUTO"}},
	{name: "saldoCredorAnterior", keywords: []string{"SALDO CREDOR ANTERIOR", "SALDO ANTERIOR"}},
	{name: "debitos", keywords: []string{"DEBITOS", "DEBITO"}},
	{name: "creditos", keywords: []string{"CREDITOS", "CREDITO"}},
	{name: "impostoRecolher", keywords: []string{"IMPOSTO A RECOLHER", "A RECOLHER", "RECOLHER"}},
	{name: "saldoCredorFinal", keywords: []string{"SALDO CREDOR FINAL", "SALDO CREDOR", "SALDO FINAL"}},
}

func (p ResumoImpostosParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}

	var (
		current period.Competencia
		cols    columns
	)
	porMes := map[string]model.ImpostosMes{}
	for _, r := range s.rows {
		if r.isLabelRow() {
			for _, l := range r.labels() {
				if !l.is("COMPETENCIA", "PERIODO") {
					continue
				}
				c, ok := period.FindCompetencia(l.value)
				if !ok {
					return nil, s.errorf(l.line, "invalid competência %q", l.value)
				}
				current = c
			}
			continue
		}
		if c, ok := matchHeader(r, impostoColumns); ok {
			cols = c
			continue
		}
		if cols == nil || r.isTotal() || r.filled() < 2 {
			continue
		}
		nome := r.cell(cols.idx("nome"))
		if nome == "" {
			continue
		}
		if current.IsZero() {
			return nil, s.errorf(r.line, "tax row before any competência header")
		}

		imp := model.Imposto{Nome: nome}
		if imp.SaldoCredorAnterior, err = s.amount(r, cols.idx("saldoCredorAnterior"), "saldo credor anterior"); err != nil {
			return nil, err
		}
		if imp.Debitos, err = s.amount(r, cols.idx("debitos"), "débitos"); err != nil {
			return nil, err
		}
		if imp.Creditos, err = s.amount(r, cols.idx("creditos"), "créditos"); err != nil {
			return nil, err
		}
		if imp.ImpostoRecolher, err = s.amount(r, cols.idx("impostoRecolher"), "imposto a recolher"); err != nil {
			return nil, err
		}
		if imp.SaldoCredorFinal, err = s.amount(r, cols.idx("saldoCredorFinal"), "saldo credor final"); err != nil {
			return nil, err
		}

		key := current.String()
		mes := porMes[key]
		mes.Impostos = append(mes.Impostos, imp)
		porMes[key] = mes
	}
	if len(porMes) == 0 {
		return nil, s.errorf(0, "no tax rows")
	}
	return newResumoImpostos(porMes), nil
}

// newResumoImpostos derives per-tax totals and the sorted competência
// list from taxes keyed by "MM/YYYY".
func newResumoImpostos(porMes map[string]model.ImpostosMes) *model.ResumoImpostos {
	out := &model.ResumoImpostos{
		ImpostosPorMes:   make(map[string]model.ImpostosMes, len(porMes)),
		TotaisPorImposto: map[string]model.TotalImposto{},
	}
	keys := make([]string, 0, len(porMes))
	for k, mes := range porMes {
		keys = append(keys, k)
		out.ImpostosPorMes[k] = model.ImpostosMes{Impostos: append([]model.Imposto(nil), mes.Impostos...)}
		for _, imp := range mes.Impostos {
			nome := strings.TrimSpace(imp.Nome)
			t := out.TotaisPorImposto[nome]
			out.TotaisPorImposto[nome] = model.TotalImposto{
				Debitos:         t.Debitos.Add(imp.Debitos),
				Creditos:        t.Creditos.Add(imp.Creditos),
				ImpostoRecolher: t.ImpostoRecolher.Add(imp.ImpostoRecolher),
			}
		}
	}
	out.PeriodosImportados = period.SortKeys(keys)
	return out
}
