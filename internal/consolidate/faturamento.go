package consolidate

import (
	"sort"
	"strconv"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/period"
)

// Faturamento adds every incoming month onto the stored month of the same
// competência. Importing the same file twice therefore doubles it; callers
// clear the family before re-importing a corrected export.
func Faturamento(prior *model.FaturamentoState, in *model.Faturamento) *model.FaturamentoState {
	byComp := map[period.Competencia]model.FaturamentoMes{}
	var info model.EmpresaInfo
	if prior != nil {
		for _, m := range prior.Faturamento {
			byComp[period.Competencia{Mes: m.Mes, Ano: m.Ano}] = m
		}
		info = prior.EmpresaInfo
	}
	for _, m := range in.Faturamento {
		c := period.Competencia{Mes: m.Mes, Ano: m.Ano}
		if cur, ok := byComp[c]; ok {
			m = model.FaturamentoMes{
				Mes:      m.Mes,
				Ano:      m.Ano,
				Saidas:   cur.Saidas.Add(m.Saidas),
				Servicos: cur.Servicos.Add(m.Servicos),
				Outros:   cur.Outros.Add(m.Outros),
				Total:    cur.Total.Add(m.Total),
			}
		}
		byComp[c] = m
	}
	if !in.EmpresaInfo.IsZero() {
		info = in.EmpresaInfo
	}

	keys := make([]period.Competencia, 0, len(byComp))
	for c := range byComp {
		keys = append(keys, c)
	}
	period.Sort(keys)

	next := &model.FaturamentoState{
		Faturamento: make([]model.FaturamentoMes, 0, len(keys)),
		EmpresaInfo: info,
		Anos:        []int{},
		PorAno:      map[string]model.TotaisFaturamento{},
	}
	for _, c := range keys {
		m := byComp[c]
		next.Faturamento = append(next.Faturamento, m)
		next.Totais = next.Totais.Add(m)
		ano := strconv.Itoa(m.Ano)
		if _, seen := next.PorAno[ano]; !seen {
			next.Anos = append(next.Anos, m.Ano)
		}
		next.PorAno[ano] = next.PorAno[ano].Add(m)
	}
	sort.Ints(next.Anos)
	return next
}
