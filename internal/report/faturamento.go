package report

import (
	"sort"
	"strconv"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/period"
)

var competenciaColumnKeywords = []string{"MES/ANO", "COMPETENCIA", "PERIODO", "MES"}

// FaturamentoParser parses the Demonstrativo Financeiro / Faturamento.
type FaturamentoParser struct{}

func (FaturamentoParser) Family() model.Family { return model.FamilyFaturamento }

var faturamentoColumns = []column{
	{name: "competencia", keywords: competenciaColumnKeywords},
	{name: "saidas", keywords: []string{"SAIDAS", "VENDAS"}},
	{name: "servicos", keywords: []string{"SERVICOS"}},
	{name: "outros", keywords: []string{"OUTROS"}, optional: true},
	{name: "total", keywords: []string{"TOTAL"}, optional: true},
}

func (p FaturamentoParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}
	start, cols, err := s.header(faturamentoColumns)
	if err != nil {
		return nil, err
	}

	byComp := map[period.Competencia]model.FaturamentoMes{}
	for _, r := range s.dataRows(start, faturamentoColumns) {
		c, err := s.rowCompetencia(r, cols.idx("competencia"))
		if err != nil {
			return nil, err
		}
		m := model.FaturamentoMes{Mes: c.Mes, Ano: c.Ano}
		if m.Saidas, err = s.amount(r, cols.idx("saidas"), "saídas"); err != nil {
			return nil, err
		}
		if m.Servicos, err = s.amount(r, cols.idx("servicos"), "serviços"); err != nil {
			return nil, err
		}
		if m.Outros, err = s.amount(r, cols.idx("outros"), "outros"); err != nil {
			return nil, err
		}
		if cols.has("total") {
			if m.Total, err = s.amount(r, cols.idx("total"), "total"); err != nil {
				return nil, err
			}
		} else {
			m.Total = model.Sum(m.Saidas, m.Servicos, m.Outros)
		}

		if prev, ok := byComp[c]; ok {
			m = addFaturamento(prev, m)
		}
		byComp[c] = m
	}
	if len(byComp) == 0 {
		return nil, s.errorf(0, "no billing rows")
	}

	return &model.Faturamento{
		Faturamento: sortFaturamento(byComp),
		EmpresaInfo: s.empresa(),
	}, nil
}

func addFaturamento(a, b model.FaturamentoMes) model.FaturamentoMes {
	return model.FaturamentoMes{
		Mes:      a.Mes,
		Ano:      a.Ano,
		Saidas:   a.Saidas.Add(b.Saidas),
		Servicos: a.Servicos.Add(b.Servicos),
		Outros:   a.Outros.Add(b.Outros),
		Total:    a.Total.Add(b.Total),
	}
}

// sortFaturamento flattens months keyed by competência, oldest first.
func sortFaturamento(byComp map[period.Competencia]model.FaturamentoMes) []model.FaturamentoMes {
	keys := make([]period.Competencia, 0, len(byComp))
	for c := range byComp {
		keys = append(keys, c)
	}
	period.Sort(keys)
	out := make([]model.FaturamentoMes, 0, len(keys))
	for _, c := range keys {
		out = append(out, byComp[c])
	}
	return out
}

// DemonstrativoMensalParser parses the monthly entradas/saídas summary.
type DemonstrativoMensalParser struct{}

func (DemonstrativoMensalParser) Family() model.Family { return model.FamilyDemonstrativoMensal }

var demonstrativoColumns = []column{
	{name: "competencia", keywords: competenciaColumnKeywords},
	{name: "entradas", keywords: []string{"ENTRADAS", "COMPRAS"}},
	{name: "saidas", keywords: []string{"SAIDAS", "VENDAS"}},
	{name: "servicos", keywords: []string{"SERVICOS"}, optional: true},
}

func (p DemonstrativoMensalParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}
	start, cols, err := s.header(demonstrativoColumns)
	if err != nil {
		return nil, err
	}

	byComp := map[period.Competencia]model.MovimentacaoMes{}
	var order []period.Competencia
	for _, r := range s.dataRows(start, demonstrativoColumns) {
		c, err := s.rowCompetencia(r, cols.idx("competencia"))
		if err != nil {
			return nil, err
		}
		m := model.MovimentacaoMes{Mes: c.Mes, Ano: c.Ano}
		if m.Entradas, err = s.amount(r, cols.idx("entradas"), "entradas"); err != nil {
			return nil, err
		}
		if m.Saidas, err = s.amount(r, cols.idx("saidas"), "saídas"); err != nil {
			return nil, err
		}
		if m.Servicos, err = s.amount(r, cols.idx("servicos"), "serviços"); err != nil {
			return nil, err
		}
		prev, ok := byComp[c]
		if !ok {
			order = append(order, c)
		}
		byComp[c] = model.MovimentacaoMes{
			Mes:      c.Mes,
			Ano:      c.Ano,
			Entradas: prev.Entradas.Add(m.Entradas),
			Saidas:   prev.Saidas.Add(m.Saidas),
			Servicos: prev.Servicos.Add(m.Servicos),
		}
	}
	if len(order) == 0 {
		return nil, s.errorf(0, "no movement rows")
	}
	period.Sort(order)

	d := &model.DemonstrativoMensal{
		Movimentacao: make([]model.MovimentacaoMes, 0, len(order)),
		TotaisPorAno: map[string]model.TotaisMovimentacao{},
	}
	for _, c := range order {
		m := byComp[c]
		d.Movimentacao = append(d.Movimentacao, m)
		d.TotaisGerais = d.TotaisGerais.Add(m)
		key := strconv.Itoa(m.Ano)
		if _, seen := d.TotaisPorAno[key]; !seen {
			d.AnosUnicos = append(d.AnosUnicos, m.Ano)
		}
		d.TotaisPorAno[key] = d.TotaisPorAno[key].Add(m)
	}
	sort.Ints(d.AnosUnicos)
	return d, nil
}
