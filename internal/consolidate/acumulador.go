package consolidate

import (
	"github.com/shopspring/decimal"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/classify"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/period"
)

// Fator380 is the minimum ratio of sales to purchases for resale checked
// by the cálculo 380.
var Fator380 = decimal.RequireFromString("1.25")

// ResumoAcumulador replaces the snapshot of the incoming competência and
// re-derives every aggregate from all stored snapshots, so each
// competência is counted once however often it is imported.
func ResumoAcumulador(prior *model.ResumoAcumuladorState, in *model.ResumoAcumulador, c *classify.Classifier) *model.ResumoAcumuladorState {
	if c == nil {
		c = classify.Default()
	}
	snapshots := map[string]model.ResumoAcumulador{}
	if prior != nil {
		for k, v := range prior.PorCompetencia {
			snapshots[k] = cloneResumo(v)
		}
	}
	snapshots[in.Competencia] = cloneResumo(*in)
	return deriveAcumulador(snapshots, c)
}

func cloneResumo(r model.ResumoAcumulador) model.ResumoAcumulador {
	return model.ResumoAcumulador{
		Competencia: r.Competencia,
		Entradas:    append([]model.AccumulatorLine{}, r.Entradas...),
		Saidas:      append([]model.AccumulatorLine{}, r.Saidas...),
	}
}

// lineSum sums lines by (codigo, descricao) in first-seen order.
type lineSum struct {
	index map[string]int
	lines []model.AccumulatorLine
}

func newLineSum() *lineSum {
	return &lineSum{index: map[string]int{}, lines: []model.AccumulatorLine{}}
}

func (s *lineSum) add(l model.AccumulatorLine) {
	i, ok := s.index[l.Key()]
	if !ok {
		s.index[l.Key()] = len(s.lines)
		s.lines = append(s.lines, l)
		return
	}
	cur := &s.lines[i]
	cur.VlrContabil = cur.VlrContabil.Add(l.VlrContabil)
	cur.BaseCalculo = cur.BaseCalculo.Add(l.BaseCalculo)
	cur.ValorImposto = cur.ValorImposto.Add(l.ValorImposto)
}

// tally accumulates category totals for one set of lines.
type tally struct {
	model.Categorias
}

func (t *tally) add(cat classify.Category, v decimal.Decimal) {
	switch cat {
	case classify.CompraComercializacao:
		t.CompraComercializacao = t.CompraComercializacao.Add(v)
	case classify.CompraIndustrializacao:
		t.CompraIndustrializacao = t.CompraIndustrializacao.Add(v)
	case classify.VendaMercadoria:
		t.VendaMercadoria = t.VendaMercadoria.Add(v)
	case classify.VendaProduto:
		t.VendaProduto = t.VendaProduto.Add(v)
	case classify.VendaExterior:
		t.VendaExterior = t.VendaExterior.Add(v)
	case classify.Servicos:
		t.Servicos = t.Servicos.Add(v)
	}
}

// finish computes the cálculo 380 fields.
func (t *tally) finish() model.Categorias {
	c := t.Categorias
	c.TotalVendas380 = model.Sum(c.VendaMercadoria, c.VendaProduto, c.VendaExterior)
	c.Esperado380 = c.CompraComercializacao.Mul(Fator380)
	c.Diferenca380 = c.TotalVendas380.Sub(c.Esperado380)
	c.Atende380 = c.TotalVendas380.GreaterThanOrEqual(c.Esperado380)
	return c
}

func isVenda(cat classify.Category) bool {
	return cat == classify.VendaMercadoria || cat == classify.VendaProduto || cat == classify.VendaExterior
}

func deriveAcumulador(snapshots map[string]model.ResumoAcumulador, c *classify.Classifier) *model.ResumoAcumuladorState {
	keys := make([]string, 0, len(snapshots))
	for k := range snapshots {
		keys = append(keys, k)
	}
	keys = period.SortKeys(keys)

	entradas, saidas := newLineSum(), newLineSum()
	next := &model.ResumoAcumuladorState{
		Competencias:   keys,
		PorCompetencia: snapshots,
		Detalhes380: model.Detalhes380{
			Compras:        []model.AccumulatorLine{},
			Vendas:         []model.AccumulatorLine{},
			PorCompetencia: make([]model.Detalhe380Mes, 0, len(keys)),
		},
	}
	for _, k := range keys {
		snap := snapshots[k]
		var mes tally
		for _, l := range snap.Entradas {
			entradas.add(l)
			if cat, ok := c.Classify(l.Descricao); ok {
				mes.add(cat, l.VlrContabil)
			}
		}
		for _, l := range snap.Saidas {
			saidas.add(l)
			if cat, ok := c.Classify(l.Descricao); ok {
				mes.add(cat, l.VlrContabil)
			}
		}
		m := mes.finish()
		next.Detalhes380.PorCompetencia = append(next.Detalhes380.PorCompetencia, model.Detalhe380Mes{
			Competencia: k,
			Compras:     m.CompraComercializacao,
			Vendas:      m.TotalVendas380,
			Esperado:    m.Esperado380,
			Atende:      m.Atende380,
		})
	}

	var total tally
	for _, side := range []*lineSum{entradas, saidas} {
		for i := range side.lines {
			l := &side.lines[i]
			cat, ok := c.Classify(l.Descricao)
			if !ok {
				continue
			}
			l.Categoria = string(cat)
			total.add(cat, l.VlrContabil)
			switch {
			case cat == classify.CompraComercializacao:
				next.Detalhes380.Compras = append(next.Detalhes380.Compras, *l)
			case isVenda(cat):
				next.Detalhes380.Vendas = append(next.Detalhes380.Vendas, *l)
			}
		}
	}
	next.Entradas = entradas.lines
	next.Saidas = saidas.lines
	next.Categorias = total.finish()
	if len(keys) > 0 {
		next.CompetenciaReferencia = keys[len(keys)-1]
	}
	return next
}
