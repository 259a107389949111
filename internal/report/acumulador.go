package report

import (
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

// ResumoAcumuladorParser parses the Resumo por Acumulador of one
// competência: an ENTRADAS and a SAÍDAS section of acumulador lines.
type ResumoAcumuladorParser struct{}

func (ResumoAcumuladorParser) Family() model.Family { return model.FamilyResumoAcumulador }

var acumuladorColumns = []column{
	{name: "codigo", keywords: []string{"CODIGO", "COD", "ACUMULADOR"}},
	{name: "descricao", keywords: []string{"DESCRICAO", "NOME"}},
	{name: "vlrContabil", keywords: []string{"VALOR CONTABIL", "VLR CONTABIL"}},
	{name: "baseCalculo", keywords: []string{"BASE CALCULO", "BASE DE CALCULO", "BASE"}, optional: true},
	{name: "valorImposto", keywords: []string{"VALOR IMPOSTO", "VLR IMPOSTO", "IMPOSTO"}, optional: true},
}

type acumuladorSection int

const (
	sectionNone acumuladorSection = iota
	sectionEntradas
	sectionSaidas
)

func sectionMarker(r row) acumuladorSection {
	if r.filled() > 1 {
		return sectionNone
	}
	k := textnorm.Key(r.first())
	switch {
	case keyHasPrefix(k, "ENTRADAS"):
		return sectionEntradas
	case keyHasPrefix(k, "SAIDAS"):
		return sectionSaidas
	}
	return sectionNone
}

// lineSet keeps acumulador lines in first-seen order, summing repeats of
// the same (codigo, descricao).
type lineSet struct {
	index map[string]int
	lines []model.AccumulatorLine
}

func newLineSet() *lineSet {
	return &lineSet{index: map[string]int{}, lines: []model.AccumulatorLine{}}
}

func (ls *lineSet) add(l model.AccumulatorLine) {
	i, ok := ls.index[l.Key()]
	if !ok {
		ls.index[l.Key()] = len(ls.lines)
		ls.lines = append(ls.lines, l)
		return
	}
	cur := &ls.lines[i]
	cur.VlrContabil = cur.VlrContabil.Add(l.VlrContabil)
	cur.BaseCalculo = cur.BaseCalculo.Add(l.BaseCalculo)
	cur.ValorImposto = cur.ValorImposto.Add(l.ValorImposto)
}

func (p ResumoAcumuladorParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}
	comp, err := s.competencia()
	if err != nil {
		return nil, err
	}

	entradas, saidas := newLineSet(), newLineSet()
	section := sectionNone
	var cols columns
	for _, r := range s.rows {
		if sec := sectionMarker(r); sec != sectionNone {
			section = sec
			continue
		}
		if r.isLabelRow() || r.isTotal() || r.filled() < 2 {
			continue
		}
		if c, ok := matchHeader(r, acumuladorColumns); ok {
			cols = c
			continue
		}
		if cols == nil {
			continue
		}
		codigo := r.cell(cols.idx("codigo"))
		if codigo == "" {
			continue
		}
		if section == sectionNone {
			return nil, s.errorf(r.line, "acumulador row outside ENTRADAS/SAÍDAS section")
		}

		l := model.AccumulatorLine{Codigo: codigo, Descricao: r.cell(cols.idx("descricao"))}
		if l.VlrContabil, err = s.amount(r, cols.idx("vlrContabil"), "valor contábil"); err != nil {
			return nil, err
		}
		if l.BaseCalculo, err = s.amount(r, cols.idx("baseCalculo"), "base de cálculo"); err != nil {
			return nil, err
		}
		if l.ValorImposto, err = s.amount(r, cols.idx("valorImposto"), "valor do imposto"); err != nil {
			return nil, err
		}
		if section == sectionEntradas {
			entradas.add(l)
		} else {
			saidas.add(l)
		}
	}
	if len(entradas.lines)+len(saidas.lines) == 0 {
		return nil, s.errorf(0, "no acumulador lines")
	}
	return &model.ResumoAcumulador{
		Competencia: comp.String(),
		Entradas:    entradas.lines,
		Saidas:      saidas.lines,
	}, nil
}
