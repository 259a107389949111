package report

import (
	"sort"
	"strings"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/period"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

// FGTSParser parses the FGTS deposit report.
type FGTSParser struct{}

func (FGTSParser) Family() model.Family { return model.FamilyFGTS }

var fgtsColumns = []column{
	{name: "competencia", keywords: []string{"COMPETENCIA", "MES/ANO", "PERIODO"}},
	{name: "tipo", keywords: []string{"TIPO", "MODALIDADE"}, optional: true},
	{name: "base", keywords: []string{"BASE DE CALCULO", "BASE", "REMUNERACAO"}},
	{name: "valor", keywords: []string{"VALOR FGTS", "FGTS", "VALOR", "DEPOSITO"}},
}

const defaultTipoFGTS = "Mensal"

type datedRow struct {
	c   period.Competencia
	idx int
}

// sortByCompetencia orders row indexes chronologically, keeping file
// order within a competência.
func sortByCompetencia(rows []datedRow) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].c.Before(rows[j].c) })
}

func (p FGTSParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}
	start, cols, err := s.header(fgtsColumns)
	if err != nil {
		return nil, err
	}

	var (
		registros []model.RegistroFGTS
		order     []datedRow
	)
	for _, r := range s.dataRows(start, fgtsColumns) {
		c, err := s.rowCompetencia(r, cols.idx("competencia"))
		if err != nil {
			return nil, err
		}
		reg := model.RegistroFGTS{Competencia: c.String(), Tipo: r.cell(cols.idx("tipo"))}
		if reg.Tipo == "" {
			reg.Tipo = defaultTipoFGTS
		}
		if reg.Base, err = s.amount(r, cols.idx("base"), "base"); err != nil {
			return nil, err
		}
		if reg.ValorFGTS, err = s.amount(r, cols.idx("valor"), "valor FGTS"); err != nil {
			return nil, err
		}
		order = append(order, datedRow{c: c, idx: len(registros)})
		registros = append(registros, reg)
	}
	if len(registros) == 0 {
		return nil, s.errorf(0, "no FGTS rows")
	}
	sortByCompetencia(order)

	f := &model.FGTS{
		Registros:            make([]model.RegistroFGTS, 0, len(registros)),
		TotaisPorTipo:        map[string]model.TotalFGTS{},
		TotaisPorCompetencia: map[string]model.TotalFGTS{},
	}
	for _, o := range order {
		reg := registros[o.idx]
		f.Registros = append(f.Registros, reg)
		f.TotalGeral = f.TotalGeral.Add(reg)
		f.TotaisPorTipo[reg.Tipo] = f.TotaisPorTipo[reg.Tipo].Add(reg)
		if _, seen := f.TotaisPorCompetencia[reg.Competencia]; !seen {
			f.Competencias = append(f.Competencias, reg.Competencia)
		}
		f.TotaisPorCompetencia[reg.Competencia] = f.TotaisPorCompetencia[reg.Competencia].Add(reg)
	}
	return f, nil
}

// INSSParser parses the INSS contribution report.
type INSSParser struct{}

func (INSSParser) Family() model.Family { return model.FamilyINSS }

var inssColumns = []column{
	{name: "competencia", keywords: []string{"COMPETENCIA", "MES/ANO", "PERIODO"}},
	{name: "tipo", keywords: []string{"TIPO"}, optional: true},
	{name: "base", keywords: []string{"BASE DE CALCULO", "BASE"}},
	{name: "valor", keywords: []string{"VALOR INSS", "INSS", "VALOR"}},
}

const defaultTipoINSS = "Original"

// retificador reports whether a tipo cell names a rectifying filing.
func retificador(tipo string) bool {
	return strings.HasPrefix(textnorm.Key(tipo), "RETIFIC")
}

func (p INSSParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}
	start, cols, err := s.header(inssColumns)
	if err != nil {
		return nil, err
	}

	var (
		rows  []model.CompetenciaINSS
		order []datedRow
	)
	for _, r := range s.dataRows(start, inssColumns) {
		c, err := s.rowCompetencia(r, cols.idx("competencia"))
		if err != nil {
			return nil, err
		}
		ci := model.CompetenciaINSS{Competencia: c.String(), Tipo: r.cell(cols.idx("tipo"))}
		if ci.Tipo == "" {
			ci.Tipo = defaultTipoINSS
		}
		if ci.BaseCalculo, err = s.amount(r, cols.idx("base"), "base de cálculo"); err != nil {
			return nil, err
		}
		if ci.ValorINSS, err = s.amount(r, cols.idx("valor"), "valor INSS"); err != nil {
			return nil, err
		}
		order = append(order, datedRow{c: c, idx: len(rows)})
		rows = append(rows, ci)
	}
	if len(rows) == 0 {
		return nil, s.errorf(0, "no INSS rows")
	}
	sortByCompetencia(order)

	out := &model.INSS{Competencias: make([]model.CompetenciaINSS, 0, len(rows))}
	for _, o := range order {
		ci := rows[o.idx]
		out.Competencias = append(out.Competencias, ci)
		out.TotalGeral = out.TotalGeral.Add(ci)
		if retificador(ci.Tipo) {
			out.TotaisPorTipo.Retificador = out.TotaisPorTipo.Retificador.Add(ci)
		} else {
			out.TotaisPorTipo.Original = out.TotaisPorTipo.Original.Add(ci)
		}
	}
	return out, nil
}
