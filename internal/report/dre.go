package report

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/period"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

// Income statement lines, in alias priority order.
var (
	receitaLines          = []string{"RECEITA BRUTA", "RECEITA OPERACIONAL BRUTA", "RECEITAS"}
	despesaLines          = []string{"DESPESAS OPERACIONAIS", "DESPESAS"}
	lucroBrutoLines       = []string{"LUCRO BRUTO", "RESULTADO BRUTO"}
	resultadoLiquidoLines = []string{"RESULTADO LIQUIDO", "LUCRO LIQUIDO", "LUCRO/PREJUIZO LIQUIDO", "RESULTADO DO EXERCICIO"}
)

// AnaliseHorizontalParser parses the month-over-month income statement.
type AnaliseHorizontalParser struct{}

func (AnaliseHorizontalParser) Family() model.Family { return model.FamilyAnaliseHorizontal }

type competenciaColumn struct {
	idx int
	c   period.Competencia
}

// competenciaColumns returns the cells of r that name a competência.
func competenciaColumns(r row) []competenciaColumn {
	var out []competenciaColumn
	for i, cell := range r.cells {
		if i == 0 || cell == "" {
			continue
		}
		if c, err := period.ParseCompetencia(cell); err == nil {
			out = append(out, competenciaColumn{idx: i, c: c})
		}
	}
	return out
}

func (p AnaliseHorizontalParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}

	var comps []competenciaColumn
	for _, r := range s.rows {
		if r.isLabelRow() {
			continue
		}
		if cc := competenciaColumns(r); len(cc) > 0 {
			comps = cc
			break
		}
	}
	if len(comps) == 0 {
		// Single-month layout: "Competência: 01/2025" and a value column.
		c, err := s.competencia()
		if err != nil {
			return nil, err
		}
		comps = []competenciaColumn{{idx: -1, c: c}}
	}

	lines := s.valueLines()
	receita, ok := findLine(lines, receitaLines...)
	if !ok {
		return nil, s.errorf(0, "receita bruta line not found")
	}
	despesa, ok := findLine(lines, despesaLines...)
	if !ok {
		return nil, s.errorf(0, "despesas line not found")
	}
	lucroBruto, hasLucroBruto := findLine(lines, lucroBrutoLines...)
	resultado, hasResultado := findLine(lines, resultadoLiquidoLines...)

	dados := make(map[string]model.CompetenciaAH, len(comps))
	for _, cc := range comps {
		d := model.CompetenciaAH{MesNome: cc.c.MesNome(), Mes: cc.c.Mes, Ano: cc.c.Ano}
		if d.Receita, err = s.lineValue(receita, cc.idx); err != nil {
			return nil, err
		}
		if d.Despesa, err = s.lineValue(despesa, cc.idx); err != nil {
			return nil, err
		}
		d.Despesa = d.Despesa.Abs()
		if hasLucroBruto {
			if d.LucroBruto, err = s.lineValue(lucroBruto, cc.idx); err != nil {
				return nil, err
			}
		}
		if hasResultado {
			if d.ResultadoLiquido, err = s.lineValue(resultado, cc.idx); err != nil {
				return nil, err
			}
		}
		dados[cc.c.String()] = d
	}
	return model.NewAnaliseHorizontal(dados), nil
}

// lineValue reads the amount of l in column col, or its first amount when
// col is negative.
func (s *sheet) lineValue(l valueLine, col int) (decimal.Decimal, error) {
	if col < 0 {
		if err := s.check(l); err != nil {
			return decimal.Zero, err
		}
		return l.values[0], nil
	}
	return s.amount(l.row, col, l.label)
}

// DREComparativaParser parses the two-year income statement comparison.
type DREComparativaParser struct{}

func (DREComparativaParser) Family() model.Family { return model.FamilyDREComparativa }

var yearCell = regexp.MustCompile(`^(?:EXERCICIO |ANO )?((?:19|20)\d{2})$`)

type yearColumn struct {
	idx int
	ano int
}

func yearColumns(r row) []yearColumn {
	var out []yearColumn
	for i, cell := range r.cells {
		if i == 0 {
			continue
		}
		if m := yearCell.FindStringSubmatch(textnorm.Key(cell)); m != nil {
			ano, _ := strconv.Atoi(m[1])
			out = append(out, yearColumn{idx: i, ano: ano})
		}
	}
	return out
}

func (p DREComparativaParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}

	var atual, anterior yearColumn
	found := false
	for _, r := range s.rows {
		years := yearColumns(r)
		if len(years) < 2 {
			continue
		}
		for _, y := range years {
			switch {
			case y.ano > atual.ano:
				anterior, atual = atual, y
			case y.ano < atual.ano && y.ano > anterior.ano:
				anterior = y
			}
		}
		found = anterior.ano != 0
		break
	}
	if !found {
		return nil, s.errorf(0, "header with two year columns not found")
	}

	lines := s.valueLines()
	receita, ok := findLine(lines, receitaLines...)
	if !ok {
		return nil, s.errorf(0, "receita bruta line not found")
	}
	d := &model.DREComparativa{Anos: model.AnosDRE{Atual: atual.ano, Anterior: anterior.ano}}
	if d.Dados.AnoAtual, err = s.linhasDRE(lines, receita, atual.idx); err != nil {
		return nil, err
	}
	if d.Dados.AnoAnterior, err = s.linhasDRE(lines, receita, anterior.idx); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *sheet) linhasDRE(lines []valueLine, receita valueLine, col int) (model.LinhasDRE, error) {
	var (
		out model.LinhasDRE
		err error
	)
	if out.ReceitaBruta, err = s.lineValue(receita, col); err != nil {
		return out, err
	}
	targets := []struct {
		aliases []string
		dst     *decimal.Decimal
	}{
		{despesaLines, &out.DespesasOperacionais},
		{lucroBrutoLines, &out.LucroBruto},
		{resultadoLiquidoLines, &out.ResultadoLiquido},
	}
	for _, t := range targets {
		l, ok := findLine(lines, t.aliases...)
		if !ok {
			continue
		}
		if *t.dst, err = s.lineValue(l, col); err != nil {
			return out, err
		}
	}
	return out, nil
}

// DREMensalParser parses a single-period income statement.
type DREMensalParser struct{}

func (DREMensalParser) Family() model.Family { return model.FamilyDREMensal }

// dreMensalKeys maps known statement lines to stable keys. Other lines are
// keyed by their folded description.
var dreMensalKeys = []struct {
	key     string
	aliases []string
}{
	{"receitaBruta", []string{"RECEITA BRUTA", "RECEITA OPERACIONAL BRUTA"}},
	{"deducoes", []string{"DEDUCOES"}},
	{"receitaLiquida", []string{"RECEITA LIQUIDA", "RECEITA OPERACIONAL LIQUIDA"}},
	{"custos", []string{"CUSTOS", "CUSTO"}},
	{"lucroBruto", lucroBrutoLines},
	{"despesasOperacionais", []string{"DESPESAS OPERACIONAIS"}},
	{"resultadoOperacional", []string{"RESULTADO OPERACIONAL", "LUCRO OPERACIONAL"}},
	{"resultadoAntesImpostos", []string{"RESULTADO ANTES", "LUCRO ANTES"}},
	{"provisaoIRCSLL", []string{"PROVISAO", "IR E CSLL", "IRPJ E CSLL"}},
	{"resultadoLiquido", resultadoLiquidoLines},
}

func dreMensalKey(lineKey string) string {
	for _, k := range dreMensalKeys {
		for _, a := range k.aliases {
			if keyHasPrefix(lineKey, textnorm.Key(a)) {
				return k.key
			}
		}
	}
	return lineKey
}

func (p DREMensalParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}
	l, ok := s.label("PERIODO", "COMPETENCIA")
	if !ok || l.value == "" {
		return nil, s.errorf(0, "período header not found")
	}

	d := &model.DREMensal{Periodo: l.value, Dados: map[string]decimal.Decimal{}}
	for _, line := range s.valueLines() {
		key := dreMensalKey(line.key)
		known := key != line.key
		if len(line.values) == 0 && !known {
			// Column headings such as "Descrição;Valor".
			continue
		}
		if err := s.check(line); err != nil {
			return nil, err
		}
		v := line.last()
		d.Linhas = append(d.Linhas, model.LinhaDRE{Descricao: line.label, Valor: v})
		if _, dup := d.Dados[key]; !dup {
			d.Dados[key] = v
		}
	}
	if len(d.Linhas) == 0 {
		return nil, s.errorf(0, "no statement lines")
	}
	return d, nil
}
