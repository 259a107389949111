package report

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/period"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

// trimestreValue matches the value of a "Trimestre:" label: "3º/2025",
// "3", "3 DE 2025".
var trimestreValue = regexp.MustCompile(`^([1-4])(?:\s*O)?(?:\s*(?:/|DE)?\s*(\d{4}))?$`)

// trimestre infers the quarter an apuração covers. The zero value means
// the export does not say.
func (s *sheet) trimestre() period.Trimestre {
	if l, ok := s.label("TRIMESTRE"); ok {
		if m := trimestreValue.FindStringSubmatch(textnorm.Key(l.value)); m != nil {
			n, _ := strconv.Atoi(m[1])
			ano, _ := strconv.Atoi(m[2])
			if t, err := period.NewTrimestre(n, ano); err == nil {
				return s.withYear(t)
			}
		}
	}
	for _, r := range s.rows {
		if !strings.Contains(textnorm.Key(r.raw), "TRIMESTRE") {
			continue
		}
		if t, ok := period.ParseTrimestre(r.raw); ok {
			return s.withYear(t)
		}
	}
	if l, ok := s.label("PERIODO"); ok {
		if from, to, ok := period.FindRange(l.value); ok {
			if t, ok := period.TrimestreFromRange(from, to); ok {
				return t
			}
		}
	}
	if t, ok := period.TrimestreFromMeses(s.monthColumns(), 0); ok {
		return s.withYear(t)
	}
	return period.Trimestre{}
}

// monthColumns returns the months named by the first heading row that
// names any: "Descrição;Julho;Agosto;Setembro;Total".
func (s *sheet) monthColumns() []int {
	for _, r := range s.rows {
		if r.isLabelRow() {
			continue
		}
		var meses []int
		for _, c := range r.cells[1:] {
			if m, ok := period.ParseMes(c); ok {
				meses = append(meses, m)
			}
		}
		if len(meses) > 0 {
			return meses
		}
	}
	return nil
}

// withYear fills a missing quarter year from the período header.
func (s *sheet) withYear(t period.Trimestre) period.Trimestre {
	if t.Ano != 0 {
		return t
	}
	if l, ok := s.label("PERIODO", "COMPETENCIA"); ok {
		if c, ok := period.FindCompetencia(l.value); ok {
			t.Ano = c.Ano
		}
	}
	return t
}

// apuracao reads quarter computations: a label followed by month columns
// and a total. The quarter value is the cell under the "Total" heading,
// or the last amount on the row when the export has no such heading. The
// first malformed line is kept in err.
type apuracao struct {
	s     *sheet
	lines []valueLine
	total int
	err   error
}

func newApuracao(s *sheet) *apuracao {
	return &apuracao{s: s, lines: s.valueLines(), total: totalColumn(s)}
}

// totalColumn returns the index of the "Total" heading, or -1.
func totalColumn(s *sheet) int {
	for _, r := range s.rows {
		if r.isLabelRow() || r.isTotal() {
			continue
		}
		for i, c := range r.cells {
			if i > 0 && keyHasPrefix(textnorm.Key(c), "TOTAL") {
				return i
			}
		}
	}
	return -1
}

func (a *apuracao) value(aliases ...string) (decimal.Decimal, bool) {
	l, ok := findLine(a.lines, aliases...)
	if !ok {
		return decimal.Zero, false
	}
	var (
		v   decimal.Decimal
		err error
	)
	switch {
	case l.invalid != "":
		err = a.s.check(l)
	case a.total >= 0:
		v, err = a.s.amount(l.row, a.total, l.label)
	default:
		err = a.s.check(l)
		if err == nil {
			v = l.last()
		}
	}
	if err != nil {
		if a.err == nil {
			a.err = err
		}
		return decimal.Zero, true
	}
	return v, true
}

func (a *apuracao) required(what string, aliases ...string) decimal.Decimal {
	v, ok := a.value(aliases...)
	if !ok && a.err == nil {
		a.err = a.s.errorf(0, "%s line not found", what)
	}
	return v
}

func (a *apuracao) optional(aliases ...string) decimal.Decimal {
	v, _ := a.value(aliases...)
	return v
}

var (
	baseCalculoLines  = []string{"BASE DE CALCULO", "BASE CALCULO"}
	aRecolherFallback = []string{"VALOR A RECOLHER", "A RECOLHER"}
)

// CSLLParser parses the quarterly CSLL computation.
type CSLLParser struct{}

func (CSLLParser) Family() model.Family { return model.FamilyCSLL }

func (p CSLLParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}
	a := newApuracao(s)

	var d model.DadosCSLL
	d.BaseCalculo = a.required("base de cálculo", baseCalculoLines...)
	d.CSLLDevida = a.required("CSLL devida", "CSLL DEVIDA", "CONTRIBUICAO SOCIAL DEVIDA", "CSLL APURADA")
	d.LucroLiquido = a.optional("LUCRO LIQUIDO", "RESULTADO LIQUIDO", "RESULTADO DO PERIODO")
	d.Compensacao = a.optional("COMPENSACAO")
	d.CSLLRecolher = a.optional(append([]string{"CSLL A RECOLHER", "CONTRIBUICAO SOCIAL A RECOLHER"}, aRecolherFallback...)...)
	d.ValorCompensarProximo = a.optional("SALDO A COMPENSAR", "VALOR A COMPENSAR", "BASE NEGATIVA A COMPENSAR", "COMPENSAR PROXIMO")
	if a.err != nil {
		return nil, a.err
	}

	t := s.trimestre()
	return &model.CSLL{Trimestre: t.String(), TrimestreNumero: t.Numero, Ano: t.Ano, Dados: d}, nil
}

// IRPJParser parses the quarterly IRPJ computation.
type IRPJParser struct{}

func (IRPJParser) Family() model.Family { return model.FamilyIRPJ }

func (p IRPJParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}
	a := newApuracao(s)

	var d model.DadosIRPJ
	d.BaseCalculo = a.required("base de cálculo", baseCalculoLines...)
	d.IRPJDevido = a.required("IRPJ devido", "IRPJ DEVIDO", "IMPOSTO DE RENDA DEVIDO", "IRPJ 15%", "IMPOSTO DE RENDA 15%")
	d.AdicionalIR = a.optional("ADICIONAL")
	d.IRPJRecolher = a.optional(append([]string{"IRPJ A RECOLHER", "IMPOSTO DE RENDA A RECOLHER"}, aRecolherFallback...)...)
	if a.err != nil {
		return nil, a.err
	}

	t := s.trimestre()
	return &model.IRPJ{Trimestre: t.String(), TrimestreNumero: t.Numero, Ano: t.Ano, Dados: d}, nil
}
