package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

const semCargo = "Sem cargo"

// EmpregadosParser parses the Relação de Empregados.
type EmpregadosParser struct{}

func (EmpregadosParser) Family() model.Family { return model.FamilyEmpregados }

var empregadosColumns = []column{
	{name: "codigo", keywords: []string{"CODIGO", "COD", "MATRICULA"}, optional: true},
	{name: "nome", keywords: []string{"NOME", "EMPREGADO"}},
	{name: "cargo", keywords: []string{"CARGO", "FUNCAO"}},
	{name: "admissao", keywords: []string{"ADMISSAO", "DATA ADMISSAO"}, optional: true},
	{name: "situacao", keywords: []string{"SITUACAO", "STATUS"}},
}

// employeeStatus folds a free-text situação. Unrecognised text (such as
// "Trabalhando") counts as active.
func employeeStatus(situacao string) model.EmployeeStatus {
	switch {
	case textnorm.ContainsAny(situacao, "DEMITID", "RESCIS", "DESLIGAD"):
		return model.EmployeeDemitido
	case textnorm.ContainsAny(situacao, "AFAST", "LICENC", "AUXILIO", "FERIAS"):
		return model.EmployeeAfastado
	}
	return model.EmployeeAtivo
}

func cargoOf(r row, cols columns) string {
	if c := r.cell(cols.idx("cargo")); c != "" {
		return c
	}
	return semCargo
}

func (p EmpregadosParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}
	start, cols, err := s.header(empregadosColumns)
	if err != nil {
		return nil, err
	}

	out := &model.Empregados{EmpregadosPorCargo: map[string]int{}}
	for _, r := range s.dataRows(start, empregadosColumns) {
		nome := r.cell(cols.idx("nome"))
		if nome == "" {
			continue
		}
		e := model.Empregado{
			Codigo:   r.cell(cols.idx("codigo")),
			Nome:     nome,
			Cargo:    cargoOf(r, cols),
			Admissao: r.cell(cols.idx("admissao")),
			Situacao: r.cell(cols.idx("situacao")),
		}
		e.Status = employeeStatus(e.Situacao)

		out.Empregados = append(out.Empregados, e)
		out.EmpregadosPorCargo[e.Cargo]++
		out.Estatisticas.Total++
		switch e.Status {
		case model.EmployeeAtivo:
			out.Estatisticas.Ativos++
		case model.EmployeeDemitido:
			out.Estatisticas.Demitidos++
		case model.EmployeeAfastado:
			out.Estatisticas.Afastados++
		}
	}
	if out.Estatisticas.Total == 0 {
		return nil, s.errorf(0, "no employee rows")
	}
	return out, nil
}

// SalarioBaseParser parses the base salary listing.
type SalarioBaseParser struct{}

func (SalarioBaseParser) Family() model.Family { return model.FamilySalarioBase }

var salarioColumns = []column{
	{name: "nome", keywords: []string{"NOME", "EMPREGADO"}},
	{name: "cargo", keywords: []string{"CARGO", "FUNCAO"}},
	{name: "salario", keywords: []string{"SALARIO BASE", "SALARIO", "VALOR"}},
}

func (p SalarioBaseParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}
	start, cols, err := s.header(salarioColumns)
	if err != nil {
		return nil, err
	}

	type cargoTotal struct {
		cargo string
		total decimal.Decimal
		n     int
	}
	byCargo := map[string]*cargoTotal{}
	var (
		order []string
		total decimal.Decimal
		count int
	)
	for _, r := range s.dataRows(start, salarioColumns) {
		if r.cell(cols.idx("nome")) == "" {
			continue
		}
		salario, err := s.amount(r, cols.idx("salario"), "salário")
		if err != nil {
			return nil, err
		}
		cargo := cargoOf(r, cols)
		key := textnorm.Fold(cargo)
		ct, ok := byCargo[key]
		if !ok {
			ct = &cargoTotal{cargo: cargo}
			byCargo[key] = ct
			order = append(order, key)
		}
		ct.total = ct.total.Add(salario)
		ct.n++
		total = total.Add(salario)
		count++
	}
	if count == 0 {
		return nil, s.errorf(0, "no salary rows")
	}

	out := &model.SalarioBase{
		Estatisticas: model.EstatisticasSalario{
			TotalSalarios:     total,
			SalarioMedioGeral: average(total, count),
			TotalEmpregados:   count,
			QuantidadeCargos:  len(order),
		},
		CargosOrdenados: make([]model.CargoSalario, 0, len(order)),
	}
	for _, key := range order {
		ct := byCargo[key]
		out.CargosOrdenados = append(out.CargosOrdenados, model.CargoSalario{
			Cargo:        ct.cargo,
			SalarioMedio: average(ct.total, ct.n),
			Quantidade:   ct.n,
		})
	}
	sort.SliceStable(out.CargosOrdenados, func(i, j int) bool {
		a, b := out.CargosOrdenados[i], out.CargosOrdenados[j]
		if c := a.SalarioMedio.Cmp(b.SalarioMedio); c != 0 {
			return c > 0
		}
		return a.Cargo < b.Cargo
	})
	return out, nil
}

// average rounds half away from zero to cents.
func average(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n))).Round(2)
}

// FeriasParser parses the Programação de Férias.
type FeriasParser struct{}

func (FeriasParser) Family() model.Family { return model.FamilyFerias }

var feriasColumns = []column{
	{name: "codigo", keywords: []string{"CODIGO", "COD", "MATRICULA"}, optional: true},
	{name: "nome", keywords: []string{"NOME", "EMPREGADO"}},
	{name: "aquisitivo", keywords: []string{"PERIODO AQUISITIVO", "AQUISITIVO"}, optional: true},
	{name: "direito", keywords: []string{"DIAS DE DIREITO", "DIAS DIREITO", "DIREITO"}},
	{name: "programados", keywords: []string{"DIAS PROGRAMADOS", "PROGRAMADOS", "PROGRAMADO"}},
	{name: "gozados", keywords: []string{"DIAS GOZADOS", "GOZADOS", "GOZADO"}},
	{name: "situacao", keywords: []string{"SITUACAO", "STATUS"}, optional: true},
}

// vacationStatus prefers the printed situação and otherwise derives the
// status from the day counts.
func vacationStatus(situacao string, reg model.RegistroFerias) model.VacationStatus {
	if strings.TrimSpace(situacao) != "" {
		switch {
		case textnorm.ContainsAny(situacao, "VENCID"):
			return model.VacationVencida
		case textnorm.ContainsAny(situacao, "GOZAD"):
			return model.VacationGozada
		case textnorm.ContainsAny(situacao, "PROGRAMAD"):
			return model.VacationProgramada
		}
		return model.VacationPendente
	}
	switch {
	case reg.DiasDireito > 0 && reg.DiasGozados >= reg.DiasDireito:
		return model.VacationGozada
	case reg.DiasProgramados > 0:
		return model.VacationProgramada
	}
	return model.VacationPendente
}

func (p FeriasParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}
	start, cols, err := s.header(feriasColumns)
	if err != nil {
		return nil, err
	}

	out := &model.Ferias{}
	for _, r := range s.dataRows(start, feriasColumns) {
		nome := r.cell(cols.idx("nome"))
		if nome == "" {
			continue
		}
		reg := model.RegistroFerias{
			Codigo:            r.cell(cols.idx("codigo")),
			Nome:              nome,
			PeriodoAquisitivo: r.cell(cols.idx("aquisitivo")),
		}
		if reg.DiasDireito, err = s.count(r, cols.idx("direito"), "dias de direito"); err != nil {
			return nil, err
		}
		if reg.DiasProgramados, err = s.count(r, cols.idx("programados"), "dias programados"); err != nil {
			return nil, err
		}
		if reg.DiasGozados, err = s.count(r, cols.idx("gozados"), "dias gozados"); err != nil {
			return nil, err
		}
		reg.Status = vacationStatus(r.cell(cols.idx("situacao")), reg)

		out.Registros = append(out.Registros, reg)
		out.Estatisticas.TotalRegistros++
		out.Estatisticas.DiasTotalProgramados += reg.DiasProgramados
		out.Estatisticas.DiasTotalGozados += reg.DiasGozados
		if rest := reg.DiasDireito - reg.DiasGozados; rest > 0 {
			out.Estatisticas.DiasRestantes += rest
		}
		switch reg.Status {
		case model.VacationProgramada:
			out.FeriasPorStatus.Programadas++
		case model.VacationGozada:
			out.FeriasPorStatus.Gozadas++
		case model.VacationPendente:
			out.FeriasPorStatus.Pendentes++
		case model.VacationVencida:
			out.FeriasPorStatus.Vencidas++
		}
	}
	if out.Estatisticas.TotalRegistros == 0 {
		return nil, s.errorf(0, "no vacation rows")
	}
	return out, nil
}
