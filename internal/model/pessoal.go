package model

import "github.com/shopspring/decimal"

// TotalFGTS sums FGTS deposits.
type TotalFGTS struct {
	ValorFGTS decimal.Decimal `json:"valorFGTS"`
	Base      decimal.Decimal `json:"base"`
}

// Add accumulates r into t.
func (t TotalFGTS) Add(r RegistroFGTS) TotalFGTS {
	return TotalFGTS{ValorFGTS: t.ValorFGTS.Add(r.ValorFGTS), Base: t.Base.Add(r.Base)}
}

// RegistroFGTS is one row of the FGTS report.
type RegistroFGTS struct {
	Competencia string          `json:"competencia"`
	Tipo        string          `json:"tipo"`
	Base        decimal.Decimal `json:"base"`
	ValorFGTS   decimal.Decimal `json:"valorFGTS"`
}

// FGTS is the FGTS report.
type FGTS struct {
	TotalGeral           TotalFGTS            `json:"totalGeral"`
	Competencias         []string             `json:"competencias"`
	Registros            []RegistroFGTS       `json:"registros"`
	TotaisPorTipo        map[string]TotalFGTS `json:"totaisPorTipo"`
	TotaisPorCompetencia map[string]TotalFGTS `json:"totaisPorCompetencia"`
}

func (*FGTS) Family() Family { return FamilyFGTS }

// TotalINSS sums INSS contributions.
type TotalINSS struct {
	ValorINSS   decimal.Decimal `json:"valorINSS"`
	BaseCalculo decimal.Decimal `json:"baseCalculo"`
}

// Add accumulates c into t.
func (t TotalINSS) Add(c CompetenciaINSS) TotalINSS {
	return TotalINSS{ValorINSS: t.ValorINSS.Add(c.ValorINSS), BaseCalculo: t.BaseCalculo.Add(c.BaseCalculo)}
}

// CompetenciaINSS is one row of the INSS report.
type CompetenciaINSS struct {
	Competencia string          `json:"competencia"`
	Tipo        string          `json:"tipo"`
	BaseCalculo decimal.Decimal `json:"baseCalculo"`
	ValorINSS   decimal.Decimal `json:"valorINSS"`
}

// INSSPorTipo splits totals between original and rectifying filings.
type INSSPorTipo struct {
	Original    TotalINSS `json:"original"`
	Retificador TotalINSS `json:"retificador"`
}

// INSS is the INSS report.
type INSS struct {
	TotalGeral    TotalINSS         `json:"totalGeral"`
	Competencias  []CompetenciaINSS `json:"competencias"`
	TotaisPorTipo INSSPorTipo       `json:"totaisPorTipo"`
}

func (*INSS) Family() Family { return FamilyINSS }

// EmployeeStatus is the folded situação of an employee.
type EmployeeStatus string

const (
	EmployeeAtivo    EmployeeStatus = "ativo"
	EmployeeDemitido EmployeeStatus = "demitido"
	EmployeeAfastado EmployeeStatus = "afastado"
)

// Empregado is one row of the Relação de Empregados.
type Empregado struct {
	Codigo   string         `json:"codigo,omitempty"`
	Nome     string         `json:"nome"`
	Cargo    string         `json:"cargo"`
	Admissao string         `json:"admissao,omitempty"`
	Situacao string         `json:"situacao"`
	Status   EmployeeStatus `json:"status"`
}

// EstatisticasEmpregados counts employees by status.
type EstatisticasEmpregados struct {
	Total     int `json:"total"`
	Ativos    int `json:"ativos"`
	Demitidos int `json:"demitidos"`
	Afastados int `json:"afastados"`
}

// Empregados is the employee roster.
type Empregados struct {
	Estatisticas       EstatisticasEmpregados `json:"estatisticas"`
	EmpregadosPorCargo map[string]int         `json:"empregadosPorCargo"`
	Empregados         []Empregado            `json:"empregados"`
}

func (*Empregados) Family() Family { return FamilyEmpregados }

// EstatisticasSalario summarises base salaries.
type EstatisticasSalario struct {
	TotalSalarios     decimal.Decimal `json:"totalSalarios"`
	SalarioMedioGeral decimal.Decimal `json:"salarioMedioGeral"`
	TotalEmpregados   int             `json:"totalEmpregados"`
	QuantidadeCargos  int             `json:"quantidadeCargos"`
}

// CargoSalario is the average salary of one role.
type CargoSalario struct {
	Cargo        string          `json:"cargo"`
	SalarioMedio decimal.Decimal `json:"salarioMedio"`
	Quantidade   int             `json:"quantidade"`
}

// SalarioBase is the base salary report.
type SalarioBase struct {
	Estatisticas    EstatisticasSalario `json:"estatisticas"`
	CargosOrdenados []CargoSalario      `json:"cargosOrdenados"`
}

func (*SalarioBase) Family() Family { return FamilySalarioBase }

// VacationStatus is the folded status of a vacation entry.
type VacationStatus string

const (
	VacationProgramada VacationStatus = "programada"
	VacationGozada     VacationStatus = "gozada"
	VacationPendente   VacationStatus = "pendente"
	VacationVencida    VacationStatus = "vencida"
)

// RegistroFerias is one row of the Programação de Férias.
type RegistroFerias struct {
	Codigo            string         `json:"codigo,omitempty"`
	Nome              string         `json:"nome"`
	PeriodoAquisitivo string         `json:"periodoAquisitivo,omitempty"`
	DiasDireito       int            `json:"diasDireito"`
	DiasProgramados   int            `json:"diasProgramados"`
	DiasGozados       int            `json:"diasGozados"`
	Status            VacationStatus `json:"status"`
}

// EstatisticasFerias sums vacation days.
type EstatisticasFerias struct {
	TotalRegistros       int `json:"totalRegistros"`
	DiasTotalProgramados int `json:"diasTotalProgramados"`
	DiasTotalGozados     int `json:"diasTotalGozados"`
	DiasRestantes        int `json:"diasRestantes"`
}

// FeriasPorStatus counts entries by status.
type FeriasPorStatus struct {
	Programadas int `json:"programadas"`
	Gozadas     int `json:"gozadas"`
	Pendentes   int `json:"pendentes"`
	Vencidas    int `json:"vencidas"`
}

// Ferias is the vacation schedule.
type Ferias struct {
	Estatisticas    EstatisticasFerias `json:"estatisticas"`
	FeriasPorStatus FeriasPorStatus    `json:"feriasPorStatus"`
	Registros       []RegistroFerias   `json:"registros"`
}

func (*Ferias) Family() Family { return FamilyFerias }
