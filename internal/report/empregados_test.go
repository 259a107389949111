package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

func TestEmpregadosParser(t *testing.T) {
	text := `Empresa: ACME
Código;Nome;Cargo;Admissão;Situação
1;ANA SOUZA;VENDEDOR;01/02/2020;Trabalhando
2;BRUNO LIMA;VENDEDOR;10/03/2021;Demitido
3;CARLA DIAS;GERENTE;05/05/2019;Afastado por doença
4;DIEGO ROCHA;GERENTE;01/01/2022;Férias
`
	e := parseAs[*model.Empregados](t, EmpregadosParser{}, text)

	assert.Equal(t, model.EstatisticasEmpregados{Total: 4, Ativos: 1, Demitidos: 1, Afastados: 2}, e.Estatisticas)
	assert.Equal(t, map[string]int{"VENDEDOR": 2, "GERENTE": 2}, e.EmpregadosPorCargo)
	require.Len(t, e.Empregados, 4)
	assert.Equal(t, "1", e.Empregados[0].Codigo)
	assert.Equal(t, "01/02/2020", e.Empregados[0].Admissao)
	assert.Equal(t, model.EmployeeAtivo, e.Empregados[0].Status)
}

func TestEmployeeStatus(t *testing.T) {
	tests := []struct {
		situacao string
		want     model.EmployeeStatus
	}{
		{"Trabalhando", model.EmployeeAtivo},
		{"", model.EmployeeAtivo},
		{"DEMITIDO", model.EmployeeDemitido},
		{"Rescisão contratual", model.EmployeeDemitido},
		{"Desligado", model.EmployeeDemitido},
		{"Licença maternidade", model.EmployeeAfastado},
		{"Auxílio doença", model.EmployeeAfastado},
	}
	for _, tt := range tests {
		t.Run(tt.situacao, func(t *testing.T) {
			assert.Equal(t, tt.want, employeeStatus(tt.situacao))
		})
	}
}

func TestSalarioBaseParser(t *testing.T) {
	text := `Nome;Cargo;Salário Base
ANA;VENDEDOR;2.000,00
BRUNO;VENDEDOR;2.500,00
CARLA;GERENTE;5.000,00
DIEGO;AUXILIAR;2.250,00
EVA;ANALISTA;2.250,00
`
	s := parseAs[*model.SalarioBase](t, SalarioBaseParser{}, text)

	assertDec(t, "14000", s.Estatisticas.TotalSalarios)
	assertDec(t, "2800", s.Estatisticas.SalarioMedioGeral)
	assert.Equal(t, 5, s.Estatisticas.TotalEmpregados)
	assert.Equal(t, 4, s.Estatisticas.QuantidadeCargos)

	var cargos []string
	for _, c := range s.CargosOrdenados {
		cargos = append(cargos, c.Cargo)
	}
	assert.Equal(t, []string{"GERENTE", "ANALISTA", "AUXILIAR", "VENDEDOR"}, cargos)
	assertDec(t, "2250", s.CargosOrdenados[3].SalarioMedio)
	assert.Equal(t, 2, s.CargosOrdenados[3].Quantidade)
}

func TestAverage_RoundsHalfUp(t *testing.T) {
	assertDec(t, "3.33", average(decimal.NewFromInt(10), 3))
	assertDec(t, "2.01", average(decimal.RequireFromString("4.01"), 2))
	assert.True(t, average(decimal.NewFromInt(10), 0).IsZero())
}

func TestFeriasParser(t *testing.T) {
	text := `Código;Nome;Período Aquisitivo;Dias Direito;Dias Programados;Dias Gozados;Situação
1;ANA;01/01/2024 a 31/12/2024;30;0;30;
2;BRUNO;01/01/2024 a 31/12/2024;30;15;0;
3;CARLA;01/01/2023 a 31/12/2023;30;0;0;Vencida
4;DIEGO;01/01/2024 a 31/12/2024;30;0;10;
`
	f := parseAs[*model.Ferias](t, FeriasParser{}, text)

	assert.Equal(t, model.EstatisticasFerias{
		TotalRegistros:       4,
		DiasTotalProgramados: 15,
		DiasTotalGozados:     40,
		DiasRestantes:        80,
	}, f.Estatisticas)
	assert.Equal(t, model.FeriasPorStatus{Programadas: 1, Gozadas: 1, Pendentes: 1, Vencidas: 1}, f.FeriasPorStatus)
	require.Len(t, f.Registros, 4)
	assert.Equal(t, model.VacationGozada, f.Registros[0].Status)
	assert.Equal(t, "01/01/2024 a 31/12/2024", f.Registros[0].PeriodoAquisitivo)
}

func TestFeriasParser_BadDays(t *testing.T) {
	_, err := FeriasParser{}.Parse("Nome;Direito;Programados;Gozados\nANA;trinta;0;0\n")
	pe := requireParseError(t, err)
	assert.Equal(t, 2, pe.Line)
}
