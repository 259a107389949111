package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

const analiseHorizontalText = `Empresa: ACME
Descrição;01/2025;AH%;02/2025;AH%
RECEITA BRUTA;1.000,00;;1.200,00;20,00
(-) DEDUÇÕES DA RECEITA BRUTA;100,00;;120,00;20,00
LUCRO BRUTO;400,00;;500,00;25,00
DESPESAS OPERACIONAIS;(600,00);;(700,00);16,67
RESULTADO LÍQUIDO;300,00;;350,00;16,67
`

func TestAnaliseHorizontalParser(t *testing.T) {
	a := parseAs[*model.AnaliseHorizontal](t, AnaliseHorizontalParser{}, analiseHorizontalText)

	assert.Equal(t, "02/2025", a.Competencia)
	assert.Equal(t, []string{"01/2025", "02/2025"}, a.Competencias)
	assert.Equal(t, []string{"Jan/25", "Fev/25"}, a.Meses)

	jan := a.DadosPorCompetencia["01/2025"]
	assert.Equal(t, "Jan", jan.MesNome)
	assert.Equal(t, 2025, jan.Ano)
	assertDec(t, "1000", jan.Receita)
	assertDec(t, "600", jan.Despesa)
	assertDec(t, "400", jan.LucroBruto)
	assertDec(t, "300", jan.ResultadoLiquido)

	assertDec(t, "2200", a.Totais.TotalReceitas)
	assertDec(t, "1300", a.Totais.TotalDespesas)
	assertDec(t, "900", a.Totais.LucroLiquido)
}

func TestAnaliseHorizontalParser_SingleMonth(t *testing.T) {
	text := "Competência: 03/2025\nDescrição;Valor\nRECEITA BRUTA;1.500,00\nDESPESAS;-800,00\n"
	a := parseAs[*model.AnaliseHorizontal](t, AnaliseHorizontalParser{}, text)

	assert.Equal(t, "03/2025", a.Competencia)
	assert.Equal(t, []string{"Mar/25"}, a.Meses)
	assertDec(t, "1500", a.DadosPorCompetencia["03/2025"].Receita)
	assertDec(t, "800", a.DadosPorCompetencia["03/2025"].Despesa)
}

func TestAnaliseHorizontalParser_MissingDespesa(t *testing.T) {
	_, err := AnaliseHorizontalParser{}.Parse("Descrição;01/2025\nRECEITA BRUTA;1,00\n")
	requireParseError(t, err)
}

func TestAnaliseHorizontalParser_NonNumericLine(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"optional line", "Descrição;01/2025;02/2025\nRECEITA BRUTA;1.000,00;1.200,00\nLUCRO BRUTO;N/D;N/D\nDESPESAS;600,00;700,00\n"},
		{"required line", "Descrição;01/2025\nRECEITA BRUTA;mil\nDESPESAS;600,00\n"},
		{"single month", "Competência: 03/2025\nDescrição;Valor\nRECEITA BRUTA;1.500,00\nDESPESAS;a apurar\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AnaliseHorizontalParser{}.Parse(tt.text)
			requireParseError(t, err)
		})
	}
}

func TestDREComparativaParser(t *testing.T) {
	text := `Descrição;2024;2025
RECEITA BRUTA;900.000,00;1.000.000,00
DESPESAS OPERACIONAIS;300.000,00;350.000,00
LUCRO BRUTO;500.000,00;600.000,00
LUCRO LÍQUIDO;150.000,00;200.000,00
`
	d := parseAs[*model.DREComparativa](t, DREComparativaParser{}, text)

	assert.Equal(t, model.AnosDRE{Atual: 2025, Anterior: 2024}, d.Anos)
	assertDec(t, "1000000", d.Dados.AnoAtual.ReceitaBruta)
	assertDec(t, "350000", d.Dados.AnoAtual.DespesasOperacionais)
	assertDec(t, "600000", d.Dados.AnoAtual.LucroBruto)
	assertDec(t, "200000", d.Dados.AnoAtual.ResultadoLiquido)
	assertDec(t, "900000", d.Dados.AnoAnterior.ReceitaBruta)
	assertDec(t, "150000", d.Dados.AnoAnterior.ResultadoLiquido)
}

func TestDREComparativaParser_OneYear(t *testing.T) {
	_, err := DREComparativaParser{}.Parse("Descrição;2025\nRECEITA BRUTA;1,00\n")
	requireParseError(t, err)
}

func TestDREMensalParser(t *testing.T) {
	text := `Período: 01/01/2025 a 31/01/2025
Descrição;Valor
RECEITA BRUTA;10.000,00
(-) DEDUÇÕES;1.000,00
RECEITA LÍQUIDA;9.000,00
OUTRAS RECEITAS;500,00
RESULTADO LÍQUIDO DO EXERCÍCIO;2.000,00
`
	d := parseAs[*model.DREMensal](t, DREMensalParser{}, text)

	assert.Equal(t, "01/01/2025 a 31/01/2025", d.Periodo)
	require.Len(t, d.Linhas, 5)
	assert.Equal(t, "(-) DEDUÇÕES", d.Linhas[1].Descricao)
	assertDec(t, "10000", d.Dados["receitaBruta"])
	assertDec(t, "1000", d.Dados["deducoes"])
	assertDec(t, "9000", d.Dados["receitaLiquida"])
	assertDec(t, "500", d.Dados["OUTRAS RECEITAS"])
	assertDec(t, "2000", d.Dados["resultadoLiquido"])
}

func TestDREMensalParser_DescriptionWithColon(t *testing.T) {
	text := "Período: 01/2025\nDescrição;Valor;AV%\nRECEITA BRUTA;10.000,00;100,0%\nReceita: vendas a prazo;4.000,00;40,0%\n"
	d := parseAs[*model.DREMensal](t, DREMensalParser{}, text)

	require.Len(t, d.Linhas, 2)
	assert.Equal(t, "Receita: vendas a prazo", d.Linhas[1].Descricao)
	assertDec(t, "4000", d.Linhas[1].Valor)
}

func TestDREMensalParser_Errors(t *testing.T) {
	_, err := DREMensalParser{}.Parse("Descrição;Valor\nRECEITA BRUTA;1,00\n")
	requireParseError(t, err)

	_, err = DREMensalParser{}.Parse("Período: 01/2025\nDescrição;Valor\n")
	requireParseError(t, err)

	_, err = DREMensalParser{}.Parse("Período: 01/2025\nDescrição;Valor\nRECEITA BRUTA;1,00\nLUCRO BRUTO;N/D\n")
	pe := requireParseError(t, err)
	assert.Equal(t, 4, pe.Line)
}
