package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

func TestFaturamentoParser(t *testing.T) {
	text := `Empresa: ACME COMERCIO LTDA
CNPJ: 12.345.678/0001-90
Mês/Ano;Saídas;Serviços;Outros;Total
02/2025;20.000,00;5.000,00;0,00;25.000,00
01/2025;10.000,00;2.000,00;500,00;12.500,00
TOTAL;30.000,00;7.000,00;500,00;37.500,00
`
	f := parseAs[*model.Faturamento](t, FaturamentoParser{}, text)

	assert.Equal(t, "ACME COMERCIO LTDA", f.EmpresaInfo.Nome)
	assert.Equal(t, "12.345.678/0001-90", f.EmpresaInfo.CNPJ)
	require.Len(t, f.Faturamento, 2)
	jan := f.Faturamento[0]
	assert.Equal(t, 1, jan.Mes)
	assert.Equal(t, 2025, jan.Ano)
	assertDec(t, "10000", jan.Saidas)
	assertDec(t, "2000", jan.Servicos)
	assertDec(t, "500", jan.Outros)
	assertDec(t, "12500", jan.Total)
	assert.Equal(t, 2, f.Faturamento[1].Mes)
}

func TestFaturamentoParser_FixedWidthWithoutTotal(t *testing.T) {
	text := "Competência    Vendas        Serviços\n" +
		"Janeiro/2025   1.000,00      250,00\n" +
		"Fevereiro/2025  2.000,00      0,00\n"
	f := parseAs[*model.Faturamento](t, FaturamentoParser{}, text)

	require.Len(t, f.Faturamento, 2)
	assertDec(t, "1250", f.Faturamento[0].Total)
	assert.True(t, f.EmpresaInfo.IsZero())
}

func TestFaturamentoParser_Errors(t *testing.T) {
	_, err := FaturamentoParser{}.Parse("Mês/Ano;Saídas;Serviços\n13/2025;1,00;1,00\n")
	pe := requireParseError(t, err)
	assert.Equal(t, 2, pe.Line)

	_, err = FaturamentoParser{}.Parse("Mês/Ano;Saídas;Serviços\n01/2025;abc;1,00\n")
	pe = requireParseError(t, err)
	assert.Equal(t, 2, pe.Line)

	_, err = FaturamentoParser{}.Parse("Mês/Ano;Saídas;Serviços\nTOTAL;1,00;1,00\n")
	requireParseError(t, err)
}

func TestDemonstrativoMensalParser(t *testing.T) {
	text := `Competência;Entradas;Saídas;Serviços
01/2025;5.000,00;10.000,00;1.000,00
12/2024;4.000,00;8.000,00;0,00
02/2025;6.000,00;11.000,00;2.000,00
`
	d := parseAs[*model.DemonstrativoMensal](t, DemonstrativoMensalParser{}, text)

	require.Len(t, d.Movimentacao, 3)
	assert.Equal(t, 12, d.Movimentacao[0].Mes)
	assert.Equal(t, 2024, d.Movimentacao[0].Ano)
	assert.Equal(t, []int{2024, 2025}, d.AnosUnicos)
	assertDec(t, "15000", d.TotaisGerais.Entradas)
	assertDec(t, "29000", d.TotaisGerais.Saidas)
	assertDec(t, "3000", d.TotaisGerais.Servicos)
	assertDec(t, "21000", d.TotaisPorAno["2025"].Saidas)
	assertDec(t, "8000", d.TotaisPorAno["2024"].Saidas)
}

func TestDemonstrativoMensalParser_NoRows(t *testing.T) {
	_, err := DemonstrativoMensalParser{}.Parse("Competência;Entradas;Saídas\n")
	requireParseError(t, err)
}
