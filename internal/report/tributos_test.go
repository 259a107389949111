package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

const csllText = `Empresa: ACME LTDA
Período: 01/07/2025 a 30/09/2025
Descrição;Julho;Agosto;Setembro;Total
LUCRO LÍQUIDO ANTES DA CSLL;10.000,00;12.000,00;8.000,00;30.000,00
(-) COMPENSAÇÃO DE BASE NEGATIVA;;;;3.000,00
BASE DE CÁLCULO;;;;27.000,00
CSLL DEVIDA (9%);;;;2.430,00
CSLL A RECOLHER;;;;2.430,00
SALDO A COMPENSAR;;;;0,00
`

func TestCSLLParser(t *testing.T) {
	c := parseAs[*model.CSLL](t, CSLLParser{}, csllText)

	assert.Equal(t, 3, c.TrimestreNumero)
	assert.Equal(t, 2025, c.Ano)
	assert.Equal(t, "3º Trimestre/2025", c.Trimestre)
	assertDec(t, "30000", c.Dados.LucroLiquido)
	assertDec(t, "3000", c.Dados.Compensacao)
	assertDec(t, "27000", c.Dados.BaseCalculo)
	assertDec(t, "2430", c.Dados.CSLLDevida)
	assertDec(t, "2430", c.Dados.CSLLRecolher)
	assertDec(t, "0", c.Dados.ValorCompensarProximo)
}

func TestCSLLParser_Trimestre(t *testing.T) {
	body := "BASE DE CÁLCULO;1.000,00\nCSLL DEVIDA;90,00\n"
	tests := []struct {
		name   string
		header string
		numero int
		ano    int
	}{
		{"label", "Trimestre: 2º/2025\n", 2, 2025},
		{"title", "APURAÇÃO DA CSLL - 4º TRIMESTRE DE 2024\n", 4, 2024},
		{"label without year", "Trimestre: 1\nPeríodo: 01/01/2025 a 31/03/2025\n", 1, 2025},
		{"range across quarters", "Período: 01/01/2025 a 30/06/2025\n", 0, 0},
		{"month columns", "Competência: 06/2025\nDescrição;Abril;Maio;Junho;Total\n", 2, 2025},
		{"none", "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := parseAs[*model.CSLL](t, CSLLParser{}, tt.header+body)
			assert.Equal(t, tt.numero, c.TrimestreNumero)
			assert.Equal(t, tt.ano, c.Ano)
		})
	}
}

func TestCSLLParser_MissingDevida(t *testing.T) {
	_, err := CSLLParser{}.Parse("BASE DE CÁLCULO;1.000,00\n")
	requireParseError(t, err)
}

func TestCSLLParser_QuarterTotalColumn(t *testing.T) {
	text := `Período: 01/07/2025 a 30/09/2025
Descrição;Julho;Agosto;Setembro;Total
BASE DE CÁLCULO;1.000,00;1.000,00;1.000,00;3.000,00
CSLL DEVIDA;90,00;90,00;90,00;270,00
CSLL A RECOLHER;90,00;90,00;90,00;
`
	c := parseAs[*model.CSLL](t, CSLLParser{}, text)
	assertDec(t, "3000", c.Dados.BaseCalculo)
	assertDec(t, "270", c.Dados.CSLLDevida)
	assertDec(t, "0", c.Dados.CSLLRecolher, "blank total is zero")
}

func TestCSLLParser_NonNumericCells(t *testing.T) {
	header := "Período: 01/07/2025 a 30/09/2025\nDescrição;Julho;Agosto;Setembro;Total\n"
	tests := []struct {
		name string
		body string
		line int
	}{
		{"total", "BASE DE CÁLCULO;1.000,00;1.000,00;1.000,00;ABC\nCSLL DEVIDA;90,00;90,00;90,00;270,00\n", 3},
		{"month", "BASE DE CÁLCULO;1.000,00;XYZ;1.000,00;3.000,00\nCSLL DEVIDA;90,00;90,00;90,00;270,00\n", 3},
		{"optional line", "BASE DE CÁLCULO;;;;3.000,00\nCSLL DEVIDA;;;;270,00\nSALDO A COMPENSAR;;;;N/D\n", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CSLLParser{}.Parse(header + tt.body)
			pe := requireParseError(t, err)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestIRPJParser_NonNumericValue(t *testing.T) {
	_, err := IRPJParser{}.Parse("Trimestre: 3º/2025\nBASE DE CÁLCULO;100.000,00\nIRPJ DEVIDO;quinze mil\n")
	requireParseError(t, err)
}

func TestIRPJParser(t *testing.T) {
	text := `Trimestre: 3º Trimestre/2025
Descrição;Valor
BASE DE CÁLCULO;100.000,00
IRPJ DEVIDO (15%);15.000,00
ADICIONAL DE IR (10%);4.000,00
IRPJ A RECOLHER;19.000,00
`
	i := parseAs[*model.IRPJ](t, IRPJParser{}, text)

	assert.Equal(t, 3, i.TrimestreNumero)
	assert.Equal(t, 2025, i.Ano)
	assertDec(t, "100000", i.Dados.BaseCalculo)
	assertDec(t, "15000", i.Dados.IRPJDevido)
	assertDec(t, "4000", i.Dados.AdicionalIR)
	assertDec(t, "19000", i.Dados.IRPJRecolher)
}

func TestIRPJParser_MissingDevido(t *testing.T) {
	_, err := IRPJParser{}.Parse("BASE DE CÁLCULO;1.000,00\nIRPJ A RECOLHER;1,00\n")
	requireParseError(t, err)
}
