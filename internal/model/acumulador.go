package model

import "github.com/shopspring/decimal"

// AccumulatorLine is one acumulador row of the Resumo por Acumulador.
type AccumulatorLine struct {
	Codigo       string          `json:"codigo"`
	Descricao    string          `json:"descricao"`
	VlrContabil  decimal.Decimal `json:"vlrContabil"`
	BaseCalculo  decimal.Decimal `json:"baseCalculo"`
	ValorImposto decimal.Decimal `json:"valorImposto"`
	Categoria    string          `json:"categoria,omitempty"`
}

// Key is the identity used when summing lines across competências.
func (l AccumulatorLine) Key() string {
	return l.Codigo + "\x00" + l.Descricao
}

// ResumoAcumulador is one competência of the Resumo por Acumulador.
type ResumoAcumulador struct {
	Competencia string            `json:"competencia"`
	Entradas    []AccumulatorLine `json:"entradas"`
	Saidas      []AccumulatorLine `json:"saidas"`
}

func (*ResumoAcumulador) Family() Family { return FamilyResumoAcumulador }

// Categorias are the category totals and the "cálculo 380" check.
type Categorias struct {
	CompraComercializacao  decimal.Decimal `json:"compraComercializacao"`
	CompraIndustrializacao decimal.Decimal `json:"compraIndustrializacao"`
	VendaMercadoria        decimal.Decimal `json:"vendaMercadoria"`
	VendaProduto           decimal.Decimal `json:"vendaProduto"`
	VendaExterior          decimal.Decimal `json:"vendaExterior"`
	Servicos               decimal.Decimal `json:"servicos"`
	TotalVendas380         decimal.Decimal `json:"totalVendas380"`
	Esperado380            decimal.Decimal `json:"esperado380"`
	Diferenca380           decimal.Decimal `json:"diferenca380"`
	Atende380              bool            `json:"atende380"`
}

// Detalhe380Mes is the cálculo 380 of one competência.
type Detalhe380Mes struct {
	Competencia string          `json:"competencia"`
	Compras     decimal.Decimal `json:"compras"`
	Vendas      decimal.Decimal `json:"vendas"`
	Esperado    decimal.Decimal `json:"esperado"`
	Atende      bool            `json:"atende"`
}

// Detalhes380 lists the lines behind the cálculo 380.
type Detalhes380 struct {
	Compras        []AccumulatorLine `json:"compras"`
	Vendas         []AccumulatorLine `json:"vendas"`
	PorCompetencia []Detalhe380Mes   `json:"porCompetencia"`
}

// ResumoAcumuladorState keeps the raw snapshot of every competência and
// the aggregates derived from all of them.
type ResumoAcumuladorState struct {
	Entradas              []AccumulatorLine           `json:"entradas"`
	Saidas                []AccumulatorLine           `json:"saidas"`
	Categorias            Categorias                  `json:"categorias"`
	Detalhes380           Detalhes380                 `json:"detalhes380"`
	CompetenciaReferencia string                      `json:"competenciaReferencia"`
	Competencias          []string                    `json:"competencias"`
	PorCompetencia        map[string]ResumoAcumulador `json:"porCompetencia"`
}

func (*ResumoAcumuladorState) Family() Family { return FamilyResumoAcumulador }
