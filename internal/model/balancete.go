package model

import (
	"github.com/shopspring/decimal"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/period"
)

// EmpresaInfo is the company header printed on most exports.
type EmpresaInfo struct {
	Nome string `json:"nome,omitempty"`
	CNPJ string `json:"cnpj,omitempty"`
}

// IsZero reports whether no header was found.
func (e EmpresaInfo) IsZero() bool {
	return e.Nome == "" && e.CNPJ == ""
}

// Saldo wraps a closing balance.
type Saldo struct {
	SaldoAtual decimal.Decimal `json:"saldoAtual"`
}

// ContaBalancete is one account row of a trial balance. Credit balances
// are negative.
type ContaBalancete struct {
	Classificacao string          `json:"classificacao"`
	Descricao     string          `json:"descricao"`
	SaldoAtual    decimal.Decimal `json:"saldoAtual"`
	Natureza      string          `json:"natureza,omitempty"`
}

// Balancete is a parsed monthly trial balance.
type Balancete struct {
	Competencia           period.Competencia `json:"competencia"`
	Empresa               EmpresaInfo        `json:"empresa"`
	BancosMovimento       Saldo              `json:"bancosMovimento"`
	AplicacoesFinanceiras Saldo              `json:"aplicacoesFinanceiras"`
	Estoque               Saldo              `json:"estoque"`
	Contas                []ContaBalancete   `json:"contas"`
}

func (*Balancete) Family() Family { return FamilyBalancete }

// BalanceteConsolidado is the series view of the retained window, oldest
// first.
type BalanceteConsolidado struct {
	Competencias          []string          `json:"competencias"`
	Meses                 []string          `json:"meses"`
	BancosMovimento       []decimal.Decimal `json:"bancosMovimento"`
	AplicacoesFinanceiras []decimal.Decimal `json:"aplicacoesFinanceiras"`
	Estoque               []decimal.Decimal `json:"estoque"`
	Disponibilidade       []decimal.Decimal `json:"disponibilidade"`
	UltimaCompetencia     string            `json:"ultimaCompetencia"`
	SaldoAtual            SaldosBalancete   `json:"saldoAtual"`
}

// SaldosBalancete holds the headline balances of one trial balance.
type SaldosBalancete struct {
	BancosMovimento       decimal.Decimal `json:"bancosMovimento"`
	AplicacoesFinanceiras decimal.Decimal `json:"aplicacoesFinanceiras"`
	Estoque               decimal.Decimal `json:"estoque"`
	Disponibilidade       decimal.Decimal `json:"disponibilidade"`
}

// BalanceteState is the rolling window of recent trial balances.
type BalanceteState struct {
	Balancetes             []Balancete          `json:"balancetes"`
	BalancetesConsolidados BalanceteConsolidado `json:"balancetesConsolidados"`
}

func (*BalanceteState) Family() Family { return FamilyBalancete }
