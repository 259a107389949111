package model

import "github.com/shopspring/decimal"

// FaturamentoMes is one month of billing.
type FaturamentoMes struct {
	Mes      int             `json:"mes"`
	Ano      int             `json:"ano"`
	Saidas   decimal.Decimal `json:"saidas"`
	Servicos decimal.Decimal `json:"servicos"`
	Outros   decimal.Decimal `json:"outros"`
	Total    decimal.Decimal `json:"total"`
}

// TotaisFaturamento sums billing over a span of months.
type TotaisFaturamento struct {
	Saidas   decimal.Decimal `json:"saidas"`
	Servicos decimal.Decimal `json:"servicos"`
	Outros   decimal.Decimal `json:"outros"`
	Total    decimal.Decimal `json:"total"`
}

// Add accumulates m into t.
func (t TotaisFaturamento) Add(m FaturamentoMes) TotaisFaturamento {
	return TotaisFaturamento{
		Saidas:   t.Saidas.Add(m.Saidas),
		Servicos: t.Servicos.Add(m.Servicos),
		Outros:   t.Outros.Add(m.Outros),
		Total:    t.Total.Add(m.Total),
	}
}

// Faturamento is a parsed Demonstrativo Financeiro / Faturamento.
type Faturamento struct {
	Faturamento []FaturamentoMes `json:"faturamento"`
	EmpresaInfo EmpresaInfo      `json:"empresaInfo"`
}

func (*Faturamento) Family() Family { return FamilyFaturamento }

// FaturamentoState is the billing history with yearly splits.
type FaturamentoState struct {
	Faturamento []FaturamentoMes             `json:"faturamento"`
	EmpresaInfo EmpresaInfo                  `json:"empresaInfo"`
	Anos        []int                        `json:"anos"`
	PorAno      map[string]TotaisFaturamento `json:"porAno"`
	Totais      TotaisFaturamento            `json:"totais"`
}

func (*FaturamentoState) Family() Family { return FamilyFaturamento }

// MovimentacaoMes is one month of the Demonstrativo Mensal.
type MovimentacaoMes struct {
	Mes      int             `json:"mes"`
	Ano      int             `json:"ano"`
	Entradas decimal.Decimal `json:"entradas"`
	Saidas   decimal.Decimal `json:"saidas"`
	Servicos decimal.Decimal `json:"servicos"`
}

// TotaisMovimentacao sums entradas, saídas and serviços.
type TotaisMovimentacao struct {
	Entradas decimal.Decimal `json:"entradas"`
	Saidas   decimal.Decimal `json:"saidas"`
	Servicos decimal.Decimal `json:"servicos"`
}

// Add accumulates m into t.
func (t TotaisMovimentacao) Add(m MovimentacaoMes) TotaisMovimentacao {
	return TotaisMovimentacao{
		Entradas: t.Entradas.Add(m.Entradas),
		Saidas:   t.Saidas.Add(m.Saidas),
		Servicos: t.Servicos.Add(m.Servicos),
	}
}

// DemonstrativoMensal is the monthly movement summary.
type DemonstrativoMensal struct {
	Movimentacao []MovimentacaoMes             `json:"movimentacao"`
	AnosUnicos   []int                         `json:"anosUnicos"`
	TotaisGerais TotaisMovimentacao            `json:"totaisGerais"`
	TotaisPorAno map[string]TotaisMovimentacao `json:"totaisPorAno"`
}

func (*DemonstrativoMensal) Family() Family { return FamilyDemonstrativoMensal }
