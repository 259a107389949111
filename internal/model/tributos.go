package model

import "github.com/shopspring/decimal"

// DadosCSLL are the quarter totals of a CSLL computation.
type DadosCSLL struct {
	BaseCalculo           decimal.Decimal `json:"baseCalculo"`
	CSLLDevida            decimal.Decimal `json:"csllDevida"`
	CSLLRecolher          decimal.Decimal `json:"csllRecolher"`
	LucroLiquido          decimal.Decimal `json:"lucroLiquido"`
	Compensacao           decimal.Decimal `json:"compensacao"`
	ValorCompensarProximo decimal.Decimal `json:"valorCompensarProximo"`
}

// Add returns the field-wise sum of d and o.
func (d DadosCSLL) Add(o DadosCSLL) DadosCSLL {
	return DadosCSLL{
		BaseCalculo:           d.BaseCalculo.Add(o.BaseCalculo),
		CSLLDevida:            d.CSLLDevida.Add(o.CSLLDevida),
		CSLLRecolher:          d.CSLLRecolher.Add(o.CSLLRecolher),
		LucroLiquido:          d.LucroLiquido.Add(o.LucroLiquido),
		Compensacao:           d.Compensacao.Add(o.Compensacao),
		ValorCompensarProximo: d.ValorCompensarProximo.Add(o.ValorCompensarProximo),
	}
}

// CSLL is one quarterly CSLL computation. TrimestreNumero is 0 when the
// export did not identify its quarter.
type CSLL struct {
	Trimestre       string    `json:"trimestre"`
	TrimestreNumero int       `json:"trimestreNumero"`
	Ano             int       `json:"ano,omitempty"`
	Dados           DadosCSLL `json:"dados"`
}

func (*CSLL) Family() Family { return FamilyCSLL }

// CSLLState holds every imported quarter, sorted.
type CSLLState struct {
	Trimestres []CSLL    `json:"trimestres"`
	Totais     DadosCSLL `json:"totais"`
}

func (*CSLLState) Family() Family { return FamilyCSLL }

// DadosIRPJ are the quarter totals of an IRPJ computation.
type DadosIRPJ struct {
	BaseCalculo  decimal.Decimal `json:"baseCalculo"`
	IRPJDevido   decimal.Decimal `json:"irpjDevido"`
	AdicionalIR  decimal.Decimal `json:"adicionalIR"`
	IRPJRecolher decimal.Decimal `json:"irpjRecolher"`
}

// Add returns the field-wise sum of d and o.
func (d DadosIRPJ) Add(o DadosIRPJ) DadosIRPJ {
	return DadosIRPJ{
		BaseCalculo:  d.BaseCalculo.Add(o.BaseCalculo),
		IRPJDevido:   d.IRPJDevido.Add(o.IRPJDevido),
		AdicionalIR:  d.AdicionalIR.Add(o.AdicionalIR),
		IRPJRecolher: d.IRPJRecolher.Add(o.IRPJRecolher),
	}
}

// IRPJ is one quarterly IRPJ computation.
type IRPJ struct {
	Trimestre       string    `json:"trimestre"`
	TrimestreNumero int       `json:"trimestreNumero"`
	Ano             int       `json:"ano,omitempty"`
	Dados           DadosIRPJ `json:"dados"`
}

func (*IRPJ) Family() Family { return FamilyIRPJ }

// IRPJState holds every imported quarter, sorted.
type IRPJState struct {
	Trimestres []IRPJ    `json:"trimestres"`
	Totais     DadosIRPJ `json:"totais"`
}

func (*IRPJState) Family() Family { return FamilyIRPJ }

// Imposto is one tax line of the Resumo dos Impostos.
type Imposto struct {
	Nome                string          `json:"nome"`
	SaldoCredorAnterior decimal.Decimal `json:"saldoCredorAnterior"`
	Debitos             decimal.Decimal `json:"debitos"`
	Creditos            decimal.Decimal `json:"creditos"`
	ImpostoRecolher     decimal.Decimal `json:"impostoRecolher"`
	SaldoCredorFinal    decimal.Decimal `json:"saldoCredorFinal"`
}

// ImpostosMes groups the taxes of one competência.
type ImpostosMes struct {
	Impostos []Imposto `json:"impostos"`
}

// TotalImposto sums one tax across competências.
type TotalImposto struct {
	Debitos         decimal.Decimal `json:"debitos"`
	Creditos        decimal.Decimal `json:"creditos"`
	ImpostoRecolher decimal.Decimal `json:"impostoRecolher"`
}

// ResumoImpostos is the tax summary, keyed by "MM/YYYY".
type ResumoImpostos struct {
	ImpostosPorMes     map[string]ImpostosMes  `json:"impostosPorMes"`
	TotaisPorImposto   map[string]TotalImposto `json:"totaisPorImposto"`
	PeriodosImportados []string                `json:"periodosImportados"`
}

func (*ResumoImpostos) Family() Family { return FamilyResumoImpostos }
