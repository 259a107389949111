package model

import (
	"errors"
	"fmt"
	"strings"
)

// Family identifies one of the Domínio report shapes the engine accepts.
type Family string

const (
	FamilyBalancete           Family = "balancete"
	FamilyAnaliseHorizontal   Family = "analise-horizontal"
	FamilyDREComparativa      Family = "dre-comparativa"
	FamilyDREMensal           Family = "dre-mensal"
	FamilyCSLL                Family = "csll"
	FamilyIRPJ                Family = "irpj"
	FamilyFaturamento         Family = "faturamento"
	FamilyDemonstrativoMensal Family = "demonstrativo-mensal"
	FamilyResumoImpostos      Family = "resumo-impostos"
	FamilyResumoAcumulador    Family = "resumo-acumulador"
	FamilyFGTS                Family = "fgts"
	FamilyINSS                Family = "inss"
	FamilyEmpregados          Family = "empregados"
	FamilySalarioBase         Family = "salario-base"
	FamilyFerias              Family = "ferias"
)

// ErrUnknownFamily is returned for a family outside the enumerated set.
var ErrUnknownFamily = errors.New("unknown report type")

var families = []Family{
	FamilyBalancete,
	FamilyAnaliseHorizontal,
	FamilyDREComparativa,
	FamilyDREMensal,
	FamilyCSLL,
	FamilyIRPJ,
	FamilyFaturamento,
	FamilyDemonstrativoMensal,
	FamilyResumoImpostos,
	FamilyResumoAcumulador,
	FamilyFGTS,
	FamilyINSS,
	FamilyEmpregados,
	FamilySalarioBase,
	FamilyFerias,
}

var familyTitles = map[Family]string{
	FamilyBalancete:           "Balancete",
	FamilyAnaliseHorizontal:   "Análise Horizontal",
	FamilyDREComparativa:      "DRE Comparativa",
	FamilyDREMensal:           "DRE Mensal",
	FamilyCSLL:                "CSLL",
	FamilyIRPJ:                "IRPJ",
	FamilyFaturamento:         "Demonstrativo Financeiro / Faturamento",
	FamilyDemonstrativoMensal: "Demonstrativo Mensal",
	FamilyResumoImpostos:      "Resumo dos Impostos",
	FamilyResumoAcumulador:    "Resumo por Acumulador",
	FamilyFGTS:                "FGTS",
	FamilyINSS:                "INSS",
	FamilyEmpregados:          "Relação de Empregados",
	FamilySalarioBase:         "Salário Base",
	FamilyFerias:              "Programação de Férias",
}

// Families returns every known family in display order.
func Families() []Family {
	return append([]Family(nil), families...)
}

// ParseFamily maps user input to a Family, case-insensitively.
func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
	}
	return f, nil
}

// Valid reports whether f is one of the enumerated families.
func (f Family) Valid() bool {
	_, ok := familyTitles[f]
	return ok
}

// Title returns the human-readable report name.
func (f Family) Title() string {
	return familyTitles[f]
}

// Quarterly reports whether imports of f are keyed by trimestre.
func (f Family) Quarterly() bool {
	return f == FamilyCSLL || f == FamilyIRPJ
}

// Report is a parsed export. One concrete type per family.
type Report interface {
	Family() Family
}

// State is the consolidated view of one family for one legal entity.
type State interface {
	Family() Family
}
