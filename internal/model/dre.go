package model

import (
	"github.com/shopspring/decimal"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/period"
)

// CompetenciaAH is one month of an Análise Horizontal.
type CompetenciaAH struct {
	MesNome          string          `json:"mesNome"`
	Mes              int             `json:"mes"`
	Ano              int             `json:"ano"`
	Receita          decimal.Decimal `json:"receita"`
	Despesa          decimal.Decimal `json:"despesa"`
	LucroBruto       decimal.Decimal `json:"lucroBruto"`
	ResultadoLiquido decimal.Decimal `json:"resultadoLiquido"`
}

// SeriesAH are the chart series, aligned with AnaliseHorizontal.Meses.
type SeriesAH struct {
	ReceitaBruta         []decimal.Decimal `json:"receitaBruta"`
	DespesasOperacionais []decimal.Decimal `json:"despesasOperacionais"`
	LucroBruto           []decimal.Decimal `json:"lucroBruto"`
	ResultadoLiquido     []decimal.Decimal `json:"resultadoLiquido"`
}

// TotaisAH sums every retained competência.
type TotaisAH struct {
	TotalReceitas decimal.Decimal `json:"totalReceitas"`
	TotalDespesas decimal.Decimal `json:"totalDespesas"`
	LucroLiquido  decimal.Decimal `json:"lucroLiquido"`
}

// AnaliseHorizontal is both the parsed export and the consolidated view:
// the consolidated view is the same shape derived from every retained
// competência.
type AnaliseHorizontal struct {
	Competencia         string                   `json:"competencia"`
	DadosPorCompetencia map[string]CompetenciaAH `json:"dadosPorCompetencia"`
	Dados               SeriesAH                 `json:"dados"`
	Meses               []string                 `json:"meses"`
	Competencias        []string                 `json:"competencias"`
	ReceitasMensais     []decimal.Decimal        `json:"receitasMensais"`
	DespesasMensais     []decimal.Decimal        `json:"despesasMensais"`
	Totais              TotaisAH                 `json:"totais"`
}

func (*AnaliseHorizontal) Family() Family { return FamilyAnaliseHorizontal }

// NewAnaliseHorizontal derives labels, series and totals from dados,
// oldest competência first. dados is copied.
func NewAnaliseHorizontal(dados map[string]CompetenciaAH) *AnaliseHorizontal {
	keys := make([]string, 0, len(dados))
	copied := make(map[string]CompetenciaAH, len(dados))
	for k, v := range dados {
		keys = append(keys, k)
		copied[k] = v
	}
	keys = period.SortKeys(keys)

	n := len(keys)
	a := &AnaliseHorizontal{
		DadosPorCompetencia: copied,
		Dados: SeriesAH{
			ReceitaBruta:         make([]decimal.Decimal, 0, n),
			DespesasOperacionais: make([]decimal.Decimal, 0, n),
			LucroBruto:           make([]decimal.Decimal, 0, n),
			ResultadoLiquido:     make([]decimal.Decimal, 0, n),
		},
		Meses:           make([]string, 0, n),
		Competencias:    keys,
		ReceitasMensais: make([]decimal.Decimal, 0, n),
		DespesasMensais: make([]decimal.Decimal, 0, n),
	}
	for _, k := range keys {
		d := copied[k]
		a.Meses = append(a.Meses, period.Competencia{Mes: d.Mes, Ano: d.Ano}.Label())
		a.Dados.ReceitaBruta = append(a.Dados.ReceitaBruta, d.Receita)
		a.Dados.DespesasOperacionais = append(a.Dados.DespesasOperacionais, d.Despesa)
		a.Dados.LucroBruto = append(a.Dados.LucroBruto, d.LucroBruto)
		a.Dados.ResultadoLiquido = append(a.Dados.ResultadoLiquido, d.ResultadoLiquido)
		a.ReceitasMensais = append(a.ReceitasMensais, d.Receita)
		a.DespesasMensais = append(a.DespesasMensais, d.Despesa)
		a.Totais.TotalReceitas = a.Totais.TotalReceitas.Add(d.Receita)
		a.Totais.TotalDespesas = a.Totais.TotalDespesas.Add(d.Despesa)
	}
	a.Totais.LucroLiquido = a.Totais.TotalReceitas.Sub(a.Totais.TotalDespesas)
	if n > 0 {
		a.Competencia = keys[n-1]
	}
	return a
}

// LinhasDRE are the headline lines of an income statement.
type LinhasDRE struct {
	ReceitaBruta         decimal.Decimal `json:"receitaBruta"`
	DespesasOperacionais decimal.Decimal `json:"despesasOperacionais"`
	LucroBruto           decimal.Decimal `json:"lucroBruto"`
	ResultadoLiquido     decimal.Decimal `json:"resultadoLiquido"`
}

// AnosDRE names the two compared years.
type AnosDRE struct {
	Atual    int `json:"atual"`
	Anterior int `json:"anterior"`
}

// DadosDREComparativa pairs the current and previous year.
type DadosDREComparativa struct {
	AnoAtual    LinhasDRE `json:"anoAtual"`
	AnoAnterior LinhasDRE `json:"anoAnterior"`
}

// DREComparativa is a two-year income statement comparison.
type DREComparativa struct {
	Anos  AnosDRE             `json:"anos"`
	Dados DadosDREComparativa `json:"dados"`
}

func (*DREComparativa) Family() Family { return FamilyDREComparativa }

// LinhaDRE is one printed line, in file order.
type LinhaDRE struct {
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
}

// DREMensal is a single-period income statement.
type DREMensal struct {
	Periodo string                     `json:"periodo"`
	Dados   map[string]decimal.Decimal `json:"dados"`
	Linhas  []LinhaDRE                 `json:"linhas"`
}

func (*DREMensal) Family() Family { return FamilyDREMensal }
