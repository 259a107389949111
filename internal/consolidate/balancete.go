package consolidate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

// Balancete keeps the newest window trial balances, one per competência.
// Re-importing a competência replaces it.
func Balancete(prior *model.BalanceteState, in *model.Balancete, window int) *model.BalanceteState {
	if window <= 0 {
		window = DefaultBalanceteWindow
	}
	var list []model.Balancete
	if prior != nil {
		for _, b := range prior.Balancetes {
			if b.Competencia == in.Competencia {
				continue
			}
			list = append(list, cloneBalancete(b))
		}
	}
	list = append(list, cloneBalancete(*in))
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Competencia.Before(list[j].Competencia)
	})
	if len(list) > window {
		list = list[len(list)-window:]
	}
	return &model.BalanceteState{
		Balancetes:             list,
		BalancetesConsolidados: consolidarBalancetes(list),
	}
}

func cloneBalancete(b model.Balancete) model.Balancete {
	b.Contas = append([]model.ContaBalancete(nil), b.Contas...)
	return b
}

func consolidarBalancetes(list []model.Balancete) model.BalanceteConsolidado {
	n := len(list)
	c := model.BalanceteConsolidado{
		Competencias:          make([]string, 0, n),
		Meses:                 make([]string, 0, n),
		BancosMovimento:       make([]decimal.Decimal, 0, n),
		AplicacoesFinanceiras: make([]decimal.Decimal, 0, n),
		Estoque:               make([]decimal.Decimal, 0, n),
		Disponibilidade:       make([]decimal.Decimal, 0, n),
	}
	for _, b := range list {
		bancos := b.BancosMovimento.SaldoAtual
		aplicacoes := b.AplicacoesFinanceiras.SaldoAtual
		c.Competencias = append(c.Competencias, b.Competencia.String())
		c.Meses = append(c.Meses, b.Competencia.Label())
		c.BancosMovimento = append(c.BancosMovimento, bancos)
		c.AplicacoesFinanceiras = append(c.AplicacoesFinanceiras, aplicacoes)
		c.Estoque = append(c.Estoque, b.Estoque.SaldoAtual)
		c.Disponibilidade = append(c.Disponibilidade, bancos.Add(aplicacoes))
	}
	if n > 0 {
		last := list[n-1]
		c.UltimaCompetencia = last.Competencia.String()
		c.SaldoAtual = model.SaldosBalancete{
			BancosMovimento:       last.BancosMovimento.SaldoAtual,
			AplicacoesFinanceiras: last.AplicacoesFinanceiras.SaldoAtual,
			Estoque:               last.Estoque.SaldoAtual,
			Disponibilidade:       c.Disponibilidade[n-1],
		}
	}
	return c
}

// AnaliseHorizontal upserts every incoming competência and re-derives the
// series from the full map.
func AnaliseHorizontal(prior, in *model.AnaliseHorizontal) *model.AnaliseHorizontal {
	dados := map[string]model.CompetenciaAH{}
	if prior != nil {
		for k, v := range prior.DadosPorCompetencia {
			dados[k] = v
		}
	}
	for k, v := range in.DadosPorCompetencia {
		dados[k] = v
	}
	return model.NewAnaliseHorizontal(dados)
}

