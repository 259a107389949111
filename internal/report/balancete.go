package report

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

// BalanceteParser parses the monthly trial balance (Balancete de
// Verificação).
type BalanceteParser struct{}

func (BalanceteParser) Family() model.Family { return model.FamilyBalancete }

var balanceteColumns = []column{
	{name: "classificacao", keywords: []string{"CLASSIFICACAO", "CLASSIF"}},
	{name: "descricao", keywords: []string{"DESCRICAO", "NOME DA CONTA", "CONTA"}},
	{name: "saldoAtual", keywords: []string{"SALDO ATUAL", "SALDO FINAL"}},
}

var (
	bancosAccounts     = []string{"BANCOS CONTA MOVIMENTO", "BANCOS C/ MOVIMENTO", "BANCOS MOVIMENTO"}
	aplicacoesAccounts = []string{"APLICACOES FINANCEIRAS", "APLICACAO FINANCEIRA"}
	estoqueAccounts    = []string{"ESTOQUE"}
)

func (p BalanceteParser) Parse(text string) (model.Report, error) {
	s, err := newSheet(p.Family(), text)
	if err != nil {
		return nil, err
	}
	comp, err := s.competencia()
	if err != nil {
		return nil, err
	}
	start, cols, err := s.header(balanceteColumns)
	if err != nil {
		return nil, err
	}

	b := &model.Balancete{Competencia: comp, Empresa: s.empresa()}
	for _, r := range s.dataRows(start, balanceteColumns) {
		desc := r.cell(cols.idx("descricao"))
		raw := r.cell(cols.idx("saldoAtual"))
		if desc == "" || raw == "" {
			continue
		}
		saldo, nature, err := textnorm.ParseBalance(raw)
		if errors.Is(err, textnorm.ErrEmptyNumber) {
			continue
		}
		if err != nil {
			return nil, s.errorf(r.line, "saldo atual: %v", err)
		}
		b.Contas = append(b.Contas, model.ContaBalancete{
			Classificacao: r.cell(cols.idx("classificacao")),
			Descricao:     desc,
			SaldoAtual:    saldo,
			Natureza:      string(nature),
		})
	}
	if len(b.Contas) == 0 {
		return nil, s.errorf(0, "no account rows")
	}

	b.BancosMovimento.SaldoAtual = headlineBalance(b.Contas, bancosAccounts)
	b.AplicacoesFinanceiras.SaldoAtual = headlineBalance(b.Contas, aplicacoesAccounts)
	b.Estoque.SaldoAtual = headlineBalance(b.Contas, estoqueAccounts)
	return b, nil
}

// headlineBalance returns the balance of the shallowest account matching
// one of names; sub-accounts repeat the parent's name, so the synthetic
// parent carries the total. Ties go to the first row.
func headlineBalance(contas []model.ContaBalancete, names []string) decimal.Decimal {
	best, bestDepth := -1, 0
	for i, c := range contas {
		if !textnorm.ContainsAny(c.Descricao, names...) {
			continue
		}
		depth := accountDepth(c.Classificacao)
		if best < 0 || depth < bestDepth {
			best, bestDepth = i, depth
		}
	}
	if best < 0 {
		return decimal.Zero
	}
	return contas[best].SaldoAtual
}

func accountDepth(classificacao string) int {
	classificacao = strings.Trim(classificacao, ". ")
	if classificacao == "" {
		return 1 << 10
	}
	return strings.Count(classificacao, ".") + 1
}
