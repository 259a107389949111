// Package classify maps free-text acumulador descriptions to the fixed
// categories used by the cálculo 380.
package classify

import (
	"fmt"
	"strings"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

// Category is a semantic bucket for acumulador lines.
type Category string

const (
	CompraComercializacao  Category = "compraComercializacao"
	CompraIndustrializacao Category = "compraIndustrializacao"
	VendaMercadoria        Category = "vendaMercadoria"
	VendaProduto           Category = "vendaProduto"
	VendaExterior          Category = "vendaExterior"
	Servicos               Category = "servicos"
)

var categories = map[Category]bool{
	CompraComercializacao:  true,
	CompraIndustrializacao: true,
	VendaMercadoria:        true,
	VendaProduto:           true,
	VendaExterior:          true,
	Servicos:               true,
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !categories[c] {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Rule assigns Category to descriptions containing Contains.
type Rule struct {
	Contains string   `yaml:"contains"`
	Category Category `yaml:"category"`
}

// DefaultRules is the built-in rule table. Order matters: the first rule
// whose phrase occurs in the description wins.
var DefaultRules = []Rule{
	{"SERVICO TOMADO", Servicos},
	{"SERVICOS TOMADOS", Servicos},
	{"COMPRA P/ RECEBIMENTO FUTURO", Servicos},
	{"COMPRA PARA RECEBIMENTO FUTURO", Servicos},
	{"SERVICO DE TRANSPORTE", Servicos},
	{"PRESTACAO DE SERVICO", Servicos},

	{"COMPRA P/ INDUSTRIALIZACAO", CompraIndustrializacao},
	{"COMPRA PARA INDUSTRIALIZACAO", CompraIndustrializacao},
	{"COMPRAS P/ INDUSTRIALIZACAO", CompraIndustrializacao},

	{"COMPRA P/ COMERCIALIZACAO", CompraComercializacao},
	{"COMPRA PARA COMERCIALIZACAO", CompraComercializacao},
	{"COMPRAS P/ COMERCIALIZACAO", CompraComercializacao},
	{"COMPRA P/ REVENDA", CompraComercializacao},
	{"COMPRA PARA REVENDA", CompraComercializacao},

	{"P/ EXTERIOR", VendaExterior},
	{"PARA O EXTERIOR", VendaExterior},
	{"EXPORTACAO", VendaExterior},

	{"VENDA DE PRODUCAO", VendaProduto},
	{"VENDA DE PRODUTO", VendaProduto},
	{"VENDA PRODUCAO", VendaProduto},

	{"VENDA DE MERCADORIA", VendaMercadoria},
	{"VENDA MERCADORIA", VendaMercadoria},
	{"VENDAS DE MERCADORIA", VendaMercadoria},
}

type compiledRule struct {
	phrase   string
	category Category
}

// Classifier is an ordered, immutable rule table.
type Classifier struct {
	rules []compiledRule
}

// New builds a Classifier. extra rules are tried before the defaults.
func New(extra ...Rule) (*Classifier, error) {
	all := make([]Rule, 0, len(extra)+len(DefaultRules))
	all = append(all, extra...)
	all = append(all, DefaultRules...)

	c := &Classifier{rules: make([]compiledRule, 0, len(all))}
	for i, r := range all {
		if !categories[r.Category] {
			return nil, fmt.Errorf("rule %d: unknown category %q", i+1, r.Category)
		}
		phrase := textnorm.Key(r.Contains)
		if phrase == "" {
			return nil, fmt.Errorf("rule %d: empty phrase", i+1)
		}
		c.rules = append(c.rules, compiledRule{phrase: phrase, category: r.Category})
	}
	return c, nil
}

// Default returns a Classifier with only the built-in rules.
func Default() *Classifier {
	c, err := New()
	if err != nil {
		panic("invalid default rules: " + err.Error())
	}
	return c
}

// Classify returns the category of descricao, or false when no rule
// matches.
func (c *Classifier) Classify(descricao string) (Category, bool) {
	k := textnorm.Key(descricao)
	if k == "" {
		return "", false
	}
	for _, r := range c.rules {
		if strings.Contains(k, r.phrase) {
			return r.category, true
		}
	}
	return "", false
}

// Len returns the number of rules.
func (c *Classifier) Len() int {
	return len(c.rules)
}
