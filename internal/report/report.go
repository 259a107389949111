// Package report turns decoded Domínio exports into typed records, one
// parser per report family. Parsers are pure and fail closed: they either
// return a complete record or a *ParseError.
package report

import (
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

// Parser converts the decoded text of one export into a model.Report.
type Parser interface {
	Parse(text string) (model.Report, error)
	Family() model.Family
}

// Registry holds one parser per family.
type Registry struct {
	parsers map[model.Family]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[model.Family]Parser)}
}

// Register adds a parser. Panics on duplicate family.
func (r *Registry) Register(p Parser) {
	f := p.Family()
	if _, ok := r.parsers[f]; ok {
		panic("duplicate parser family: " + string(f))
	}
	r.parsers[f] = p
}

// Get returns the parser for f, or nil.
func (r *Registry) Get(f model.Family) Parser {
	return r.parsers[f]
}

// Families lists the registered families in display order.
func (r *Registry) Families() []model.Family {
	var out []model.Family
	for _, f := range model.Families() {
		if _, ok := r.parsers[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(BalanceteParser{})
	r.Register(AnaliseHorizontalParser{})
	r.Register(DREComparativaParser{})
	r.Register(DREMensalParser{})
	r.Register(CSLLParser{})
	r.Register(IRPJParser{})
	r.Register(FaturamentoParser{})
	r.Register(DemonstrativoMensalParser{})
	r.Register(ResumoImpostosParser{})
	r.Register(ResumoAcumuladorParser{})
	r.Register(FGTSParser{})
	r.Register(INSSParser{})
	r.Register(EmpregadosParser{})
	r.Register(SalarioBaseParser{})
	r.Register(FeriasParser{})
	return r
}
