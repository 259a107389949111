package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

func parseAs[T model.Report](t *testing.T, p Parser, text string) T {
	t.Helper()
	r, err := p.Parse(text)
	require.NoError(t, err)
	out, ok := r.(T)
	require.True(t, ok, "unexpected report type %T", r)
	return out
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func requireParseError(t *testing.T, err error) *ParseError {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	return pe
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, model.Families(), r.Families())
	for _, f := range model.Families() {
		p := r.Get(f)
		require.NotNil(t, p, "no parser for %s", f)
		assert.Equal(t, f, p.Family())
	}
	assert.Nil(t, r.Get("livro-caixa"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(FGTSParser{})
	assert.Panics(t, func() { r.Register(FGTSParser{}) })
}

func TestParseError(t *testing.T) {
	err := error(&ParseError{Family: model.FamilyFGTS, Line: 3, Reason: "bad cell"})
	assert.ErrorIs(t, err, ErrParse)
	assert.Equal(t, "fgts: line 3: bad cell", err.Error())

	err = &ParseError{Family: model.FamilyINSS, Reason: "empty input"}
	assert.Equal(t, "inss: empty input", err.Error())
}

func TestParsers_FailClosed(t *testing.T) {
	inputs := map[string]string{
		"empty":   "",
		"blank":   "  \n\r\n\t\n",
		"garbage": "lorem ipsum dolor\nsit amet",
	}
	r := DefaultRegistry()
	for _, f := range model.Families() {
		for name, input := range inputs {
			t.Run(string(f)+"/"+name, func(t *testing.T) {
				rep, err := r.Get(f).Parse(input)
				requireParseError(t, err)
				assert.Nil(t, rep)
			})
		}
	}
}

func TestSplitCells(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"a;b; c ;;", []string{"a", "b", "c"}},
		{"a\tb\t\tc", []string{"a", "b", "", "c"}},
		{"  RECEITA BRUTA    1.000,00   5,00", []string{"RECEITA BRUTA", "1.000,00", "5,00"}},
		{"Empresa: ACME LTDA", []string{"Empresa: ACME LTDA"}},
		{";;;", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCells(tt.line))
		})
	}
}

func TestRow_Labels(t *testing.T) {
	r := row{line: 2, cells: []string{"Empresa: ACME LTDA", "CNPJ:", "12.345.678/0001-90"}}
	labels := r.labels()
	require.Len(t, labels, 2)
	assert.Equal(t, label{key: "EMPRESA", value: "ACME LTDA", line: 2}, labels[0])
	assert.Equal(t, label{key: "CNPJ", value: "12.345.678/0001-90", line: 2}, labels[1])
	assert.True(t, labels[0].is("Razão Social", "empresa"))
}

func TestRow_IsTotal(t *testing.T) {
	assert.True(t, row{cells: []string{"", "TOTAL GERAL"}}.isTotal())
	assert.True(t, row{cells: []string{"Totais"}}.isTotal())
	assert.False(t, row{cells: []string{"TOTALIZADOR DE VENDAS"}}.isTotal())
}

func TestMatchHeader(t *testing.T) {
	r := row{cells: []string{"Imposto", "Saldo Credor Anterior", "Débitos", "Créditos", "Imposto a Recolher", "Saldo Credor"}}
	cols, ok := matchHeader(r, impostoColumns)
	require.True(t, ok)
	assert.Equal(t, columns{
		"nome":                0,
		"saldoCredorAnterior": 1,
		"debitos":             2,
		"creditos":            3,
		"impostoRecolher":     4,
		"saldoCredorFinal":    5,
	}, cols)

	_, ok = matchHeader(row{cells: []string{"Imposto", "Débitos"}}, impostoColumns)
	assert.False(t, ok)
}

func TestLineKey(t *testing.T) {
	assert.Equal(t, "DEDUCOES DA RECEITA BRUTA", lineKey("3.01 (-) Deduções da receita bruta"))
	assert.Equal(t, "LUCRO BRUTO", lineKey("(=) LUCRO BRUTO"))
	assert.Equal(t, "", lineKey("1.1"))
}

func TestFindLine_AliasPriority(t *testing.T) {
	lines := []valueLine{
		{key: "DESPESAS COM VENDAS", values: []decimal.Decimal{decimal.NewFromInt(1)}},
		{key: "DESPESAS OPERACIONAIS", values: []decimal.Decimal{decimal.NewFromInt(2)}},
	}
	l, ok := findLine(lines, despesaLines...)
	require.True(t, ok)
	assert.Equal(t, "DESPESAS OPERACIONAIS", l.key)

	_, ok = findLine(lines, "RECEITA BRUTA")
	assert.False(t, ok)
}

func TestRow_IsLabelRow(t *testing.T) {
	tests := []struct {
		cells []string
		want  bool
	}{
		{[]string{"Empresa: ACME LTDA"}, true},
		{[]string{"Período: 01/01/2025 a 31/01/2025"}, true},
		{[]string{"Folha:", "1"}, true},
		{[]string{"Observação: emitido pelo sistema"}, true},
		{[]string{"Receita: vendas", "1.000,00"}, false},
		{[]string{"RECEITA BRUTA", "1.000,00"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.cells[0], func(t *testing.T) {
			assert.Equal(t, tt.want, row{cells: tt.cells}.isLabelRow())
		})
	}
}

func TestValueLines(t *testing.T) {
	s, err := newSheet(model.FamilyDREMensal, "Descrição;Valor;AV%\nRECEITA BRUTA;1.000,00;100,0%\nCUSTOS;-;N/D\n")
	require.NoError(t, err)
	lines := s.valueLines()
	require.Len(t, lines, 3)

	assert.Empty(t, lines[0].values)
	assert.Equal(t, "Valor", lines[0].invalid)

	assert.Equal(t, "RECEITA BRUTA", lines[1].key)
	require.Len(t, lines[1].values, 1, "percentages are not amounts")
	assertDec(t, "1000", lines[1].values[0])
	assert.NoError(t, s.check(lines[1]))

	assert.Equal(t, "N/D", lines[2].invalid)
	pe := requireParseError(t, s.check(lines[2]))
	assert.Equal(t, 3, pe.Line)
}
