package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFamily(t *testing.T) {
	f, err := ParseFamily(" Balancete ")
	require.NoError(t, err)
	assert.Equal(t, FamilyBalancete, f)

	_, err = ParseFamily("livro-caixa")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFamily)
}

func TestFamilies(t *testing.T) {
	all := Families()
	assert.Len(t, all, 15)
	for _, f := range all {
		assert.True(t, f.Valid(), "%s should be valid", f)
		assert.NotEmpty(t, f.Title(), "%s should have a title", f)

		s, err := NewState(f)
		require.NoError(t, err)
		assert.Equal(t, f, s.Family())
	}

	// Families returns a copy.
	all[0] = "x"
	assert.Equal(t, FamilyBalancete, Families()[0])
}

func TestQuarterly(t *testing.T) {
	assert.True(t, FamilyCSLL.Quarterly())
	assert.True(t, FamilyIRPJ.Quarterly())
	assert.False(t, FamilyBalancete.Quarterly())
}

func TestNormalizeEntityID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12.345.678/0001-90", "12345678000190"},
		{"12345678000190", "12345678000190"},
		{"filial-sp", "filial-sp"},
		{" acme_01 ", "acme_01"},
	}
	for _, tt := range tests {
		got, err := NormalizeEntityID(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "..", "a/b", "../etc", "acme ltda"} {
		_, err := NormalizeEntityID(bad)
		assert.ErrorIs(t, err, ErrInvalidEntity, "input: %q", bad)
	}
}

func TestEncodeDecodeState(t *testing.T) {
	in := &FGTS{
		TotalGeral:   TotalFGTS{ValorFGTS: decimal.RequireFromString("800.50"), Base: decimal.NewFromInt(10000)},
		Competencias: []string{"01/2025"},
	}
	data, err := EncodeState(FamilyFGTS, in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"valorFGTS":800.5`, "money must be a JSON number")

	out, err := DecodeState(FamilyFGTS, data)
	require.NoError(t, err)
	got, ok := out.(*FGTS)
	require.True(t, ok)
	assert.True(t, got.TotalGeral.ValorFGTS.Equal(in.TotalGeral.ValorFGTS))
	assert.Equal(t, []string{"01/2025"}, got.Competencias)
}

func TestEncodeState_WrongFamily(t *testing.T) {
	_, err := EncodeState(FamilyINSS, &FGTS{})
	assert.Error(t, err)

	_, err = EncodeState(FamilyINSS, nil)
	assert.Error(t, err)
}

func TestDecodeState_UnknownFamily(t *testing.T) {
	_, err := DecodeState("nope", []byte("{}"))
	assert.ErrorIs(t, err, ErrUnknownFamily)
}

func TestAccumulatorLineKey(t *testing.T) {
	a := AccumulatorLine{Codigo: "380", Descricao: "COMPRA"}
	b := AccumulatorLine{Codigo: "380", Descricao: "COMPRA", VlrContabil: decimal.NewFromInt(5)}
	c := AccumulatorLine{Codigo: "38", Descricao: "0COMPRA"}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestNewAnaliseHorizontal(t *testing.T) {
	dados := map[string]CompetenciaAH{
		"02/2025": {MesNome: "Fev", Mes: 2, Ano: 2025, Receita: decimal.NewFromInt(1200), Despesa: decimal.NewFromInt(700)},
		"01/2025": {MesNome: "Jan", Mes: 1, Ano: 2025, Receita: decimal.NewFromInt(1000), Despesa: decimal.NewFromInt(600)},
	}
	a := NewAnaliseHorizontal(dados)

	assert.Equal(t, "02/2025", a.Competencia)
	assert.Equal(t, []string{"01/2025", "02/2025"}, a.Competencias)
	assert.Equal(t, []string{"Jan/25", "Fev/25"}, a.Meses)
	assert.True(t, a.ReceitasMensais[0].Equal(decimal.NewFromInt(1000)))
	assert.True(t, a.Totais.TotalReceitas.Equal(decimal.NewFromInt(2200)))
	assert.True(t, a.Totais.TotalDespesas.Equal(decimal.NewFromInt(1300)))
	assert.True(t, a.Totais.LucroLiquido.Equal(decimal.NewFromInt(900)))

	// The input map is not shared.
	delete(dados, "01/2025")
	assert.Len(t, a.DadosPorCompetencia, 2)
}

func TestNewAnaliseHorizontal_Empty(t *testing.T) {
	a := NewAnaliseHorizontal(nil)
	assert.Empty(t, a.Competencia)
	assert.NotNil(t, a.Meses)
	assert.True(t, a.Totais.LucroLiquido.IsZero())
}
