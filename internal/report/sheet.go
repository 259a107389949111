package report

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/period"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

// Domínio prints to text either with a separator (";" or tab) or as
// fixed-width columns, so two or more spaces also split cells.
var multiSpace = regexp.MustCompile(` {2,}`)

// row is one non-blank input line split into trimmed cells.
type row struct {
	line  int
	raw   string
	cells []string
}

func splitCells(line string) []string {
	var parts []string
	switch {
	case strings.Contains(line, ";"):
		parts = strings.Split(line, ";")
	case strings.Contains(line, "\t"):
		parts = strings.Split(line, "\t")
	default:
		parts = multiSpace.Split(strings.TrimSpace(line), -1)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return nil
	}
	return parts
}

func (r row) cell(i int) string {
	if i < 0 || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// first returns the first non-empty cell.
func (r row) first() string {
	for _, c := range r.cells {
		if c != "" {
			return c
		}
	}
	return ""
}

// filled counts non-empty cells.
func (r row) filled() int {
	n := 0
	for _, c := range r.cells {
		if c != "" {
			n++
		}
	}
	return n
}

// isTotal reports footer rows such as "TOTAL", "Total geral" or "TOTAIS".
func (r row) isTotal() bool {
	k := textnorm.Key(r.first())
	for _, p := range []string{"TOTAL", "TOTAIS"} {
		if k == p || strings.HasPrefix(k, p+" ") || strings.HasPrefix(k, p+"/") {
			return true
		}
	}
	return false
}

// metadataLabels are the report header labels Domínio prints above the
// table.
var metadataLabels = []string{
	"EMPRESA", "RAZAO SOCIAL", "CNPJ", "CPF", "INSCRICAO", "PERIODO",
	"COMPETENCIA", "MES/ANO", "TRIMESTRE", "EXERCICIO", "DATA", "EMISSAO",
	"HORA", "PAGINA", "FOLHA", "FILIAL", "ESTABELECIMENTO", "ENDERECO",
	"USUARIO", "SISTEMA",
}

// isLabelRow reports header metadata rows ("Empresa: ACME"). A described
// amount such as "Receita: vendas;1.000,00" is not metadata unless its
// label is a known header.
func (r row) isLabelRow() bool {
	first := r.first()
	idx := strings.Index(first, ":")
	if idx <= 0 {
		return false
	}
	key := textnorm.Key(first[:idx])
	for _, l := range metadataLabels {
		if keyHasPrefix(key, l) {
			return true
		}
	}
	for _, c := range r.cells {
		if textnorm.IsNumber(c) {
			return false
		}
	}
	return true
}

// label is a "Label: value" pair found on a metadata row.
type label struct {
	key   string
	value string
	line  int
}

func (l label) is(names ...string) bool {
	for _, n := range names {
		if keyHasPrefix(l.key, textnorm.Key(n)) {
			return true
		}
	}
	return false
}

func (r row) labels() []label {
	var out []label
	for i, c := range r.cells {
		idx := strings.Index(c, ":")
		if idx <= 0 {
			continue
		}
		key := textnorm.Key(c[:idx])
		if key == "" {
			continue
		}
		value := strings.TrimSpace(c[idx+1:])
		if value == "" && i+1 < len(r.cells) && !strings.Contains(r.cells[i+1], ":") {
			value = r.cells[i+1]
		}
		out = append(out, label{key: key, value: value, line: r.line})
	}
	return out
}

// keyHasPrefix matches whole words: "PERIODO DE APURACAO" has prefix
// "PERIODO", "CUSTOS" does not have prefix "CUSTO".
func keyHasPrefix(k, prefix string) bool {
	if prefix == "" {
		return false
	}
	return k == prefix || strings.HasPrefix(k, prefix+" ")
}

func keyContains(k, word string) bool {
	if word == "" {
		return false
	}
	return strings.Contains(" "+k+" ", " "+word+" ")
}

// sheet is the decoded export as rows, tagged with the family for errors.
type sheet struct {
	family model.Family
	rows   []row
}

func newSheet(f model.Family, text string) (*sheet, error) {
	s := &sheet{family: f}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitCells(line)
		if len(cells) == 0 {
			continue
		}
		s.rows = append(s.rows, row{line: i + 1, raw: line, cells: cells})
	}
	if len(s.rows) == 0 {
		return nil, s.errorf(0, "empty input")
	}
	return s, nil
}

func (s *sheet) errorf(line int, format string, args ...any) error {
	return &ParseError{Family: s.family, Line: line, Reason: fmt.Sprintf(format, args...)}
}

// label returns the first metadata value whose label starts with one of
// names, trying names in order.
func (s *sheet) label(names ...string) (label, bool) {
	for _, n := range names {
		for _, r := range s.rows {
			for _, l := range r.labels() {
				if l.is(n) {
					return l, true
				}
			}
		}
	}
	return label{}, false
}

// competencia reads the mandatory "Competência:" or "Período:" header.
func (s *sheet) competencia() (period.Competencia, error) {
	l, ok := s.label("COMPETENCIA", "PERIODO", "MES/ANO")
	if !ok {
		return period.Competencia{}, s.errorf(0, "competência header not found")
	}
	c, ok := period.FindCompetencia(l.value)
	if !ok {
		return period.Competencia{}, s.errorf(l.line, "invalid competência %q", l.value)
	}
	return c, nil
}

// empresa reads the optional company header.
func (s *sheet) empresa() model.EmpresaInfo {
	var info model.EmpresaInfo
	if l, ok := s.label("EMPRESA", "RAZAO SOCIAL"); ok {
		info.Nome = l.value
	}
	if l, ok := s.label("CNPJ"); ok {
		info.CNPJ = l.value
	}
	return info
}

// column describes one table column by the keywords of its header cell.
// Keywords are tried in order; an exact header match beats a partial one.
type column struct {
	name     string
	keywords []string
	optional bool
}

type columns map[string]int

// idx returns the cell index of name, or -1 for an absent optional column.
func (c columns) idx(name string) int {
	if i, ok := c[name]; ok {
		return i
	}
	return -1
}

func (c columns) has(name string) bool {
	_, ok := c[name]
	return ok
}

// matchHeader reports whether r is a header row carrying every required
// column. Each header cell is claimed by at most one column.
func matchHeader(r row, layout []column) (columns, bool) {
	keys := make([]string, len(r.cells))
	for i, c := range r.cells {
		keys[i] = textnorm.Key(c)
	}
	claimed := make([]bool, len(keys))
	cols := columns{}
	for _, want := range layout {
		idx := pickColumn(keys, claimed, want.keywords)
		if idx < 0 {
			if want.optional {
				continue
			}
			return nil, false
		}
		claimed[idx] = true
		cols[want.name] = idx
	}
	return cols, true
}

func pickColumn(keys []string, claimed []bool, keywords []string) int {
	for _, kw := range keywords {
		nk := textnorm.Key(kw)
		for i, k := range keys {
			if !claimed[i] && k == nk {
				return i
			}
		}
		for i, k := range keys {
			if !claimed[i] && keyContains(k, nk) {
				return i
			}
		}
	}
	return -1
}

// header finds the first header row matching layout and returns its index
// into s.rows.
func (s *sheet) header(layout []column) (int, columns, error) {
	for i, r := range s.rows {
		if r.isLabelRow() {
			continue
		}
		if cols, ok := matchHeader(r, layout); ok {
			return i, cols, nil
		}
	}
	var names []string
	for _, want := range layout {
		if !want.optional {
			names = append(names, want.keywords[0])
		}
	}
	return -1, nil, s.errorf(0, "table header not found (expected columns %s)", strings.Join(names, ", "))
}

// dataRows returns the table body after the header at start: footer
// totals, metadata rows, single-cell rows and repeated page headers are
// dropped.
func (s *sheet) dataRows(start int, layout []column) []row {
	var out []row
	for _, r := range s.rows[start+1:] {
		if r.isTotal() || r.isLabelRow() || r.filled() < 2 {
			continue
		}
		if _, again := matchHeader(r, layout); again {
			continue
		}
		out = append(out, r)
	}
	return out
}

// amount parses a money cell. Blank cells and a lone "-" are zero.
func (s *sheet) amount(r row, col int, what string) (decimal.Decimal, error) {
	d, err := textnorm.ParseNumber(r.cell(col))
	if errors.Is(err, textnorm.ErrEmptyNumber) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, s.errorf(r.line, "%s: %v", what, err)
	}
	return d, nil
}

// count parses an integer cell. Blank cells are zero.
func (s *sheet) count(r row, col int, what string) (int, error) {
	n, err := textnorm.ParseInt(r.cell(col))
	if errors.Is(err, textnorm.ErrEmptyNumber) {
		return 0, nil
	}
	if err != nil {
		return 0, s.errorf(r.line, "%s: %v", what, err)
	}
	return n, nil
}

// rowCompetencia parses the competência cell of a table row.
func (s *sheet) rowCompetencia(r row, col int) (period.Competencia, error) {
	c, err := period.ParseCompetencia(r.cell(col))
	if err != nil {
		return period.Competencia{}, s.errorf(r.line, "%v", err)
	}
	return c, nil
}

// lineKey folds a statement description and drops leading account codes
// and signs: "3.01 (-) Deduções" becomes "DEDUCOES".
func lineKey(s string) string {
	return strings.TrimLeft(textnorm.Key(s), "0123456789/% ")
}

// valueLine is a statement row: a description followed by amounts.
// invalid holds the first cell after the description that is neither an
// amount nor a percentage.
type valueLine struct {
	row     row
	label   string
	key     string
	values  []decimal.Decimal
	invalid string
}

func (l valueLine) last() decimal.Decimal {
	return l.values[len(l.values)-1]
}

// isPercent reports analysis columns such as "45,5%".
func isPercent(c string) bool {
	p, ok := strings.CutSuffix(strings.TrimSpace(c), "%")
	return ok && textnorm.IsNumber(strings.TrimSpace(p))
}

// check fails when l carries a cell that is not an amount, or no amount
// at all.
func (s *sheet) check(l valueLine) error {
	if l.invalid != "" {
		return s.errorf(l.row.line, "%s: invalid number %q", l.label, l.invalid)
	}
	if len(l.values) == 0 {
		return s.errorf(l.row.line, "%s: no amount", l.label)
	}
	return nil
}

// valueLines collects statement rows with at least one cell after their
// description. Cells before the description (account codes) and
// percentages after it are ignored.
func (s *sheet) valueLines() []valueLine {
	var out []valueLine
	for _, r := range s.rows {
		if r.isLabelRow() {
			continue
		}
		labelIdx := -1
		for i, c := range r.cells {
			if c != "" && !textnorm.IsNumber(c) {
				labelIdx = i
				break
			}
		}
		if labelIdx < 0 {
			continue
		}
		l := valueLine{row: r, label: r.cells[labelIdx], key: lineKey(r.cells[labelIdx])}
		if l.key == "" {
			continue
		}
		rest := r.cells[labelIdx+1:]
		for _, c := range rest {
			if c == "" || isPercent(c) {
				continue
			}
			d, err := textnorm.ParseNumber(c)
			switch {
			case err == nil:
				l.values = append(l.values, d)
			case errors.Is(err, textnorm.ErrEmptyNumber):
			case l.invalid == "":
				l.invalid = c
			}
		}
		if len(rest) > 0 {
			out = append(out, l)
		}
	}
	return out
}

// findLine returns the first line whose description starts with one of
// aliases, trying aliases in priority order.
func findLine(lines []valueLine, aliases ...string) (valueLine, bool) {
	for _, a := range aliases {
		ak := textnorm.Key(a)
		for _, l := range lines {
			if keyHasPrefix(l.key, ak) {
				return l, true
			}
		}
	}
	return valueLine{}, false
}
