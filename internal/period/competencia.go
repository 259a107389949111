// Package period formats, parses and orders the reporting-period keys the
// consolidation layer merges on: the monthly competência and the fiscal
// trimestre.
package period

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

// Competencia is an accounting reporting month.
type Competencia struct {
	Mes int
	Ano int
}

var mesesAbrev = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

var (
	mesAnoRegex = regexp.MustCompile(`^(\d{1,2})[/-](\d{2}|\d{4})$`)
	anoMesRegex = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	dataRegex   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dateInText  = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
	mesAnoText  = regexp.MustCompile(`\b\d{1,2}/\d{4}\b`)
	mesNomeAno  = regexp.MustCompile(`^([A-Z]{3,9})(?:\s*/\s*|\s+DE\s+|\s+)(\d{2}|\d{4})$`)
)

var mesesPorNome = map[string]int{
	"JAN": 1, "JANEIRO": 1,
	"FEV": 2, "FEVEREIRO": 2,
	"MAR": 3, "MARCO": 3,
	"ABR": 4, "ABRIL": 4,
	"MAI": 5, "MAIO": 5,
	"JUN": 6, "JUNHO": 6,
	"JUL": 7, "JULHO": 7,
	"AGO": 8, "AGOSTO": 8,
	"SET": 9, "SETEMBRO": 9,
	"OUT": 10, "OUTUBRO": 10,
	"NOV": 11, "NOVEMBRO": 11,
	"DEZ": 12, "DEZEMBRO": 12,
}

// ParseMes returns the month named by s ("Julho", "jul", "Março").
func ParseMes(s string) (int, bool) {
	m, ok := mesesPorNome[textnorm.Key(s)]
	return m, ok
}

// NewCompetencia validates month and year.
func NewCompetencia(mes, ano int) (Competencia, error) {
	if mes < 1 || mes > 12 {
		return Competencia{}, fmt.Errorf("invalid month %d", mes)
	}
	if ano < 1900 || ano > 9999 {
		return Competencia{}, fmt.Errorf("invalid year %d", ano)
	}
	return Competencia{Mes: mes, Ano: ano}, nil
}

// ParseCompetencia accepts "01/2025", "1/2025", "01/25", "01-2025",
// "2025-01", a full date "31/01/2025" and month names ("Janeiro/2025",
// "Jan/25", "Março de 2025").
func ParseCompetencia(s string) (Competencia, error) {
	s = strings.TrimSpace(s)

	if m := dataRegex.FindStringSubmatch(s); m != nil {
		mes, _ := strconv.Atoi(m[2])
		ano, _ := strconv.Atoi(m[3])
		return NewCompetencia(mes, ano)
	}
	if m := mesAnoRegex.FindStringSubmatch(s); m != nil {
		mes, _ := strconv.Atoi(m[1])
		ano, _ := strconv.Atoi(m[2])
		if len(m[2]) == 2 {
			ano += 2000
		}
		return NewCompetencia(mes, ano)
	}
	if m := anoMesRegex.FindStringSubmatch(s); m != nil {
		ano, _ := strconv.Atoi(m[1])
		mes, _ := strconv.Atoi(m[2])
		return NewCompetencia(mes, ano)
	}
	if m := mesNomeAno.FindStringSubmatch(textnorm.Key(s)); m != nil {
		if mes, ok := mesesPorNome[m[1]]; ok {
			ano, _ := strconv.Atoi(m[2])
			if len(m[2]) == 2 {
				ano += 2000
			}
			return NewCompetencia(mes, ano)
		}
	}
	return Competencia{}, fmt.Errorf("invalid competência %q", s)
}

// FindCompetencia extracts the competência of a header line such as
// "Período: 01/01/2025 a 31/01/2025" (the last date wins) or
// "Competência: 01/2025".
func FindCompetencia(s string) (Competencia, bool) {
	if dates := dateInText.FindAllString(s, -1); len(dates) > 0 {
		c, err := ParseCompetencia(dates[len(dates)-1])
		return c, err == nil
	}
	if m := mesAnoText.FindString(s); m != "" {
		c, err := ParseCompetencia(m)
		return c, err == nil
	}
	return Competencia{}, false
}

// FindRange returns the first and last competência of a date range line.
func FindRange(s string) (from, to Competencia, ok bool) {
	dates := dateInText.FindAllString(s, -1)
	if len(dates) < 2 {
		return Competencia{}, Competencia{}, false
	}
	from, err1 := ParseCompetencia(dates[0])
	to, err2 := ParseCompetencia(dates[len(dates)-1])
	if err1 != nil || err2 != nil {
		return Competencia{}, Competencia{}, false
	}
	return from, to, true
}

// String returns the canonical "MM/YYYY" form.
func (c Competencia) String() string {
	return fmt.Sprintf("%02d/%04d", c.Mes, c.Ano)
}

// IsZero reports whether c is unset.
func (c Competencia) IsZero() bool {
	return c.Mes == 0 && c.Ano == 0
}

// MesNome returns the pt-BR month abbreviation ("Jan", "Fev", ...).
func (c Competencia) MesNome() string {
	if c.Mes < 1 || c.Mes > 12 {
		return ""
	}
	return mesesAbrev[c.Mes-1]
}

// Label returns the chart label "Jan/25".
func (c Competencia) Label() string {
	return fmt.Sprintf("%s/%02d", c.MesNome(), c.Ano%100)
}

// Trimestre returns the calendar quarter c falls in.
func (c Competencia) Trimestre() Trimestre {
	return Trimestre{Numero: (c.Mes-1)/3 + 1, Ano: c.Ano}
}

// Before reports whether c sorts before o.
func (c Competencia) Before(o Competencia) bool {
	return Compare(c, o) < 0
}

// Compare orders competências by (ano, mes).
func Compare(a, b Competencia) int {
	switch {
	case a.Ano != b.Ano:
		if a.Ano < b.Ano {
			return -1
		}
		return 1
	case a.Mes != b.Mes:
		if a.Mes < b.Mes {
			return -1
		}
		return 1
	}
	return 0
}

// Sort orders cs ascending in place.
func Sort(cs []Competencia) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Before(cs[j]) })
}

// SortKeys parses and sorts "MM/YYYY" keys ascending. Keys that do not
// parse sort last, in lexical order.
func SortKeys(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.SliceStable(out, func(i, j int) bool {
		a, errA := ParseCompetencia(out[i])
		b, errB := ParseCompetencia(out[j])
		switch {
		case errA != nil && errB != nil:
			return out[i] < out[j]
		case errA != nil:
			return false
		case errB != nil:
			return true
		}
		return a.Before(b)
	})
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (c Competencia) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return []byte{}, nil
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Competencia) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = Competencia{}
		return nil
	}
	parsed, err := ParseCompetencia(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
