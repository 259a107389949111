package period

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/textnorm"
)

// Trimestre is a fiscal quarter. Ano is 0 when the year is unknown.
type Trimestre struct {
	Numero int `json:"numero"`
	Ano    int `json:"ano,omitempty"`
}

var (
	trimestreRegex = regexp.MustCompile(`\b([1-4])\s*(?:O\s+)?TRIMESTRE(?:\s*(?:/|DE)?\s*(\d{4}))?`)
	tNumRegex      = regexp.MustCompile(`\bT([1-4])(?:\s*/\s*(\d{4}))?\b`)
)

// NewTrimestre validates the quarter number.
func NewTrimestre(numero, ano int) (Trimestre, error) {
	if numero < 1 || numero > 4 {
		return Trimestre{}, fmt.Errorf("invalid trimestre %d", numero)
	}
	if ano != 0 && (ano < 1900 || ano > 9999) {
		return Trimestre{}, fmt.Errorf("invalid year %d", ano)
	}
	return Trimestre{Numero: numero, Ano: ano}, nil
}

// ParseTrimestre finds a quarter in text such as "3º Trimestre/2025",
// "3 TRIMESTRE DE 2025" or "T3/2025".
func ParseTrimestre(s string) (Trimestre, bool) {
	k := textnorm.Key(s)
	if m := trimestreRegex.FindStringSubmatch(k); m != nil {
		return trimestreFromMatch(m[1], m[2])
	}
	if m := tNumRegex.FindStringSubmatch(k); m != nil {
		return trimestreFromMatch(m[1], m[2])
	}
	return Trimestre{}, false
}

func trimestreFromMatch(num, year string) (Trimestre, bool) {
	n, _ := strconv.Atoi(num)
	ano := 0
	if year != "" {
		ano, _ = strconv.Atoi(year)
	}
	t, err := NewTrimestre(n, ano)
	return t, err == nil
}

// TrimestreFromRange returns the quarter containing both competências,
// or false when the range spans more than one quarter.
func TrimestreFromRange(from, to Competencia) (Trimestre, bool) {
	a, b := from.Trimestre(), to.Trimestre()
	if a != b {
		return Trimestre{}, false
	}
	return a, true
}

// TrimestreFromMeses returns the quarter holding every month in meses,
// such as the month column headings of a quarterly computation.
func TrimestreFromMeses(meses []int, ano int) (Trimestre, bool) {
	if len(meses) == 0 {
		return Trimestre{}, false
	}
	for n := 1; n <= 4; n++ {
		t := Trimestre{Numero: n, Ano: ano}
		if containsAll(t.Meses(), meses) {
			return t, true
		}
	}
	return Trimestre{}, false
}

func containsAll(set, items []int) bool {
	for _, m := range items {
		found := false
		for _, s := range set {
			if s == m {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsZero reports whether t is unset.
func (t Trimestre) IsZero() bool {
	return t.Numero == 0
}

// String returns "3º Trimestre/2025" or "3º Trimestre".
func (t Trimestre) String() string {
	if t.IsZero() {
		return ""
	}
	label := fmt.Sprintf("%dº Trimestre", t.Numero)
	if t.Ano != 0 {
		label += "/" + strconv.Itoa(t.Ano)
	}
	return label
}

// Meses returns the calendar months of the quarter.
func (t Trimestre) Meses() []int {
	if t.IsZero() {
		return nil
	}
	first := (t.Numero-1)*3 + 1
	return []int{first, first + 1, first + 2}
}

// CompareTrimestre orders quarters by (ano, numero).
func CompareTrimestre(a, b Trimestre) int {
	switch {
	case a.Ano != b.Ano:
		if a.Ano < b.Ano {
			return -1
		}
		return 1
	case a.Numero != b.Numero:
		if a.Numero < b.Numero {
			return -1
		}
		return 1
	}
	return 0
}

// Ordinal strips the "º" from user input like "3º" before parsing.
func Ordinal(s string) (int, error) {
	s = strings.TrimSpace(strings.TrimRight(s, "ºo°"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid trimestre %q: %w", s, err)
	}
	if n < 1 || n > 4 {
		return 0, fmt.Errorf("invalid trimestre %d", n)
	}
	return n, nil
}
