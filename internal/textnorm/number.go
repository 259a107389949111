package textnorm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyNumber is returned for blank cells and lone dashes.
var ErrEmptyNumber = errors.New("empty number")

// Nature is the debit/credit marker printed after trial-balance amounts.
type Nature string

const (
	NatureNone   Nature = ""
	NatureDebit  Nature = "D"
	NatureCredit Nature = "C"
)

// ParseNumber parses an amount the way Domínio prints it ("1.234,56"),
// tolerating "R$", parentheses and leading/trailing minus signs. An
// anglo "1,234.56" is also accepted.
func ParseNumber(val string) (decimal.Decimal, error) {
	s := strings.TrimSpace(val)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == "-" {
		return decimal.Zero, ErrEmptyNumber
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "-") {
		neg = !neg
		s = s[1:]
	} else if strings.HasSuffix(s, "-") {
		neg = !neg
		s = s[:len(s)-1]
	}
	if s == "" {
		return decimal.Zero, ErrEmptyNumber
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastDot > lastComma && lastComma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case lastDot >= 0:
		// Only dots: several, or a single one followed by exactly three
		// digits, are thousand separators.
		if strings.Count(s, ".") > 1 || len(s)-lastDot-1 == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return decimal.Zero, fmt.Errorf("invalid number %q", val)
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", val, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// ParseBalance parses a trial-balance amount with an optional trailing
// D/C marker. Credit balances are returned negative.
func ParseBalance(val string) (decimal.Decimal, Nature, error) {
	s := strings.TrimSpace(val)
	nature := NatureNone
	if n := len(s); n > 0 {
		switch s[n-1] {
		case 'D', 'd':
			nature = NatureDebit
			s = s[:n-1]
		case 'C', 'c':
			nature = NatureCredit
			s = s[:n-1]
		}
	}
	d, err := ParseNumber(s)
	if err != nil {
		return decimal.Zero, nature, err
	}
	if nature == NatureCredit {
		d = d.Abs().Neg()
	}
	return d, nature, nil
}

// ParseInt parses a count or day column ("30" or "30,00").
func ParseInt(val string) (int, error) {
	d, err := ParseNumber(val)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("expected integer, got %q", val)
	}
	return int(d.IntPart()), nil
}

// IsNumber reports whether val parses as an amount.
func IsNumber(val string) bool {
	_, err := ParseNumber(val)
	return err == nil
}
