package report

import (
	"errors"
	"fmt"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("parse error")

// ParseError reports malformed input. Line is 1-based, 0 when the problem
// is not tied to a line (a missing header, an empty file).
type ParseError struct {
	Family model.Family
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Family, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Family, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }
