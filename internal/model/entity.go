package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidEntity is returned for entity ids that are neither a CNPJ nor
// path safe.
var ErrInvalidEntity = errors.New("invalid entity id")

var (
	cnpjPunct     = regexp.MustCompile(`[.\-/\s]`)
	entityIDRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

// NormalizeEntityID returns the storage key of a legal entity. A CNPJ in
// any punctuation ("12.345.678/0001-90") becomes its 14 digits; other ids
// must already be path safe.
func NormalizeEntityID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidEntity)
	}
	if digits := cnpjPunct.ReplaceAllString(id, ""); len(digits) == 14 && isDigits(digits) {
		return digits, nil
	}
	if !entityIDRegex.MatchString(id) || id == "." || id == ".." {
		return "", fmt.Errorf("%w %q", ErrInvalidEntity, id)
	}
	return id, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
