package textnorm

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Encoding names the byte encoding of an export file.
type Encoding string

const (
	EncodingAuto        Encoding = "auto"
	EncodingUTF8        Encoding = "utf-8"
	EncodingISO88591    Encoding = "iso-8859-1"
	EncodingWindows1252 Encoding = "windows-1252"
)

// ErrInvalidUTF8 is returned when utf-8 is forced on non-UTF-8 input.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseEncoding maps a config value to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return EncodingAuto, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "iso-8859-1", "latin1", "latin-1":
		return EncodingISO88591, nil
	case "windows-1252", "cp1252":
		return EncodingWindows1252, nil
	default:
		return "", fmt.Errorf("unknown encoding %q", s)
	}
}

// Decode converts raw export bytes to a string. Auto keeps valid UTF-8
// and otherwise assumes ISO-8859-1, which is what Domínio writes.
func Decode(raw []byte, enc Encoding) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var dec *encoding.Decoder
	switch enc {
	case EncodingAuto, "":
		if utf8.Valid(raw) {
			return string(raw), nil
		}
		dec = charmap.ISO8859_1.NewDecoder()
	case EncodingUTF8:
		if !utf8.Valid(raw) {
			return "", ErrInvalidUTF8
		}
		return string(raw), nil
	case EncodingISO88591:
		dec = charmap.ISO8859_1.NewDecoder()
	case EncodingWindows1252:
		dec = charmap.Windows1252.NewDecoder()
	default:
		return "", fmt.Errorf("unknown encoding %q", enc)
	}

	out, err := dec.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", enc, err)
	}
	return string(out), nil
}
