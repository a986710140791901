package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// CardNumber is the travel card number as sent by the client.
//
// Browsers post it either as a JSON number or as a string, so the raw value
// is kept and interpreted with the same loose rules a JavaScript frontend
// would apply: see Truthy and Int.
type CardNumber struct {
	raw json.RawMessage
}

// NewCardNumber wraps a raw JSON value.
func NewCardNumber(raw string) CardNumber {
	return CardNumber{raw: json.RawMessage(raw)}
}

// UnmarshalJSON keeps the raw value. Any syntactically valid JSON value is
// accepted; interpretation happens in Truthy and Int.
func (n *CardNumber) UnmarshalJSON(data []byte) error {
	n.raw = append(n.raw[:0], data...)
	return nil
}

// MarshalJSON writes the raw value back, or null when the field was absent.
func (n CardNumber) MarshalJSON() ([]byte, error) {
	if len(n.raw) == 0 {
		return []byte("null"), nil
	}
	return n.raw, nil
}

// IsSet reports whether the field was present in the request at all.
func (n CardNumber) IsSet() bool {
	return len(n.raw) > 0
}

// String returns the raw JSON text, used for logging.
func (n CardNumber) String() string {
	return string(n.raw)
}

// Truthy reports whether the value counts as provided.
//
// Missing, null, false, numeric zero and the empty string are not. Every
// other value is, including non-numeric strings, objects and arrays.
func (n CardNumber) Truthy() bool {
	return IsTruthy(n.raw)
}

// Int parses the value the way JavaScript's parseInt does: numbers are
// first turned into their decimal text, then leading whitespace, an
// optional sign, an optional 0x prefix and the longest run of digits are
// read. ok is false when no digits could be read or the result does not fit
// into an int64.
func (n CardNumber) Int() (value int64, ok bool) {
	raw := bytes.TrimSpace(n.raw)
	if len(raw) == 0 {
		return 0, false
	}

	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return 0, false
		}
		text = numberText(f)
	default:
		// true, false, null, objects and arrays have no leading digits.
		return 0, false
	}

	return parseInt(text)
}

// Ptr returns the parsed value as a pointer, nil when Int fails. A nil
// pointer is encoded as JSON null.
func (n CardNumber) Ptr() *int64 {
	v, ok := n.Int()
	if !ok {
		return nil
	}
	return &v
}

// numberText mirrors JavaScript number-to-string conversion closely enough
// for parseInt: plain decimal inside [1e-6, 1e21), exponent form outside.
func numberText(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// isJSWhitespace reports whether r is skipped before a number: the Zs
// spaces, BOM and the ASCII and Unicode line breaks.
func isJSWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func parseInt(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, isJSWhitespace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	v, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}

// IsTruthy applies JavaScript truthiness to a raw JSON value. An empty
// value (field absent) is falsy.
func IsTruthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}

	switch raw[0] {
	case 'n', 'f':
		// null, false
		return false
	case 't', '{', '[':
		return true
	case '"':
		return !bytes.Equal(raw, []byte(`""`))
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return true
	}
	return f != 0
}
