package lang

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// EscapeText escapes s for use between double quotes.
//
// Each UTF-16 code unit that is '"', '\\', or outside printable ASCII
// [32,126] is written as \x followed by its lowercase hex value, zero-padded
// to two digits. Code units above 0xFF produce more than two digits and do
// not survive a parse, which reads exactly two.
func EscapeText(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, u := range utf16.Encode([]rune(s)) {
		if u == '"' || u == '\\' || u < 32 || u > 126 {
			b.WriteString(`\x`)

			if u < 0x10 {
				b.WriteByte('0')
			}

			b.WriteString(strconv.FormatUint(uint64(u), 16))

			continue
		}

		b.WriteByte(byte(u))
	}

	return b.String()
}

// FormatNumber renders f as the shortest decimal literal that parses back
// to f. Non-finite values and negative zero render as "0".
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return "0"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBoolean(b bool) string {
	if b {
		return "@1"
	}

	return "@0"
}

// toNumber converts the numeric representations an item value may hold.
// Non-finite values are rejected.
func toNumber(v any) (float64, bool) {
	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		var err error

		f, err = n.Float64()
		if err != nil {
			return 0, false
		}

	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}
