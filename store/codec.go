package store

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/modulista/lang"
)

// encodeValue serializes an item value for storage.
func encodeValue(it lang.Item) (string, error) {
	if it.Type.IsContainer() {
		return "null", nil
	}

	data, err := json.Marshal(it.Value)
	if err != nil {
		return "", ErrEncodeValue.With(
			slog.String("name", it.Name),
			slog.String("type", it.Type.String()),
		).Wrap(err)
	}

	return string(data), nil
}

// decodeValue restores a stored value into the Go type the item type
// expects.
func decodeValue(typ lang.ItemType, raw string) (any, error) {
	if typ.IsContainer() || raw == "" || raw == "null" {
		return nil, nil
	}

	var (
		v   any
		err error
	)

	switch typ {
	case lang.TypeText, lang.TypeReference, lang.TypeComment:
		var s string
		err, v = json.Unmarshal([]byte(raw), &s), s

	case lang.TypeNumber:
		var f float64
		err, v = json.Unmarshal([]byte(raw), &f), f

	case lang.TypeBoolean:
		var b bool
		err, v = json.Unmarshal([]byte(raw), &b), b

	case lang.TypeFunction:
		var fn lang.Function
		err, v = json.Unmarshal([]byte(raw), &fn), fn

	case lang.TypeConditional:
		v, err = decodeConditional(raw)

	default:
		err = json.Unmarshal([]byte(raw), &v)
	}

	if err != nil {
		return nil, ErrDecodeValue.With(
			slog.String("type", typ.String()),
			slog.String("value", raw),
		).Wrap(err)
	}

	return v, nil
}

// decodeConditional accepts the stored object form or a bare string holding
// the raw expression.
func decodeConditional(raw string) (lang.Conditional, error) {
	var s string
	if json.Unmarshal([]byte(raw), &s) == nil {
		return lang.Conditional{Raw: s}, nil
	}

	var c lang.Conditional
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return c, err
	}

	c.Structured = c.Raw == ""

	return c, nil
}

// Digest returns a content hash of the item's type and value. Items with
// equal digests render identically.
func Digest(it lang.Item) uint64 {
	enc, err := encodeValue(it)
	if err != nil {
		enc = it.StringValue()
	}

	return xxh3.HashString(strconv.Itoa(int(it.Type)) + "\x00" + enc)
}
