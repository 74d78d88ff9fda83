package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Score files come from Python tools, so the parser accepts what
// json.load accepts: NaN and ±Infinity literals, and repeated keys where
// the last value wins at the position of the first. Keys starting with $
// are plain names.

var nonFinite = []struct {
	literal []byte
	quoted  []byte
	value   float64
}{
	{[]byte("-Infinity"), []byte(`"\u0000-Infinity"`), math.Inf(-1)},
	{[]byte("Infinity"), []byte(`"\u0000Infinity"`), math.Inf(1)},
	{[]byte("NaN"), []byte(`"\u0000NaN"`), math.NaN()},
}

func parseScores(b []byte) (bson.D, error) {
	dec := json.NewDecoder(bytes.NewReader(quoteNonFinite(b)))
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, errors.New("top-level value is not an object")
	}

	scores, err := parseObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("extra data after object")
	}
	return scores, nil
}

// parseObject reads members up to and including the closing brace.
func parseObject(dec *json.Decoder) (bson.D, error) {
	doc := bson.D{}
	index := map[string]int{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}

		if i, ok := index[key]; ok {
			doc[i].Value = value
			continue
		}
		index[key] = len(doc)
		doc = append(doc, bson.E{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseArray(dec *json.Decoder) (bson.A, error) {
	arr := bson.A{}
	for dec.More() {
		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if t == '{' {
			return parseObject(dec)
		}
		if t == '[' {
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected %v", t)
	case json.Number:
		return parseNumber(t)
	case string:
		for _, nf := range nonFinite {
			if t == "\x00"+string(nf.literal) {
				return nf.value, nil
			}
		}
		return t, nil
	default:
		// bool or nil
		return t, nil
	}
}

// parseNumber maps integers to int32 or int64 the way pymongo stores
// Python ints, and everything else to a double.
func parseNumber(n json.Number) (any, error) {
	if i, err := n.Int64(); err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i), nil
		}
		return i, nil
	}
	f, err := n.Float64()
	if err != nil && !math.IsInf(f, 0) {
		return nil, err
	}
	return f, nil
}

// quoteNonFinite turns bare NaN and Infinity literals into marker strings
// that parseValue maps back to doubles. String contents are left alone.
func quoteNonFinite(b []byte) []byte {
	out := make([]byte, 0, len(b))
	inString, escaped := false, false

	for i := 0; i < len(b); i++ {
		c := b[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}

		matched := false
		for _, nf := range nonFinite {
			if bytes.HasPrefix(b[i:], nf.literal) {
				out = append(out, nf.quoted...)
				i += len(nf.literal) - 1
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, c)
		}
	}
	return out
}
