package algorithm

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Filter is a partial schema: field name to required value. Keys are the
// Field* constants. Keys a schema does not carry, including unknown keys,
// never match.
type Filter map[string]any

// Match reports whether every key of the filter is carried by s with an
// equal value. An empty filter matches every schema.
func (f Filter) Match(s Schema) bool {
	for key, want := range f {
		have, ok := s.Field(key)
		if !ok || !equalValue(have, want) {
			return false
		}
	}
	return true
}

// alg returns the filter's alg value when it is set and non-empty.
func (f Filter) alg() (any, bool) {
	v, ok := f[FieldAlg]
	if !ok || isEmpty(v) {
		return nil, false
	}
	return v, true
}

// FilterOf returns a filter holding every field s carries.
func FilterOf(s Schema) Filter {
	f := Filter{}
	for _, key := range []string{
		FieldFamily, FieldAlg, FieldName, FieldHash, FieldWebcryptoName,
		FieldJWKAlg, FieldKty, FieldCrv, FieldCrvSchemeName, FieldNamedCurve,
	} {
		if v, ok := s.Field(key); ok {
			f[key] = v
		}
	}
	return f
}

// ParseFilter builds a filter from "key=value" pairs. Values that parse as
// integers are stored as int64, everything else as strings.
func ParseFilter(pairs []string) (Filter, error) {
	f := Filter{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.Newf("invalid filter term %q, expected key=value", pair)
		}
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			f[key] = n
			continue
		}
		f[key] = value
	}
	return f, nil
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case ID:
		return x.IsZero()
	case *ID:
		return x == nil || x.IsZero()
	case bool:
		return !x
	}
	if n, ok := toFloat(v); ok {
		return n == 0
	}
	return false
}

// equalValue compares two primitives. Numbers compare by value regardless
// of their Go kind; strings compare exactly; mixed kinds are never equal.
func equalValue(have, want any) bool {
	if id, ok := want.(ID); ok {
		want = id.Value()
	}
	if hs, ok := toString(have); ok {
		ws, ok := toString(want)
		return ok && hs == ws
	}
	hn, ok := toFloat(have)
	if !ok {
		return false
	}
	wn, ok := toFloat(want)
	return ok && hn == wn
}

func toString(v any) (string, bool) {
	if _, ok := v.(json.Number); ok {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

func toFloat(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f)
	}
	return 0, false
}

func toInt64(v any) (int64, bool) {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}
