package algorithm

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
)

// ID identifies an algorithm. It holds either an IANA COSE algorithm number
// (always negative in this registry) or a short string code used for the
// HMAC and DSA families, which have no IANA assignment here.
//
// ID is comparable and can be used as a map key. The zero ID is empty and
// never identifies a schema.
type ID struct {
	num    int64
	code   string
	isCode bool
}

// IANA returns the ID of a COSE algorithm number
func IANA(n int64) ID {
	return ID{num: n}
}

// Code returns the ID of a string-coded algorithm such as "HS256"
func Code(c string) ID {
	if c == "" {
		return ID{}
	}
	return ID{code: c, isCode: true}
}

// ParseID parses decimal text as an IANA number and anything else as a code.
func ParseID(s string) (ID, error) {
	if s == "" {
		return ID{}, errors.Wrap(ErrInvalidID, "empty identifier")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IANA(n), nil
	}
	return Code(s), nil
}

// IsZero reports whether the ID is empty.
func (id ID) IsZero() bool {
	return !id.isCode && id.num == 0
}

// IsIANA reports whether the ID is a COSE algorithm number.
func (id ID) IsIANA() bool {
	return !id.isCode && id.num != 0
}

// Int returns the COSE algorithm number and whether the ID is one.
func (id ID) Int() (int64, bool) {
	return id.num, id.IsIANA()
}

// Code returns the string code and whether the ID is one.
func (id ID) Code() (string, bool) {
	return id.code, id.isCode
}

func (id ID) String() string {
	if id.isCode {
		return id.code
	}
	return strconv.FormatInt(id.num, 10)
}

// Value returns the ID as a primitive: int64 for IANA ids, string for codes
// and nil for the zero ID.
func (id ID) Value() any {
	switch {
	case id.isCode:
		return id.code
	case id.num != 0:
		return id.num
	default:
		return nil
	}
}

// MarshalJSON encodes IANA ids as JSON numbers and codes as JSON strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.isCode {
		return json.Marshal(id.code)
	}
	if id.num == 0 {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(id.num, 10)), nil
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(ErrInvalidID, err.Error())
		}
		*id = Code(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return errors.Wrapf(ErrInvalidID, "%s", data)
	}
	*id = IANA(n)
	return nil
}

// MarshalYAML renders the ID as a YAML int or string.
func (id ID) MarshalYAML() (any, error) {
	return id.Value(), nil
}

// idOf converts a filter value into an ID. The second result is false for
// values that cannot name an algorithm.
func idOf(v any) (ID, bool) {
	switch x := v.(type) {
	case ID:
		return x, true
	case *ID:
		if x == nil {
			return ID{}, false
		}
		return *x, true
	case string:
		return Code(x), true
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return IANA(n), true
		}
	}
	if n, ok := toInt64(v); ok {
		return IANA(n), true
	}
	return ID{}, false
}
