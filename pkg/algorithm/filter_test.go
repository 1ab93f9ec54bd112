package algorithm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter([]string{"name=DSA", "hash=SHA-1", "crv=3"})
	require.NoError(t, err)
	assert.Equal(t, Filter{FieldName: "DSA", FieldHash: "SHA-1", FieldCrv: int64(3)}, f)

	_, err = ParseFilter([]string{"name"})
	require.Error(t, err)

	_, err = ParseFilter([]string{"=x"})
	require.Error(t, err)

	f, err = ParseFilter(nil)
	require.NoError(t, err)
	assert.Empty(t, f)
}

func TestFilterFromJSON(t *testing.T) {
	var f Filter
	require.NoError(t, json.Unmarshal([]byte(`{"kty": 3, "hash": "SHA-512"}`), &f))

	s, ok := By(f)
	require.True(t, ok)
	assert.Equal(t, "RSASSA-PSS_w_SHA512", s.WebcryptoName)

	d := json.NewDecoder(strings.NewReader(`{"alg": -259}`))
	d.UseNumber()
	f = nil
	require.NoError(t, d.Decode(&f))

	s, ok = By(f)
	require.True(t, ok)
	assert.Equal(t, "RS512", s.JWKAlg)
}

func TestFilterAlgNumberForms(t *testing.T) {
	for _, doc := range []string{`{"alg": -7}`, `{"alg": -7.0}`, `{"alg": -7e0}`} {
		t.Run(doc, func(t *testing.T) {
			for _, useNumber := range []bool{false, true} {
				d := json.NewDecoder(strings.NewReader(doc))
				if useNumber {
					d.UseNumber()
				}
				var f Filter
				require.NoError(t, d.Decode(&f))

				s, ok := By(f)
				require.True(t, ok, "UseNumber=%v", useNumber)
				assert.Equal(t, "ES256", s.JWKAlg)
			}
		})
	}

	_, ok := By(Filter{FieldAlg: json.Number("-7.5")})
	assert.False(t, ok)
	_, ok = By(Filter{FieldAlg: json.Number("not a number")})
	assert.False(t, ok)
}

func TestFilterOf(t *testing.T) {
	s, ok := ByID(IANA(-8))
	require.True(t, ok)

	assert.Equal(t, Filter{
		FieldFamily:        "EdDSA",
		FieldAlg:           int64(-8),
		FieldName:          "EdDSA",
		FieldHash:          "SHA-256",
		FieldWebcryptoName: "EdDSA_w_SHA256",
		FieldJWKAlg:        "EdDSA",
		FieldKty:           EC2,
		FieldCrv:           CurveEd25519,
	}, FilterOf(s))
}

func TestEqualValue(t *testing.T) {
	assert.True(t, equalValue(EC2, 2))
	assert.True(t, equalValue(EC2, int8(2)))
	assert.True(t, equalValue(EC2, uint(2)))
	assert.True(t, equalValue(Curve(8), json.Number("8")))
	assert.True(t, equalValue("P-256", "P-256"))
	assert.True(t, equalValue(int64(-7), IANA(-7)))
	assert.True(t, equalValue("HS1", Code("HS1")))
	assert.False(t, equalValue("2", 2))
	assert.False(t, equalValue(EC2, "2"))
	assert.False(t, equalValue(EC2, nil))
	assert.False(t, equalValue("P-256", "p-256"))
	assert.False(t, equalValue(EC2, true))
}
