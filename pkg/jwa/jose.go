package jwa

import (
	"github.com/cockroachdb/errors"
	jose "github.com/go-jose/go-jose/v4"

	"github.com/alexadamm/algo-registry/pkg/algorithm"
)

// joseAlgorithms lists the go-jose signature algorithms with a registry
// entry. HS1, RS1 and the DSA family have no go-jose equivalent.
var joseAlgorithms = []jose.SignatureAlgorithm{
	jose.ES256,
	jose.EdDSA,
	jose.ES384,
	jose.ES512,
	jose.PS256,
	jose.PS384,
	jose.PS512,
	jose.RS256,
	jose.RS384,
	jose.RS512,
	jose.HS256,
	jose.HS384,
	jose.HS512,
}

// JOSEAlgorithms returns the go-jose algorithms the registry can describe,
// in registry order.
func JOSEAlgorithms() []jose.SignatureAlgorithm {
	out := make([]jose.SignatureAlgorithm, len(joseAlgorithms))
	copy(out, joseAlgorithms)
	return out
}

// SignatureAlgorithm returns the go-jose algorithm for a schema.
func SignatureAlgorithm(s algorithm.Schema) (jose.SignatureAlgorithm, error) {
	for _, alg := range joseAlgorithms {
		if string(alg) == s.JWKAlg {
			return alg, nil
		}
	}
	return "", errors.Wrapf(ErrNoEquivalent, "go-jose has no algorithm for %s", s.JWKAlg)
}

// FromSignatureAlgorithm returns the schema for a go-jose algorithm.
func FromSignatureAlgorithm(alg jose.SignatureAlgorithm) (algorithm.Schema, error) {
	return byJWKAlg(string(alg))
}

func byJWKAlg(name string) (algorithm.Schema, error) {
	if name == "" {
		return algorithm.Schema{}, errors.Wrap(ErrNoMatch, "empty algorithm name")
	}
	s, ok := algorithm.By(algorithm.Filter{algorithm.FieldJWKAlg: name})
	if !ok {
		return algorithm.Schema{}, errors.Wrapf(ErrNoMatch, "algorithm %q", name)
	}
	return s, nil
}
