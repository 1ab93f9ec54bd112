package jwa

import (
	"github.com/cockroachdb/errors"
	"github.com/cristalhq/jwt/v5"

	"github.com/alexadamm/algo-registry/pkg/algorithm"
)

// JWTAlgorithm returns the cristalhq/jwt algorithm for a schema.
func JWTAlgorithm(s algorithm.Schema) (jwt.Algorithm, error) {
	switch s.JWKAlg {
	case "ES256":
		return jwt.ES256, nil
	case "ES384":
		return jwt.ES384, nil
	case "ES512":
		return jwt.ES512, nil
	case "EdDSA":
		return jwt.EdDSA, nil
	case "PS256":
		return jwt.PS256, nil
	case "PS384":
		return jwt.PS384, nil
	case "PS512":
		return jwt.PS512, nil
	case "RS256":
		return jwt.RS256, nil
	case "RS384":
		return jwt.RS384, nil
	case "RS512":
		return jwt.RS512, nil
	case "HS256":
		return jwt.HS256, nil
	case "HS384":
		return jwt.HS384, nil
	case "HS512":
		return jwt.HS512, nil
	}
	return "", errors.Wrapf(ErrNoEquivalent, "cristalhq/jwt has no algorithm for %s", s.JWKAlg)
}

// FromJWTAlgorithm returns the schema for a cristalhq/jwt algorithm, e.g. the
// Algorithm field of a parsed token header.
func FromJWTAlgorithm(alg jwt.Algorithm) (algorithm.Schema, error) {
	return byJWKAlg(string(alg))
}
