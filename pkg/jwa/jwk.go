package jwa

import (
	"crypto/ed25519"

	"github.com/cockroachdb/errors"
	"github.com/rakutentech/jwk-go/jwk"
	"github.com/rakutentech/jwk-go/jwktypes"
	"github.com/rakutentech/jwk-go/okp"

	"github.com/alexadamm/algo-registry/pkg/algorithm"
)

// FromJWK parses a JSON Web Key and returns the schema it is meant for.
func FromJWK(data []byte) (algorithm.Schema, error) {
	spec, err := jwk.ParseBytes(data)
	if err != nil {
		return algorithm.Schema{}, errors.Wrap(ErrInvalidJWK, err.Error())
	}
	return FromKeySpec(spec)
}

// FromKeySpec returns the schema for a parsed key.
//
// A key naming its "alg" resolves to that algorithm. Otherwise the schema is
// inferred from the key: EC keys by curve, RSA keys to the first RSA keyed
// entry, Ed25519 keys to EdDSA and symmetric keys to HS256. The key must
// pass the schema's KeyCheck.
func FromKeySpec(spec *jwk.KeySpec) (algorithm.Schema, error) {
	if spec == nil || spec.Key == nil {
		return algorithm.Schema{}, errors.Wrap(ErrInvalidJWK, "no key")
	}

	var (
		s   algorithm.Schema
		err error
	)
	if spec.Algorithm != "" {
		s, err = byJWKAlg(spec.Algorithm)
	} else {
		s, err = inferSchema(spec)
	}
	if err != nil {
		return algorithm.Schema{}, err
	}

	if err := s.KeyCheck(CryptoKey(spec)); err != nil {
		return algorithm.Schema{}, errors.Wrapf(err, "key %q", spec.KeyID)
	}
	return s, nil
}

func inferSchema(spec *jwk.KeySpec) (algorithm.Schema, error) {
	kty, curve, _ := spec.KeyType()

	var f algorithm.Filter
	switch kty {
	case jwktypes.EC:
		f = algorithm.Filter{algorithm.FieldFamily: algorithm.FamilyECDSA, algorithm.FieldNamedCurve: curve}
	case jwktypes.RSA:
		f = algorithm.Filter{algorithm.FieldKty: algorithm.RSA}
	case jwktypes.OKP:
		if curve != "Ed25519" {
			return algorithm.Schema{}, errors.Wrapf(ErrNoMatch, "OKP curve %q", curve)
		}
		f = algorithm.Filter{algorithm.FieldFamily: algorithm.FamilyEdDSA}
	case jwktypes.OctetKey:
		f = algorithm.Filter{algorithm.FieldFamily: algorithm.FamilyHMAC, algorithm.FieldHash: "SHA-256"}
	default:
		return algorithm.Schema{}, errors.Wrapf(ErrNoMatch, "key type %T", spec.Key)
	}

	s, ok := algorithm.By(f)
	if !ok {
		return algorithm.Schema{}, errors.Wrapf(ErrNoMatch, "%s key on curve %q", kty, curve)
	}
	return s, nil
}

// CryptoKey returns the key of spec as a standard library key where one
// exists. Ed25519 octet key pairs become ed25519 keys; other keys are
// returned as parsed.
func CryptoKey(spec *jwk.KeySpec) any {
	kp, ok := spec.Key.(okp.CurveOctetKeyPair)
	if !ok || kp.Curve() != "Ed25519" {
		return spec.Key
	}
	switch priv := kp.PrivateKey(); len(priv) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(priv)
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(priv)
	}
	return ed25519.PublicKey(kp.PublicKey())
}
