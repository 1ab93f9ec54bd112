package algorithm

import (
	"crypto/dsa" //nolint:staticcheck // DSA schemas need to recognise DSA keys.
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"

	"github.com/cockroachdb/errors"
)

// KeyTypeOf returns the COSE key type of a Go key value.
// Ed25519 keys report OKP, ECDSA keys EC2 and RSA keys RSA.
func KeyTypeOf(key any) (KeyType, error) {
	switch key.(type) {
	case *ecdsa.PublicKey, *ecdsa.PrivateKey:
		return EC2, nil
	case *rsa.PublicKey, *rsa.PrivateKey:
		return RSA, nil
	case ed25519.PublicKey, ed25519.PrivateKey:
		return OKP, nil
	}
	return 0, errors.Wrapf(ErrInvalidKeyType, "%T", key)
}

// KeyCheck validates that key can be used with the schema
func (s Schema) KeyCheck(key any) error {
	switch s.Family {
	case FamilyECDSA:
		var pub *ecdsa.PublicKey
		switch k := key.(type) {
		case *ecdsa.PublicKey:
			pub = k
		case *ecdsa.PrivateKey:
			pub = &k.PublicKey
		}
		if pub == nil || pub.Curve == nil {
			return s.keyError(key)
		}
		if name := pub.Curve.Params().Name; name != s.NamedCurve {
			return errors.Wrapf(ErrInvalidKeyType, "%s needs curve %s, got %s", s.JWKAlg, s.NamedCurve, name)
		}
	case FamilyEdDSA:
		switch k := key.(type) {
		case ed25519.PublicKey:
			if len(k) != ed25519.PublicKeySize {
				return s.keyError(key)
			}
		case ed25519.PrivateKey:
			if len(k) != ed25519.PrivateKeySize {
				return s.keyError(key)
			}
		default:
			return s.keyError(key)
		}
	case FamilyRSAPSS, FamilyRSAPKCS1v1_5:
		if kt, err := KeyTypeOf(key); err != nil || kt != RSA {
			return s.keyError(key)
		}
	case FamilyHMAC:
		if k, ok := key.([]byte); !ok || len(k) == 0 {
			return s.keyError(key)
		}
	case FamilyDSA:
		switch key.(type) {
		case *dsa.PublicKey, *dsa.PrivateKey:
		default:
			return s.keyError(key)
		}
	default:
		return s.keyError(key)
	}
	return nil
}

func (s Schema) keyError(key any) error {
	return errors.Wrapf(ErrInvalidKeyType, "%s cannot use %T", s.JWKAlg, key)
}
