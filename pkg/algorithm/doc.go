/*
Package algorithm is a registry of signature algorithm metadata keyed by the
identifiers used in COSE, JOSE/JWA and WebCrypto.

The registry is a fixed table built at init and never modified. Lookups are
plain reads and are safe for concurrent use without locking.

Supported Algorithms:
- ECDSA
  - -7   ES256 (P-256 + SHA-256)
  - -35  ES384 (P-384 + SHA-384)
  - -36  ES512 (P-521 + SHA-512)

- EdDSA
  - -8   EdDSA (Ed25519)

- RSA-PSS
  - -37  PS256, -38 PS384, -39 PS512

- RSASSA-PKCS1-v1_5
  - -257 RS256, -258 RS384, -259 RS512, -65535 RS1

- HMAC
  - HS1, HS256, HS384, HS512

- DSA (not IANA registered)
  - DS1, DS256, DS384, DS512

Exact lookup:

	s, ok := algorithm.ByID(algorithm.IANA(-7))

Partial-match lookup returns the first schema in declaration order whose
fields equal every field of the filter:

	s, ok := algorithm.By(algorithm.Filter{algorithm.FieldKty: algorithm.RSA})
	// s.WebcryptoName == "RSASSA-PSS_w_SHA256"

A filter holding a non-empty alg is an exact lookup; its other fields are
ignored. Absence is reported by the boolean result, never by an error.
*/
package algorithm
