package algorithm

// COSE curve identifiers as stored in the table.
const (
	CurveP384    Curve = 2
	CurveP521    Curve = 3
	CurveEd25519 Curve = 6
	CurveP256    Curve = 8
)

// ecdsaCurve names one curve in both conventions used by the table
type ecdsaCurve struct {
	crv        Curve
	schemeName string // secp256k1, secp384r1, secp521r1
	namedCurve string // P-256, P-384, P-521
}

var (
	p256 = ecdsaCurve{crv: CurveP256, schemeName: "secp256k1", namedCurve: "P-256"}
	p384 = ecdsaCurve{crv: CurveP384, schemeName: "secp384r1", namedCurve: "P-384"}
	p521 = ecdsaCurve{crv: CurveP521, schemeName: "secp521r1", namedCurve: "P-521"}
)

func newECDSA(alg int64, hash, webcryptoName, jwkAlg string, curve ecdsaCurve) Schema {
	return Schema{
		Family:        FamilyECDSA,
		Kty:           EC2,
		Alg:           IANA(alg),
		Crv:           curve.crv,
		Name:          "ECDSA",
		Hash:          hash,
		CrvSchemeName: curve.schemeName,
		NamedCurve:    curve.namedCurve,
		WebcryptoName: webcryptoName,
		JWKAlg:        jwkAlg,
	}
}

func newEdDSA(alg int64, hash, webcryptoName, jwkAlg string, crv Curve) Schema {
	return Schema{
		Family:        FamilyEdDSA,
		Kty:           EC2,
		Alg:           IANA(alg),
		Crv:           crv,
		Name:          "EdDSA",
		Hash:          hash,
		WebcryptoName: webcryptoName,
		JWKAlg:        jwkAlg,
	}
}

// newRSA builds a schema of either RSA family. The stored names differ:
// RSA-PSS keeps the WebCrypto "RSA-PSS", PKCS#1 keeps "RSASSA-PKCS1-v1_5".
func newRSA(family Family, alg int64, hash, webcryptoName, jwkAlg string) Schema {
	name := "RSA-PSS"
	if family == FamilyRSAPKCS1v1_5 {
		name = "RSASSA-PKCS1-v1_5"
	}
	return Schema{
		Family:        family,
		Kty:           RSA,
		Alg:           IANA(alg),
		Name:          name,
		Hash:          hash,
		WebcryptoName: webcryptoName,
		JWKAlg:        jwkAlg,
	}
}

// newCoded builds HMAC and DSA schemas, whose identifier is their JWA name.
func newCoded(family Family, code, hash, webcryptoName string) Schema {
	return Schema{
		Family:        family,
		Alg:           Code(code),
		Name:          string(family),
		Hash:          hash,
		WebcryptoName: webcryptoName,
		JWKAlg:        code,
	}
}

// table is the registry data in declaration order: IANA identifiers as
// listed by the COSE registry, then HMAC, then DSA.
//
// See https://www.iana.org/assignments/cose/cose.xhtml#algorithms
var table = []Schema{
	newECDSA(-7, "SHA-256", "ECDSA_w_SHA256", "ES256", p256),
	newEdDSA(-8, "SHA-256", "EdDSA_w_SHA256", "EdDSA", CurveEd25519),
	newECDSA(-35, "SHA-384", "ECDSA_w_SHA384", "ES384", p384),
	newECDSA(-36, "SHA-512", "ECDSA_w_SHA512", "ES512", p521),

	newRSA(FamilyRSAPSS, -37, "SHA-256", "RSASSA-PSS_w_SHA256", "PS256"),
	newRSA(FamilyRSAPSS, -38, "SHA-384", "RSASSA-PSS_w_SHA384", "PS384"),
	newRSA(FamilyRSAPSS, -39, "SHA-512", "RSASSA-PSS_w_SHA512", "PS512"),

	newRSA(FamilyRSAPKCS1v1_5, -257, "SHA-256", "RSASSA-PKCS1-v1_5_w_SHA256", "RS256"),
	newRSA(FamilyRSAPKCS1v1_5, -258, "SHA-384", "RSASSA-PKCS1-v1_5_w_SHA384", "RS384"),
	newRSA(FamilyRSAPKCS1v1_5, -259, "SHA-512", "RSASSA-PKCS1-v1_5_w_SHA512", "RS512"),
	newRSA(FamilyRSAPKCS1v1_5, -65535, "SHA-1", "RSASSA-PKCS1-v1_5_w_SHA1", "RS1"),

	newCoded(FamilyHMAC, "HS1", "SHA-1", "HMAC_w_SHA1"),
	newCoded(FamilyHMAC, "HS256", "SHA-256", "HMAC_w_SHA256"),
	newCoded(FamilyHMAC, "HS384", "SHA-384", "HMAC_w_SHA384"),
	newCoded(FamilyHMAC, "HS512", "SHA-512", "HMAC_w_SHA512"),

	newCoded(FamilyDSA, "DS1", "SHA-1", "DSA_w_SHA1"),
	newCoded(FamilyDSA, "DS256", "SHA-256", "DSA_w_SHA256"),
	newCoded(FamilyDSA, "DS384", "SHA-384", "DSA_w_SHA384"),
	newCoded(FamilyDSA, "DS512", "SHA-512", "DSA_w_SHA512"),
}
