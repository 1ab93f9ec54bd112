package algorithm

import (
	"crypto"
	"strconv"
)

// Family is the discriminant of a Schema
type Family string

const (
	FamilyHMAC         Family = "HMAC"
	FamilyRSAPKCS1v1_5 Family = "RSA-PKCS1v1_5"
	FamilyRSAPSS       Family = "RSA-PSS"
	FamilyECDSA        Family = "ECDSA"
	FamilyEdDSA        Family = "EdDSA"
	FamilyDSA          Family = "DSA"
)

// Families lists every family in a fixed order.
var Families = []Family{
	FamilyHMAC, FamilyRSAPKCS1v1_5, FamilyRSAPSS, FamilyECDSA, FamilyEdDSA, FamilyDSA,
}

func (f Family) String() string {
	return string(f)
}

// KeyType is the COSE key type (kty) of an algorithm
type KeyType int

// Key type codes usable in filters, e.g. Filter{FieldKty: RSA}.
const (
	OKP KeyType = 1 // Octet Key Pair
	EC2 KeyType = 2 // Elliptic curve with x and y coordinates
	RSA KeyType = 3
)

// KeyTypes returns the key type codes in ascending order.
func KeyTypes() []KeyType {
	return []KeyType{OKP, EC2, RSA}
}

func (k KeyType) String() string {
	switch k {
	case OKP:
		return "OKP"
	case EC2:
		return "EC2"
	case RSA:
		return "RSA"
	}
	return "KeyType(" + strconv.Itoa(int(k)) + ")"
}

// Curve is a COSE elliptic curve identifier
type Curve int

// Schema is the metadata of one signature algorithm.
//
// Kty, Crv, CrvSchemeName and NamedCurve are optional: their zero value means
// the family does not carry the field. Which fields a family carries is
// checked by NewRegistry.
type Schema struct {
	Family        Family  `json:"family" yaml:"family"`
	Alg           ID      `json:"alg" yaml:"alg"`
	Name          string  `json:"name" yaml:"name"`
	Hash          string  `json:"hash" yaml:"hash"`
	WebcryptoName string  `json:"webcryptoName" yaml:"webcryptoName"`
	JWKAlg        string  `json:"jwkAlg" yaml:"jwkAlg"`
	Kty           KeyType `json:"kty,omitempty" yaml:"kty,omitempty"`
	Crv           Curve   `json:"crv,omitempty" yaml:"crv,omitempty"`
	CrvSchemeName string  `json:"crvSchemeName,omitempty" yaml:"crvSchemeName,omitempty"`
	NamedCurve    string  `json:"namedCurve,omitempty" yaml:"namedCurve,omitempty"`
}

// Filter field names. They match the JSON keys of Schema.
const (
	FieldFamily        = "family"
	FieldAlg           = "alg"
	FieldName          = "name"
	FieldHash          = "hash"
	FieldWebcryptoName = "webcryptoName"
	FieldJWKAlg        = "jwkAlg"
	FieldKty           = "kty"
	FieldCrv           = "crv"
	FieldCrvSchemeName = "crvSchemeName"
	FieldNamedCurve    = "namedCurve"
)

// Field returns the value of the named field as a primitive (string, int64
// or KeyType/Curve) and whether the schema carries it.
func (s Schema) Field(name string) (any, bool) {
	switch name {
	case FieldFamily:
		return string(s.Family), s.Family != ""
	case FieldAlg:
		return s.Alg.Value(), !s.Alg.IsZero()
	case FieldName:
		return s.Name, s.Name != ""
	case FieldHash:
		return s.Hash, s.Hash != ""
	case FieldWebcryptoName:
		return s.WebcryptoName, s.WebcryptoName != ""
	case FieldJWKAlg:
		return s.JWKAlg, s.JWKAlg != ""
	case FieldKty:
		return s.Kty, s.Kty != 0
	case FieldCrv:
		return s.Crv, s.Crv != 0
	case FieldCrvSchemeName:
		return s.CrvSchemeName, s.CrvSchemeName != ""
	case FieldNamedCurve:
		return s.NamedCurve, s.NamedCurve != ""
	}
	return nil, false
}

// CryptoHash returns the Go hash matching the schema's hash name, or 0 if
// the name is unknown.
func (s Schema) CryptoHash() crypto.Hash {
	switch s.Hash {
	case "SHA-1":
		return crypto.SHA1
	case "SHA-256":
		return crypto.SHA256
	case "SHA-384":
		return crypto.SHA384
	case "SHA-512":
		return crypto.SHA512
	}
	return 0
}

// validate checks the family invariants of a single record.
func (s Schema) validate() error {
	if s.Alg.IsZero() || s.Name == "" || s.Hash == "" || s.WebcryptoName == "" || s.JWKAlg == "" {
		return invalidSchema(s, "missing required field")
	}
	if s.CryptoHash() == 0 {
		return invalidSchema(s, "unknown hash "+s.Hash)
	}
	if n, ok := s.Alg.Int(); ok && n >= 0 {
		return invalidSchema(s, "IANA identifiers must be negative")
	}

	switch s.Family {
	case FamilyHMAC, FamilyDSA:
		if s.Alg.IsIANA() {
			return invalidSchema(s, "family uses string identifiers")
		}
		if s.Kty != 0 || s.Crv != 0 || s.CrvSchemeName != "" || s.NamedCurve != "" {
			return invalidSchema(s, "family carries no key type or curve")
		}
	case FamilyRSAPKCS1v1_5, FamilyRSAPSS:
		if !s.Alg.IsIANA() {
			return invalidSchema(s, "family uses IANA identifiers")
		}
		if s.Kty != RSA {
			return invalidSchema(s, "kty must be RSA")
		}
		if s.Crv != 0 || s.CrvSchemeName != "" || s.NamedCurve != "" {
			return invalidSchema(s, "family carries no curve")
		}
	case FamilyECDSA:
		if !s.Alg.IsIANA() {
			return invalidSchema(s, "family uses IANA identifiers")
		}
		if s.Kty != EC2 || s.Crv == 0 || s.CrvSchemeName == "" || s.NamedCurve == "" {
			return invalidSchema(s, "ECDSA needs kty EC2, crv, crvSchemeName and namedCurve")
		}
	case FamilyEdDSA:
		if !s.Alg.IsIANA() {
			return invalidSchema(s, "family uses IANA identifiers")
		}
		if s.Kty == 0 || s.Crv == 0 {
			return invalidSchema(s, "EdDSA needs kty and crv")
		}
		if s.CrvSchemeName != "" || s.NamedCurve != "" {
			return invalidSchema(s, "EdDSA carries no curve names")
		}
	default:
		return invalidSchema(s, "unknown family "+string(s.Family))
	}
	return nil
}
