/*
Package jwa connects the algorithm registry with JOSE libraries.

It maps registry schemas to and from go-jose and cristalhq/jwt algorithm
values, and resolves the schema a JSON Web Key is meant for:

	s, err := jwa.FromJWK(raw)
	alg, err := jwa.SignatureAlgorithm(s) // jose.ES384

Schemas without a counterpart in a library (HS1, RS1, DS*) return
ErrNoEquivalent.
*/
package jwa
