package jwa

import "github.com/cockroachdb/errors"

var (
	// ErrNoEquivalent is returned when a schema has no counterpart in a
	// third party algorithm set
	ErrNoEquivalent = errors.New("jwa: no equivalent algorithm")

	// ErrNoMatch is returned when no schema fits an algorithm name or key
	ErrNoMatch = errors.New("jwa: no matching algorithm")

	// ErrInvalidJWK is returned for keys that cannot be parsed
	ErrInvalidJWK = errors.New("jwa: invalid jwk")
)
