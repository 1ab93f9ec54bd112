package algorithm

import "github.com/cockroachdb/errors"

var (
	// ErrUnsupportedAlgorithm is returned by Get when no schema matches the name
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrInvalidKeyType is returned when a key cannot be used with a schema
	ErrInvalidKeyType = errors.New("invalid key type")

	// ErrInvalidSchema is returned by NewRegistry for records whose fields
	// do not form a valid combination for their family
	ErrInvalidSchema = errors.New("invalid algorithm schema")

	// ErrDuplicateID is returned by NewRegistry when two records share an
	// identifier, a webcrypto name or a JWA name
	ErrDuplicateID = errors.New("duplicate algorithm identifier")

	// ErrInvalidID is returned when text cannot be parsed into an ID
	ErrInvalidID = errors.New("invalid algorithm identifier")
)
