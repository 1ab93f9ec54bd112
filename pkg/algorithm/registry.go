package algorithm

import (
	"github.com/cockroachdb/errors"
)

// Registry is an immutable, ordered set of schemas indexed by ID.
// It is safe for concurrent use.
type Registry struct {
	schemas []Schema
	byID    map[ID]int
	byJWK   map[string]int
}

// NewRegistry validates schemas and builds a registry keeping their order.
// Declaration order decides which schema By returns when several match.
func NewRegistry(schemas ...Schema) (*Registry, error) {
	r := &Registry{
		schemas: make([]Schema, 0, len(schemas)),
		byID:    make(map[ID]int, len(schemas)),
		byJWK:   make(map[string]int, len(schemas)),
	}
	webcrypto := make(map[string]struct{}, len(schemas))

	for _, s := range schemas {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, exists := r.byID[s.Alg]; exists {
			return nil, errors.Wrapf(ErrDuplicateID, "alg %s", s.Alg)
		}
		if _, exists := webcrypto[s.WebcryptoName]; exists {
			return nil, errors.Wrapf(ErrDuplicateID, "webcryptoName %s", s.WebcryptoName)
		}
		if _, exists := r.byJWK[s.JWKAlg]; exists {
			return nil, errors.Wrapf(ErrDuplicateID, "jwkAlg %s", s.JWKAlg)
		}

		r.byID[s.Alg] = len(r.schemas)
		r.byJWK[s.JWKAlg] = len(r.schemas)
		webcrypto[s.WebcryptoName] = struct{}{}
		r.schemas = append(r.schemas, s)
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on invalid input.
func MustNewRegistry(schemas ...Schema) *Registry {
	r, err := NewRegistry(schemas...)
	if err != nil {
		panic(err)
	}
	return r
}

// ByID returns the schema with the given identifier
func (r *Registry) ByID(id ID) (Schema, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Schema{}, false
	}
	return r.schemas[i], true
}

// By returns the first schema, in declaration order, matching every field
// of f. A non-empty alg in f short-circuits to an exact identifier lookup
// and the other fields are ignored.
func (r *Registry) By(f Filter) (Schema, bool) {
	if v, ok := f.alg(); ok {
		id, ok := idOf(v)
		if !ok {
			return Schema{}, false
		}
		return r.ByID(id)
	}

	for _, s := range r.schemas {
		if f.Match(s) {
			return s, true
		}
	}
	return Schema{}, false
}

// Get resolves name as an identifier ("-7", "HS256") and then as a JWA
// algorithm name ("ES256"). It returns ErrUnsupportedAlgorithm if neither
// matches.
func (r *Registry) Get(name string) (Schema, error) {
	if id, err := ParseID(name); err == nil {
		if s, ok := r.ByID(id); ok {
			return s, nil
		}
	}
	if i, ok := r.byJWK[name]; ok {
		return r.schemas[i], nil
	}
	return Schema{}, errors.Wrapf(ErrUnsupportedAlgorithm, "%q", name)
}

// All returns a copy of every schema in declaration order
func (r *Registry) All() []Schema {
	out := make([]Schema, len(r.schemas))
	copy(out, r.schemas)
	return out
}

// List returns the JWA names of all schemas in declaration order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.schemas))
	for _, s := range r.schemas {
		names = append(names, s.JWKAlg)
	}
	return names
}

// Len returns the number of schemas.
func (r *Registry) Len() int {
	return len(r.schemas)
}

func invalidSchema(s Schema, reason string) error {
	return errors.Wrapf(ErrInvalidSchema, "alg %s: %s", s.Alg, reason)
}

// defaultRegistry holds the fixed table. It is built once at init and
// never modified.
var defaultRegistry = MustNewRegistry(table...)

// ByID looks up a schema of the default registry by identifier.
func ByID(id ID) (Schema, bool) {
	return defaultRegistry.ByID(id)
}

// By looks up the first schema of the default registry matching f.
func By(f Filter) (Schema, bool) {
	return defaultRegistry.By(f)
}

// Get resolves an identifier or JWA name against the default registry.
func Get(name string) (Schema, error) {
	return defaultRegistry.Get(name)
}

// All returns every schema of the default registry in declaration order.
func All() []Schema {
	return defaultRegistry.All()
}

// List returns the JWA names of the default registry in declaration order.
func List() []string {
	return defaultRegistry.List()
}

// Default returns the registry holding the fixed algorithm table.
func Default() *Registry {
	return defaultRegistry
}
