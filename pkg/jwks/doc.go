/*
Package jwks provides a key cache that resolves a key id to its JSON Web Key
and the registry algorithm the key is used with.

The cache never talks to the network itself; the caller supplies how a raw
JWK is fetched:

	cache := jwks.NewCache(jwks.Config{
	    MaxAge:          5 * time.Minute,
	    CleanupInterval: time.Minute,
	    FetchFunc:       fetchFromIssuer,
	})
	defer cache.Close()

	entry, err := cache.Resolve(ctx, "key-id")
	// entry.Schema.JWKAlg == "ES256", entry.Key() is an *ecdsa.PublicKey

Keys are cached by id and fetched again once MaxAge has passed.
*/
package jwks
