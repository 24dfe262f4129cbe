// Package cookie provides the per-client cookie jar: a publicsuffix-aware
// net/http/cookiejar mirrored to a Store so the session survives for the
// lifetime of the client that owns it.
//
//	jar, err := cookie.New(cookie.WithFileStore(""))
//	defer jar.Close() // removes the rest.cookie.* file
//
// Stores: MemoryStore (default) and FileStore, optionally sealed with an
// encryption.Encryptor.
package cookie
