// Package encryption seals byte blobs with an AEAD cipher keyed from a
// passphrase. The cookie file store uses it to keep session cookies
// encrypted at rest.
//
//	enc, err := encryption.New(passphrase)
//	blob, err := enc.Seal(data)
//	data, err = enc.Open(blob)
package encryption
