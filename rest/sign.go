package rest

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // HMAC-SHA1 is the signature the services verify
	"encoding/base64"
)

// Signature returns the Authorization header value for a client:
// "HMAC {id}:{base64(HMAC-SHA1(key=secret, message=id))}".
func Signature(clientID, clientSecret string) string {
	mac := hmac.New(sha1.New, []byte(clientSecret))
	mac.Write([]byte(clientID))
	return "HMAC " + clientID + ":" + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
