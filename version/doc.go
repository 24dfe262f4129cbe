// Package version holds build metadata for the gorest binary and the
// User-Agent string the transport sends.
//
// Values are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/gorest/version.Version=1.2.0"
package version
