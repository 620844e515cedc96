// Package version reports the build version of a depin host.
//
// Version, commit, branch and build time are set at compile time via
// -ldflags and fall back to the VCS stamps of the Go build info:
//
//	go build -ldflags "-X github.com/kbukum/depin/version.Version=1.4.0"
package version
