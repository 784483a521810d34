// Package version reports build information for the simplemovies binary.
//
// Values are injected at link time and fall back to the module's VCS
// metadata:
//
//	go build -ldflags "-X github.com/kbukum/simplemovies/version.Version=1.2.0"
package version
