// Command simplemovies searches the OMDb catalogue, keeps a list of
// favorite titles and serves both over HTTP.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
