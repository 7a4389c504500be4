// Command layoutctl inspects and resets the saved dashboard layouts in the
// local layout database. Stop the API server first; the database allows a
// single process at a time.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(openBadger).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
