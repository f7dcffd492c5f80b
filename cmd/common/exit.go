package common

import (
	"fmt"
	"os"
)

// ExitOnError prints "<name>: <err>" to stderr and exits with status 1 when err is set.
func ExitOnError(name string, err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
	os.Exit(1)
}
