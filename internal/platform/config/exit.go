package config

import (
	"fmt"
	"io"
	"os"
)

// exit is swapped in tests so Exitf can be exercised without ending the process.
var exit = os.Exit

// stderr receives fatal messages.
var stderr io.Writer = os.Stderr

// Exitf writes a formatted error message to stderr and exits with code 1.
// Binaries use it for failures that happen before logging is configured.
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(1)
}
