package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/brandon/mailctl/internal/command"
)

var version = "dev"

func main() {
	os.Exit(exitCode(newRootCmd().Execute(), os.Stderr))
}

// exitCode reports err on w and maps it to the process exit status. A
// declined confirmation is not a failure and exits silently.
func exitCode(err error, w io.Writer) int {
	if err == nil || errors.Is(err, command.ErrAborted) {
		return 0
	}
	fmt.Fprintln(w, "Error:", err)
	return 1
}
