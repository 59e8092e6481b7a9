// Command intlfmt formats message patterns with named placeholders from the
// command line and serves the formatter over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "intlfmt:", err)
		os.Exit(1)
	}
}
