package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// version is stamped by the release build; "dev" otherwise.
var version = "dev"

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
