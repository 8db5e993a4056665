package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var reported exitError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// exitError marks a failure whose message was already printed.
type exitError struct{}

func (exitError) Error() string { return "exit status 1" }
