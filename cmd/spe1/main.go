package main

import (
	"fmt"
	"os"

	"github.com/rfarell/spe1-case1/lib/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
