package main

import (
	"os"

	"github.com/cpgtools/go-cpg/cmd/cpg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
