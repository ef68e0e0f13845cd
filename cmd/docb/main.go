package main

import (
	"os"

	"github.com/khyahahati/ai-doc-builder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
