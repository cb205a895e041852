package main

import (
	"os"

	"github.com/cubahno/restdoc/cmd/restdoc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
