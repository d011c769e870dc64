package main

import (
	"os"

	"github.com/AnyUserName/swatchcard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
