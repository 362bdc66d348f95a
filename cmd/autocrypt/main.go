package main

import (
	"os"

	"autocrypt/cmd/autocrypt/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
