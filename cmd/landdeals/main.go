package main

import (
	"os"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/cmd/landdeals/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
