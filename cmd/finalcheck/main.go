package main

import (
	"fmt"
	"os"

	"github.com/Treedy2020/FinalCheck/cmd/finalcheck/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
