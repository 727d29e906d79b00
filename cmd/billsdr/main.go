package main

import (
	"os"

	"github.com/mrwhyte0520/billsdr-sub004/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
