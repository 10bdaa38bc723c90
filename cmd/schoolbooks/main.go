package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/schoolbooks-dev/schoolbooks/internal/commands"
)

func main() {
	// A missing .env is fine; environment overrides are optional.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
