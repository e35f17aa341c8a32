package main

import (
	"log"

	"github.com/joho/godotenv"

	"foliogen/cmd"
	"foliogen/internal/config"
)

func main() {
	// .env is optional; explicit environment variables take precedence.
	_ = godotenv.Load()

	chrome, err := config.LoadChrome("site.yaml")
	if err != nil {
		log.Fatalf("Error loading site configuration: %v", err)
	}
	cmd.Execute(chrome)
}
