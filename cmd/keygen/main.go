// Command keygen mints an API key for the card-check service and
// prints the hash to put in API_KEY_HASH.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ShamarKellman/power-tranz/internal/core/security"
)

func main() {
	key, hash, err := security.GenerateAPIKey()
	if err != nil {
		slog.Error("❌ Could not generate API key", "error", err)
		os.Exit(1)
	}

	fmt.Println("API key (hand this out, it is shown once):")
	fmt.Println("  " + key)
	fmt.Println("API_KEY_HASH:")
	fmt.Println("  " + hash)
}
