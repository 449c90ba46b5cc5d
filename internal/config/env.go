package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads every existing file in envFiles. Variables already set in
// the process environment are never overwritten, so earlier files win.
func loadEnvFiles() error {
	var loaded int
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
		loaded++
	}
	if loaded == 0 {
		return errors.New("no .env file found")
	}
	return nil
}
