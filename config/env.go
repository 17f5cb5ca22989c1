package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFiles loads dotenv files that exist, in order. Variables already set
// in the environment are never overwritten.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return err
		}
	}

	return nil
}
