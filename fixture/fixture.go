package fixture

import (
	"fmt"
	"os"
	"path/filepath"
)

const fixturesDir = "testdata/fixtures"

// LoadFixture returns the content of a file from testdata/fixtures and panics
// when it cannot be read.
func LoadFixture(filename string) string {
	data, err := os.ReadFile(FixturePath(filename))
	if err != nil {
		panic(fmt.Sprintf("cannot load fixture %v: %v", filename, err))
	}

	return string(data)
}

// FixturePath returns the absolute path of a file in testdata/fixtures.
func FixturePath(filename string) string {
	root, err := moduleRoot()
	if err != nil {
		panic(err)
	}

	return filepath.Join(root, fixturesDir, filename)
}

// Tests run inside their package directory, so the module root is found by
// walking up until a directory containing go.mod shows up.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above working directory")
		}

		dir = parent
	}
}
