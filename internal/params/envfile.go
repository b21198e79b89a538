package params

import (
	"bytes"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// ParseEnvFile parses content in .env format. Comments, quoting and
// export prefixes follow godotenv.
func ParseEnvFile(content []byte) (map[string]string, error) {
	result, err := godotenv.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("invalid params file: %w", err)
	}
	for k := range result {
		if k == "" {
			return nil, fmt.Errorf("invalid params file: empty key")
		}
	}
	return result, nil
}

// LoadParamsFile reads and parses a params file. An empty path yields an empty map.
func LoadParamsFile(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file %s: %w", path, err)
	}
	result, err := ParseEnvFile(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}
