package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a credential comes from. File takes precedence
// over the inline Value when both are set.
type Source struct {
	// Name gives error messages context about which credential failed.
	Name string
	// Value is an inline credential from configuration or flags.
	Value string
	// File points to a file holding the credential.
	File string
}

// Load resolves and trims the credential. It returns an error when neither
// File nor Value yields a usable value: credentials are resolved up front,
// never lazily at first use.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	value := src.Value
	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		value = string(data)
	}

	secret := strings.TrimSpace(value)
	if secret == "" {
		if file != "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
