package configs

import (
	"errors"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/lucid/internal/errors"
)

// UserConfig is the per-user settings file.
type UserConfig struct {
	User      User           `toml:"user"`
	Overrides map[string]any `toml:"overrides"`
}

type User struct {
	Name string `toml:"name"`
}

// LoadUserConfig loads the user configuration. A missing file yields an
// empty config.
func LoadUserConfig(path string) (*UserConfig, error) {
	config := &UserConfig{Overrides: make(map[string]any)}
	if path == "" {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("user config %s: %w: %v", path, kerrors.ErrInvalidSettings, err)
	}
	if config.Overrides == nil {
		config.Overrides = make(map[string]any)
	}
	return config, nil
}

// SaveUserConfig saves the user configuration.
func SaveUserConfig(path string, config *UserConfig) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}
