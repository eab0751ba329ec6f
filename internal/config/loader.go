package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search path.
const FileName = "chromagate.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.chromagate/config.yaml -> ./configs/chromagate.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a file only needs the keys it
// changes. A custom path that cannot be read or parsed is an error; the other
// locations are skipped when missing or invalid.
func Load(customPath string) (Config, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Default(), "", err
		}
		return cfg, customPath, nil
	}

	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, userCfgPath, nil
		}
	}

	localPath := filepath.Join("configs", FileName)
	if cfg, err := loadFile(localPath); err == nil {
		return cfg, localPath, nil
	}

	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), "", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "", nil
}

func loadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chromagate", "config.yaml")
}

// DataDir returns ~/.chromagate, the directory for the host key, the level
// library and the TUI log file.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".chromagate"), nil
}
