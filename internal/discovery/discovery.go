package discovery

import (
	"fmt"
	"os"
	"path/filepath"
)

const dirName = ".chirpet"

// FindConfigFile walks up from startDir looking for .chirpet/config.toml.
func FindConfigFile(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		configPath := filepath.Join(dir, dirName, "config.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", false, nil
}

func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dirName, "config.toml")
}

func GetStatePathFromConfig(configPath string) string {
	// State is in the same directory
	return filepath.Join(filepath.Dir(configPath), "pet.state.toml")
}

// Locate resolves the config to use: an explicit path wins, then the nearest
// project pet, then the global one.
func Locate(explicit, cwd string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	path, found, err := FindConfigFile(cwd)
	if err != nil {
		return "", err
	}
	if found {
		return path, nil
	}

	path = GlobalConfigPath()
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no pet found. Run 'chirpet init' to create one")
	}
	return path, nil
}
