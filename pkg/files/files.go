package files

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sclrename/sclrename-cli/pkg/models"
)

const (
	SclrenameDir  = ".sclrename"
	InventoryFile = "devices.yaml"
	SettingsFile  = "settings.yaml"
)

// DefaultInventoryPath returns the inventory location inside the
// project directory.
func DefaultInventoryPath() string {
	return filepath.Join(SclrenameDir, InventoryFile)
}

// InitProjectStructure creates the .sclrename directory with an empty
// inventory and default settings. Existing files are left alone.
func InitProjectStructure() error {
	if err := os.MkdirAll(SclrenameDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", SclrenameDir, err)
	}

	invPath := DefaultInventoryPath()
	if _, err := os.Stat(invPath); os.IsNotExist(err) {
		if err := SaveInventory(invPath, []models.Device{}); err != nil {
			return err
		}
	}

	settingsPath := filepath.Join(SclrenameDir, SettingsFile)
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := WriteSettings(models.DefaultSettings()); err != nil {
			return err
		}
	}

	return nil
}

// ReadSettings loads settings.yaml, falling back to defaults when the
// file does not exist.
func ReadSettings() (*models.Settings, error) {
	path := filepath.Join(SclrenameDir, SettingsFile)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	if settings.UI.SearchDebounceMs <= 0 {
		settings.UI.SearchDebounceMs = models.DefaultSettings().UI.SearchDebounceMs
	}

	return settings, nil
}

// WriteSettings persists settings to settings.yaml.
func WriteSettings(settings *models.Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	path := filepath.Join(SclrenameDir, SettingsFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
