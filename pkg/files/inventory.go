package files

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sclrename/sclrename-cli/pkg/models"
)

// inventory is the on-disk shape of devices.yaml.
type inventory struct {
	Devices []models.Device `yaml:"devices"`
}

// LoadInventory reads the device inventory. Duplicate device names in
// the file are a load error: the name is the record's identity.
func LoadInventory(path string) ([]models.Device, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory %s: %w", path, err)
	}

	var inv inventory
	if err := yaml.Unmarshal(content, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse inventory YAML %s: %w", path, err)
	}

	seen := make(map[string]bool, len(inv.Devices))
	for _, d := range inv.Devices {
		if d.Name == "" {
			return nil, fmt.Errorf("inventory %s contains a device without a name", path)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("inventory %s contains duplicate device name %q", path, d.Name)
		}
		seen[d.Name] = true
	}

	return inv.Devices, nil
}

// SaveInventory writes the device inventory. The file is written to a
// temporary sibling first and renamed into place so a failed write
// never leaves a half-written inventory behind.
func SaveInventory(path string, devices []models.Device) error {
	data, err := yaml.Marshal(inventory{Devices: devices})
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write inventory %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace inventory %s: %w", path, err)
	}

	return nil
}

// ApplyRenames applies accepted (old name, new name) pairs to the
// inventory identified by path. Each pair updates the record whose
// name equals the old name; a pair whose old name matches no record is
// an error and nothing is written.
func ApplyRenames(path string, renames []models.Rename) error {
	if len(renames) == 0 {
		return nil
	}

	devices, err := LoadInventory(path)
	if err != nil {
		return err
	}

	byName := make(map[string]int, len(devices))
	for i, d := range devices {
		byName[d.Name] = i
	}

	for _, r := range renames {
		i, ok := byName[r.From]
		if !ok {
			return fmt.Errorf("cannot rename %q: no such device in %s", r.From, path)
		}
		devices[i].Name = r.To
	}

	return SaveInventory(path, devices)
}

// ResolveInventoryPath picks the inventory location: an explicit path
// wins, then the settings value, then the project default.
func ResolveInventoryPath(explicit string, settings *models.Settings) string {
	if explicit != "" {
		return explicit
	}
	if settings != nil && settings.Inventory.Path != "" {
		return settings.Inventory.Path
	}
	return DefaultInventoryPath()
}

// ProjectExists reports whether the current directory has been
// initialized.
func ProjectExists() bool {
	info, err := os.Stat(SclrenameDir)
	return err == nil && info.IsDir()
}

// ensureParentDir creates the directory containing path if needed.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
