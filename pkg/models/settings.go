package models

// Settings represents the application configuration
type Settings struct {
	UI        UISettings        `yaml:"ui"`
	Inventory InventorySettings `yaml:"inventory"`
}

// UISettings controls TUI preferences
type UISettings struct {
	// SearchDebounceMs is the quiescence window after the last
	// keystroke before the search query is compiled and applied.
	SearchDebounceMs int `yaml:"search_debounce_ms"`
}

// InventorySettings controls where the device inventory lives
type InventorySettings struct {
	Path string `yaml:"path"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		UI: UISettings{
			SearchDebounceMs: 100,
		},
		Inventory: InventorySettings{
			Path: "", // resolved to the default inventory path by pkg/files
		},
	}
}
