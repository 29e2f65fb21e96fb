package models

import "strings"

// Device is one IED record from the project inventory.
// Name is the stable identity of the record; every other field is
// descriptive metadata carried along for display and search.
type Device struct {
	Name          string `yaml:"name"`
	Manufacturer  string `yaml:"manufacturer,omitempty"`
	Type          string `yaml:"type,omitempty"`
	Desc          string `yaml:"desc,omitempty"`
	ConfigVersion string `yaml:"config_version,omitempty"`
	SclVersion    string `yaml:"scl_version,omitempty"`
	SclRevision   string `yaml:"scl_revision,omitempty"`
	SclRelease    string `yaml:"scl_release,omitempty"`
}

// SearchText returns the full text a search query is matched against:
// descriptive metadata plus the current proposed name plus the original
// name. A term may therefore hit any of them interchangeably.
func (d Device) SearchText(current string) string {
	return strings.Join([]string{
		d.Manufacturer,
		d.Type,
		d.Desc,
		d.ConfigVersion,
		d.SclVersion,
		d.SclRevision,
		d.SclRelease,
		current,
		d.Name,
	}, " ")
}

// SortKey returns the concatenated descriptive-field text used for
// display ordering. Ordering is a presentation concern only.
func (d Device) SortKey() string {
	return strings.ToLower(strings.Join([]string{
		d.Manufacturer, d.Type, d.Desc, d.Name,
	}, " "))
}

// Rename is one accepted (old name, new name) pair dispatched to the
// inventory at commit time.
type Rename struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}
