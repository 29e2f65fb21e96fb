package cli

import (
	"fmt"

	"github.com/sclrename/sclrename-cli/pkg/files"
	"github.com/sclrename/sclrename-cli/pkg/rename"
)

// ValidateDeviceName checks a proposed device name against the naming
// rules. Duplicate checking happens in the rename session, where the
// full set of names is known.
func ValidateDeviceName(name string) error {
	if reason := rename.CheckName(name); reason != rename.ReasonValid {
		return fmt.Errorf("invalid device name %q: %s", name, reason.Message())
	}
	return nil
}

// ValidateProject ensures the current directory has been initialized.
func ValidateProject() error {
	if !files.ProjectExists() {
		return fmt.Errorf("no %s directory found. Run 'sclrename init' first", files.SclrenameDir)
	}
	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}
