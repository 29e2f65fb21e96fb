package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sclrename/sclrename-cli/internal/cli"
	"github.com/sclrename/sclrename-cli/pkg/files"
	"github.com/sclrename/sclrename-cli/pkg/models"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Devices []models.Device `json:"devices" yaml:"devices"`
	Count   int             `json:"count" yaml:"count"`
}

var listInventoryPath string

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List devices in the inventory",
		Long: `List all IED records in the project inventory.

Examples:
  # List all devices
  sclrename list

  # List devices as JSON
  sclrename list -o json

  # List devices from a specific inventory file
  sclrename list --inventory path/to/devices.yaml`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if listInventoryPath != "" {
				return nil
			}
			return cli.ValidateProject()
		},
		RunE: runList,
	}

	cmd.Flags().StringVar(&listInventoryPath, "inventory", "", "Path to the inventory file")
	cmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	if err := cli.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	devices, err := loadDevices(listInventoryPath)
	if err != nil {
		return err
	}

	// Display order follows the concatenated descriptive-field text.
	sort.SliceStable(devices, func(i, j int) bool {
		return devices[i].SortKey() < devices[j].SortKey()
	})

	result := ListResult{Devices: devices, Count: len(devices)}

	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	default:
		return outputDeviceTable(cmd, devices)
	}
}

func outputDeviceTable(cmd *cobra.Command, devices []models.Device) error {
	if len(devices) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No devices in inventory.")
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("NAME", "MANUFACTURER", "TYPE", "DESCRIPTION", "CONFIG")
	for _, d := range devices {
		table.Row(
			d.Name,
			d.Manufacturer,
			d.Type,
			cli.TruncateString(d.Desc, 40),
			d.ConfigVersion,
		)
	}
	table.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d device(s)\n", len(devices))
	return nil
}

// loadDevices resolves the inventory path (explicit flag, settings,
// then project default) and loads it.
func loadDevices(explicit string) ([]models.Device, error) {
	settings, err := files.ReadSettings()
	if err != nil {
		return nil, err
	}
	path := files.ResolveInventoryPath(explicit, settings)

	devices, err := files.LoadInventory(path)
	if err != nil {
		if explicit == "" && strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("no inventory found at %s. Run 'sclrename init' first", path)
		}
		return nil, err
	}
	return devices, nil
}
