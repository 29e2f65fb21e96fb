package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sclrename/sclrename-cli/internal/cli"
	"github.com/sclrename/sclrename-cli/pkg/models"
	"github.com/sclrename/sclrename-cli/pkg/query"
)

// SearchResult represents the output structure for search command
type SearchResult struct {
	Query   string          `json:"query" yaml:"query"`
	Devices []models.Device `json:"devices" yaml:"devices"`
	Count   int             `json:"count" yaml:"count"`
}

var searchInventoryPath string

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search devices by name and metadata",
		Long: `Search the device inventory with the same query language the TUI uses.

Terms are case-insensitive substrings combined with AND. Use * for any
run of characters, ? for a single character, and quotes for terms with
spaces. A term may match the device name or any descriptive field.

Examples:
  # Devices mentioning both terms, in any field
  sclrename search "siemens protection"

  # Glob on the name
  sclrename search 'IED?'

  # Quoted term with spaces
  sclrename search '"bay control"'`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if searchInventoryPath != "" {
				return nil
			}
			return cli.ValidateProject()
		},
		RunE: runSearch,
	}

	cmd.Flags().StringVar(&searchInventoryPath, "inventory", "", "Path to the inventory file")
	cmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	if err := cli.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	raw := strings.Join(args, " ")
	matcher := query.Compile(raw)

	devices, err := loadDevices(searchInventoryPath)
	if err != nil {
		return err
	}

	var matched []models.Device
	for _, d := range devices {
		if matcher.Test(d.SearchText(d.Name)) {
			matched = append(matched, d)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SortKey() < matched[j].SortKey()
	})

	result := SearchResult{Query: raw, Devices: matched, Count: len(matched)}

	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	default:
		if len(matched) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No devices match %q.\n", raw)
			return nil
		}
		return outputDeviceTable(cmd, matched)
	}
}
