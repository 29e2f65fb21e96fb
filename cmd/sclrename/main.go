package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sclrename/sclrename-cli/cmd/commands"
	"github.com/sclrename/sclrename-cli/pkg/files"
	"github.com/sclrename/sclrename-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "sclrename",
	Short: "Terminal tool for batch-renaming IED records",
	Long:  `Sclrename is a terminal tool for batch-renaming IED (Intelligent Electronic Device) records in a substation configuration project. It keeps the device inventory as a plain YAML file and provides a TUI with incremental search, live validation, and duplicate detection across the whole device list.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !files.ProjectExists() {
			fmt.Fprintf(os.Stderr, "Error: No %s directory found in the current directory.\n", files.SclrenameDir)
			fmt.Fprintf(os.Stderr, "Please run 'sclrename init' first to initialize a project.\n")
			os.Exit(1)
		}

		// Launch TUI
		app, err := tui.NewApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
			fmt.Fprintf(os.Stderr, "This could be due to terminal compatibility issues. Try running in a different terminal.\n")
			os.Exit(1)
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new sclrename project",
	Long:  `Creates the .sclrename folder with an empty device inventory and default settings`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to determine current directory: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Initializing sclrename project in %s...\n", cwd)

		if err := files.InitProjectStructure(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to initialize project structure: %v\n", err)
			fmt.Fprintf(os.Stderr, "Make sure you have write permissions in the current directory.\n")
			os.Exit(1)
		}

		fmt.Println("✓ Created .sclrename folder with an empty inventory")
		fmt.Println("✓ Add devices to .sclrename/devices.yaml to get started!")
		fmt.Println("\nRun 'sclrename' to start the interactive TUI.")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sclrename",
	Long:  `Display the current version of the sclrename CLI tool`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sclrename version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewApplyCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Command execution failed: %v\n", err)
		os.Exit(1)
	}
}
