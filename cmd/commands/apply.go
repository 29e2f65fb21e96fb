package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sclrename/sclrename-cli/internal/cli"
	"github.com/sclrename/sclrename-cli/pkg/files"
	"github.com/sclrename/sclrename-cli/pkg/models"
	"github.com/sclrename/sclrename-cli/pkg/rename"
)

var (
	applyInventoryPath string
	applyDryRun        bool
)

// NewApplyCommand creates the apply command
func NewApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <plan.yaml>",
		Short: "Apply a batch rename plan to the inventory",
		Long: `Apply a YAML rename plan to the device inventory.

The plan is a list of from/to pairs:

  - from: IED1
    to: LineProt1
  - from: IED2
    to: BayCtrl2

Every pair is validated through the same engine the TUI uses: names
must follow the naming rules and the resulting set must be free of
duplicates. An invalid plan is rejected as a whole; nothing is applied.

Examples:
  # Validate and apply a plan
  sclrename apply renames.yaml

  # Validate only
  sclrename apply renames.yaml --dry-run`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if applyInventoryPath != "" {
				return nil
			}
			return cli.ValidateProject()
		},
		RunE: runApply,
	}

	cmd.Flags().StringVar(&applyInventoryPath, "inventory", "", "Path to the inventory file")
	cmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Validate the plan without applying it")

	return cmd
}

func runApply(cmd *cobra.Command, args []string) error {
	plan, err := readPlan(args[0])
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		return fmt.Errorf("plan %s contains no renames", args[0])
	}

	settings, err := files.ReadSettings()
	if err != nil {
		return err
	}
	invPath := files.ResolveInventoryPath(applyInventoryPath, settings)

	devices, err := files.LoadInventory(invPath)
	if err != nil {
		return err
	}

	session := rename.NewSession(devices)
	for _, r := range plan {
		reason, ok := session.SetCurrentValue(r.From, r.To)
		if !ok {
			return fmt.Errorf("plan refers to unknown device %q", r.From)
		}
		if reason != rename.ReasonValid && reason != rename.ReasonDuplicate {
			// Duplicates may resolve once later pairs are applied
			// (swaps); they are caught by the final check below.
			return fmt.Errorf("invalid new name %q for %q: %s", r.To, r.From, reason.Message())
		}
	}

	if !session.AllValid() {
		for _, it := range session.Items() {
			if !it.Valid() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s -> %s: %s\n", it.Identity(), it.Current, it.Reason.Message())
			}
		}
		return fmt.Errorf("plan produces invalid names; nothing applied")
	}

	renames, err := session.Commit()
	if err != nil {
		return err
	}

	if applyDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Plan is valid: %d rename(s) would be applied.\n", len(renames))
		return nil
	}

	if err := files.ApplyRenames(invPath, renames); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d rename(s) to %s.\n", len(renames), invPath)
	return nil
}

// readPlan loads a rename plan file. Both a bare list of pairs and a
// document with a top-level "renames" key are accepted.
func readPlan(path string) ([]models.Rename, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan %s: %w", path, err)
	}

	var plan []models.Rename
	if err := yaml.Unmarshal(content, &plan); err == nil {
		return plan, nil
	}

	var wrapped struct {
		Renames []models.Rename `yaml:"renames"`
	}
	if err := yaml.Unmarshal(content, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	return wrapped.Renames, nil
}
