package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// updateCmd represents the update command.
var updateCmd = &cobra.Command{
	Use:   "update [name]",
	Short: "Pull the latest changes into a project",
	Long: `Update a managed project from its git remote.

Local modifications are stashed (including untracked files) before the
pull and restored afterward. Bytecode caches are cleared first so stale
compiled files never survive an update.

If no name is provided, a fuzzy finder is shown to select the project.`,
	Example: `  # Update a project by name
  pyq update demo

  # Select the project interactively
  pyq update`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return ExecuteWithContext(func(ctx *CommandContext, args []string) error {
		name, err := resolveProjectName(ctx, args)
		if err != nil {
			return err
		}
		return ctx.Manager.Update(cmd.Context(), name)
	})(cmd, args)
}

// resolveProjectName returns the positional project name, or lets the user
// pick one managed project through the fuzzy finder.
func resolveProjectName(ctx *CommandContext, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	projects, err := ctx.Manager.List()
	if err != nil {
		return "", err
	}
	if len(projects) == 0 {
		return "", fmt.Errorf("no managed projects found")
	}

	selected, err := ctx.GetFinder().SelectProject(projects)
	if err != nil {
		return "", fmt.Errorf("project selection cancelled")
	}
	return selected.Name, nil
}
