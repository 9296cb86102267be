package cmd

import (
	"github.com/spf13/cobra"
)

var removeYes bool

// removeCmd represents the remove command.
var removeCmd = &cobra.Command{
	Use:     "remove [name]",
	Aliases: []string{"rm"},
	Short:   "Delete a managed project",
	Long: `Delete a managed project: its launcher script and its directory
tree, including the clone and the virtual environment.

Removal asks for confirmation before touching anything; any answer other
than y or yes cancels. The project directory is only deleted when it
lies inside the configured base directory.

If no name is provided, a fuzzy finder is shown to select the project.`,
	Example: `  # Remove a project by name
  pyq remove demo

  # Select the project interactively
  pyq remove

  # Skip the confirmation prompt
  pyq remove demo --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runRemove(cmd *cobra.Command, args []string) error {
	return ExecuteWithContext(func(ctx *CommandContext, args []string) error {
		name, err := resolveProjectName(ctx, args)
		if err != nil {
			return err
		}
		return ctx.Manager.Remove(cmd.Context(), name, removeYes)
	})(cmd, args)
}
