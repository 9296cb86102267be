package cmd

import (
	"github.com/pyq-dev/pyq/internal/url"
	"github.com/spf13/cobra"
)

var (
	setupBranch   string
	setupForceRun bool
)

// setupCmd represents the setup command.
var setupCmd = &cobra.Command{
	Use:   "setup [name] <url>",
	Short: "Clone and provision a Python project",
	Long: `Clone a Python project from a git repository and make it runnable.

Setup clones the repository into the base directory, creates a virtual
environment, installs dependencies from requirements.txt when present,
registers a launcher script in the bin directory, and ensures the bin
directory is on your PATH.

When the name is omitted it is derived from the repository name in the
URL.

Setup is safe to re-run: steps whose outcome already exists are skipped,
so an interrupted setup continues from where it stopped.`,
	Example: `  # Clone and provision a project
  pyq setup demo https://github.com/user/demo.git

  # Derive the project name from the URL (here: demo)
  pyq setup https://github.com/user/demo.git

  # Use a specific branch
  pyq setup demo https://github.com/user/demo.git --branch develop

  # Regenerate the launcher even when the repository ships a run script
  pyq setup demo https://github.com/user/demo.git --force-run`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().StringVarP(&setupBranch, "branch", "b", "", "Branch to clone")
	setupCmd.Flags().BoolVar(&setupForceRun, "force-run", false, "Always generate the wrapper, ignoring a repository run script")
}

func runSetup(cmd *cobra.Command, args []string) error {
	return ExecuteWithContext(func(ctx *CommandContext, args []string) error {
		var name, sourceURL string
		if len(args) == 2 {
			name, sourceURL = args[0], args[1]
		} else {
			sourceURL = args[0]
			derived, err := url.ProjectName(sourceURL)
			if err != nil {
				return err
			}
			name = derived
			ctx.Printer.Info("using project name %s", name)
		}
		return ctx.Manager.Setup(cmd.Context(), name, sourceURL, setupBranch, setupForceRun)
	})(cmd, args)
}
