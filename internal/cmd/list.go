package cmd

import (
	"encoding/json"
	"os"

	"github.com/pyq-dev/pyq/internal/discovery"
	"github.com/pyq-dev/pyq/internal/table"
	"github.com/pyq-dev/pyq/internal/ui"
	"github.com/pyq-dev/pyq/pkg/models"
	"github.com/pyq-dev/pyq/pkg/utils"
	"github.com/spf13/cobra"
)

var (
	listJSON bool
	listAll  bool
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Display managed projects",
	Long: `Display every project registered in the bin directory.

Each launcher script is traced back to its project directory; entries
whose project is missing or no longer a git repository are skipped.

With --all the base directory is also scanned for clones that have no
launcher registered, such as projects left behind by an interrupted
setup. Use --json for machine-readable output.`,
	Example: `  # List managed projects
  pyq list

  # Include clones without a registered launcher
  pyq list --all

  # JSON format for scripting
  pyq list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include clones without a registered launcher")
}

func runList(cmd *cobra.Command, args []string) error {
	return ExecuteWithContext(func(ctx *CommandContext, args []string) error {
		projects, err := ctx.Manager.List()
		if err != nil {
			return err
		}

		if listAll {
			orphans, err := orphanedProjects(ctx, projects)
			if err != nil {
				return err
			}
			projects = append(projects, orphans...)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(projects)
		}

		printProjects(ctx, projects)
		return nil
	})(cmd, args)
}

// orphanedProjects returns the clones under the base directory that have no
// registered launcher.
func orphanedProjects(ctx *CommandContext, registered []models.Project) ([]models.Project, error) {
	discovered, err := discovery.DiscoverProjects(ctx.Config.Projects.BaseDir)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(registered))
	for _, p := range registered {
		known[p.Root] = true
	}

	return utils.Filter(discovered, func(p models.Project) bool {
		return !known[p.Root]
	}), nil
}

func printProjects(ctx *CommandContext, projects []models.Project) {
	if len(projects) == 0 {
		ctx.Printer.Plain("No managed projects found")
		return
	}

	style := table.DefaultStyle()
	if !ctx.Config.UI.Color {
		style = table.PlainStyle()
	}

	t := table.NewWithStyle(style).Headers("NAME", "PATH", "VENV", "LAUNCHER", "CREATED")
	for _, p := range projects {
		venv := "missing"
		if p.HasVenv {
			venv = "ok"
		}
		wrapper := "missing"
		if p.HasWrapper {
			wrapper = "ok"
		}
		t.Row(
			p.Name,
			ui.Truncate(ctx.Printer.Path(p.Root), 60),
			venv,
			wrapper,
			p.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = t.Println()

	ctx.Printer.Plain("%d managed project(s)", len(projects))
}
