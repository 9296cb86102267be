package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pyq-dev/pyq/internal/config"
	"github.com/pyq-dev/pyq/internal/finder"
	"github.com/pyq-dev/pyq/internal/fsutil"
	"github.com/pyq-dev/pyq/internal/git"
	"github.com/pyq-dev/pyq/internal/launcher"
	"github.com/pyq-dev/pyq/internal/pathenv"
	"github.com/pyq-dev/pyq/internal/platform"
	"github.com/pyq-dev/pyq/internal/project"
	"github.com/pyq-dev/pyq/internal/python"
	"github.com/pyq-dev/pyq/internal/tui"
	"github.com/pyq-dev/pyq/internal/ui"
	"github.com/pyq-dev/pyq/pkg/command"
	"github.com/pyq-dev/pyq/pkg/models"
	"github.com/spf13/cobra"
)

// CommandContext encapsulates common dependencies used across commands.
// This eliminates boilerplate code and provides consistent initialization.
type CommandContext struct {
	Config   *models.Config
	Platform platform.Platform
	Printer  *ui.Printer
	Manager  *project.Manager
	finder   *finder.Finder // Lazy-loaded
}

// NewCommandContext creates a command context wired with the standard
// collaborators.
func NewCommandContext() (*CommandContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	plat := platform.Detect()
	printer := ui.New(&cfg.UI, verbose)

	var runner command.Runner
	if verbose {
		runner = command.NewStandardRunnerWithLog(func(line string) {
			printer.Info("%s", line)
		})
	} else {
		runner = command.NewStandardRunner()
	}

	manager := project.New(cfg, plat, project.Deps{
		Git:      git.New(runner),
		Python:   python.New(runner, cfg.Python.Executable, plat),
		FS:       fsutil.New(plat.IsPOSIX(), printer.Warn),
		Paths:    pathenv.New(plat),
		Launcher: launcher.New(plat),
		Log:      printer,
		Confirm:  confirmPrompt,
	})

	return &CommandContext{
		Config:   cfg,
		Platform: plat,
		Printer:  printer,
		Manager:  manager,
	}, nil
}

// GetFinder returns a finder instance, creating it if needed.
func (ctx *CommandContext) GetFinder() *finder.Finder {
	if ctx.finder == nil {
		ctx.finder = finder.New(&ctx.Config.UI)
	}
	return ctx.finder
}

// ExecuteWithContext creates a command context and executes the provided
// function, printing any error through the context's printer.
func ExecuteWithContext(fn func(*CommandContext, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, err := NewCommandContext()
		if err != nil {
			return err
		}
		if err := fn(ctx, args); err != nil {
			ctx.Printer.Error(err)
			// The message is already printed; suppress cobra's duplicate.
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			return err
		}
		return nil
	}
}

// confirmPrompt asks for a typed confirmation: an interactive prompt when
// stdin is a terminal, a plain line read otherwise.
func confirmPrompt(prompt string) (bool, error) {
	if stdinIsTerminal() {
		return tui.Confirm(prompt)
	}

	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return tui.IsAffirmative(strings.TrimSpace(line)), nil
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
