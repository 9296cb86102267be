package cmd

import (
	"fmt"
	"os"

	"github.com/pyq-dev/pyq/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  `Manage pyq configuration settings.`,
}

// configListCmd represents the config list command.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show configuration",
	Long:  `Display all current configuration settings as YAML.`,
	Example: `  # Show all configuration
  pyq config list`,
	RunE: runConfigList,
}

// configSetCmd represents the config set command.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set configuration value",
	Long: `Set a configuration value.

Configuration keys follow a dot notation format (e.g., projects.basedir).`,
	Example: `  # Set the project base directory
  pyq config set projects.basedir ~/pyq

  # Set the interpreter used for virtual environments
  pyq config set python.executable python3.12

  # Enable/disable colored output
  pyq config set ui.color true`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configGetCmd represents the config get command.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get configuration value",
	Long:  `Get a specific configuration value.`,
	Example: `  # Get the project base directory
  pyq config get projects.basedir`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}

func runConfigList(cmd *cobra.Command, args []string) error {
	settings := config.AllSettings()

	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(settings); err != nil {
		return fmt.Errorf("failed to render settings: %w", err)
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Convert string values to appropriate types
	var typedValue any = value
	switch value {
	case "true":
		typedValue = true
	case "false":
		typedValue = false
	default:
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			typedValue = intVal
		}
	}

	if err := config.Set(key, typedValue); err != nil {
		return fmt.Errorf("failed to set config: %w", err)
	}

	fmt.Printf("Set %s = %v\n", key, typedValue)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value := config.GetValue(args[0])
	if value == nil {
		return fmt.Errorf("configuration key not found: %s", args[0])
	}

	fmt.Println(value)
	return nil
}
