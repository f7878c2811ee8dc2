package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/enosislabs/rainy-go/cli/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit CLI configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return outputJSON(cfg)
		}

		fmt.Printf("default_model:       %s\n", cfg.DefaultModel)
		fmt.Printf("base_url:            %s\n", cfg.BaseURL)
		fmt.Printf("requests_per_minute: %d\n", cfg.RequestsPerMinute)
		fmt.Printf("timeout_seconds:     %d\n", cfg.TimeoutSeconds)
		if cfg.MaxRetries != nil {
			fmt.Printf("max_retries:         %d\n", *cfg.MaxRetries)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write it back to the config file.

Supported keys: default_model, base_url, requests_per_minute,
timeout_seconds, max_retries.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		switch key {
		case "default_model":
			cfg.DefaultModel = value
		case "base_url":
			cfg.BaseURL = value
		case "requests_per_minute":
			n, err := strconv.Atoi(value)
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("requests_per_minute must be an integer: %w", err))
			}
			cfg.RequestsPerMinute = n
		case "timeout_seconds":
			n, err := strconv.Atoi(value)
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("timeout_seconds must be an integer: %w", err))
			}
			cfg.TimeoutSeconds = n
		case "max_retries":
			n, err := strconv.Atoi(value)
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("max_retries must be an integer: %w", err))
			}
			cfg.MaxRetries = &n
		default:
			return exitWithCode(ExitValidation, fmt.Errorf("unknown config key %q", key))
		}

		path := cfgFile
		if path == "" {
			path = config.DefaultConfigPath()
		}
		if err := cfg.Save(path); err != nil {
			return exitWithCode(ExitValidation, err)
		}

		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
