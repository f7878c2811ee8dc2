// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/enosislabs/rainy-go/cli/config"
	"github.com/enosislabs/rainy-go/cli/keystore"
	"github.com/enosislabs/rainy-go/core"
)

// Exit codes.
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitAPI        = 2
	ExitNetwork    = 3
)

var (
	// Global flags
	cfgFile    string
	model      string
	baseURL    string
	jsonOutput bool
	verbose    bool

	// Loaded configuration
	cfg *config.Config
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "rainy",
	Short: "Rainy - unified AI model gateway CLI",
	Long: `Rainy is a command-line interface for the Rainy API.

Use it to chat with models across providers, manage API keys, and inspect
account usage and credits.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.rainy/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "model ID (e.g. gpt-4o)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL override")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

// initConfig reads in config file and sets defaults.
func initConfig() error {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	var err error
	cfg, err = config.LoadConfig(path)
	if err != nil {
		return err
	}

	// Apply config defaults if flags not set
	if model == "" && cfg.DefaultModel != "" {
		model = cfg.DefaultModel
	}
	if baseURL == "" && cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}

	return nil
}

// apiKey resolves the personal API key: the RAINY_API_KEY environment
// variable wins, then the keystore.
func apiKey() (string, error) {
	if key := os.Getenv("RAINY_API_KEY"); key != "" {
		return key, nil
	}

	ks, err := keystore.NewKeystore()
	if err != nil {
		return "", fmt.Errorf("failed to open keystore: %w", err)
	}

	key, err := ks.Get(keystore.DefaultKeyName)
	if err != nil {
		if _, ok := err.(*keystore.ErrKeyNotFound); ok {
			return "", fmt.Errorf("no API key configured: run 'rainy keys set' or export RAINY_API_KEY")
		}
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return key, nil
}

// newClient builds an SDK client from the stored key, the loaded config,
// and the global flags.
func newClient() (*core.Client, error) {
	key, err := apiKey()
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}

	var opts []core.ConfigOption
	if baseURL != "" {
		opts = append(opts, core.WithBaseURL(baseURL))
	}
	if cfg.RequestsPerMinute > 0 {
		opts = append(opts, core.WithRequestsPerMinute(cfg.RequestsPerMinute))
	}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, core.WithTimeout(cfg.Timeout()))
	}
	if cfg.MaxRetries != nil {
		opts = append(opts, core.WithMaxRetries(*cfg.MaxRetries))
	}

	client, err := core.NewClient(core.NewConfig(key, opts...))
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}
	return client, nil
}

// apiError maps SDK errors to exit codes.
func apiError(err error) error {
	switch {
	case errors.Is(err, core.ErrNetwork), errors.Is(err, core.ErrTimeout):
		return exitWithCode(ExitNetwork, err)
	case errors.Is(err, core.ErrInvalidRequest):
		return exitWithCode(ExitValidation, err)
	default:
		return exitWithCode(ExitAPI, err)
	}
}

// outputJSON pretty-prints v to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) ExitCode() int {
	return e.code
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}
