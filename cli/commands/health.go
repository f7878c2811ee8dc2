package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/enosislabs/rainy-go/core"
)

var healthDetailed bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check API health",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		ctx := context.Background()
		var status *core.HealthStatus
		if healthDetailed {
			status, err = client.DetailedHealthCheck(ctx)
		} else {
			status, err = client.HealthCheck(ctx)
		}
		if err != nil {
			return apiError(err)
		}

		if jsonOutput {
			return outputJSON(status)
		}

		fmt.Printf("Status: %s\n", status.Status)
		if status.Uptime > 0 {
			fmt.Printf("Uptime: %.0fs\n", status.Uptime)
		}
		if status.Services != nil {
			fmt.Printf("  database:  %s\n", upDown(status.Services.Database))
			if status.Services.Redis != nil {
				fmt.Printf("  redis:     %s\n", upDown(*status.Services.Redis))
			}
			fmt.Printf("  providers: %s\n", upDown(status.Services.Providers))
		}

		if !status.Healthy() {
			return exitWithCode(ExitAPI, fmt.Errorf("API reported status %q", status.Status))
		}
		return nil
	},
}

func upDown(ok bool) string {
	if ok {
		return "up"
	}
	return "down"
}

func init() {
	healthCmd.Flags().BoolVar(&healthDetailed, "detailed", false, "include per-service status")
	rootCmd.AddCommand(healthCmd)
}
