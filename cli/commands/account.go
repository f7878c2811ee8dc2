package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var usageDays int

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show account information",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		user, err := client.GetUserAccount(context.Background())
		if err != nil {
			return apiError(err)
		}

		if jsonOutput {
			return outputJSON(user)
		}

		fmt.Printf("User:    %s\n", user.UserID)
		fmt.Printf("Plan:    %s\n", user.PlanName)
		fmt.Printf("Credits: %.2f (used %.2f this month)\n", user.CurrentCredits, user.CreditsUsedThisMonth)
		fmt.Printf("Resets:  %s\n", user.CreditsResetDate.Format("2006-01-02"))
		if !user.IsActive {
			fmt.Println("Status:  INACTIVE")
		}
		return nil
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show usage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		stats, err := client.GetUsageStats(context.Background(), usageDays)
		if err != nil {
			return apiError(err)
		}

		if jsonOutput {
			return outputJSON(stats)
		}

		fmt.Printf("Period:   last %d days\n", stats.PeriodDays)
		fmt.Printf("Requests: %d\n", stats.TotalRequests)
		fmt.Printf("Tokens:   %d\n", stats.TotalTokens)
		for _, day := range stats.DailyUsage {
			fmt.Printf("  %s  %6d requests  %8d tokens\n", day.Date, day.Requests, day.Tokens)
		}
		return nil
	},
}

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Show credit balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		info, err := client.GetCreditInfo(context.Background(), usageDays)
		if err != nil {
			return apiError(err)
		}

		if jsonOutput {
			return outputJSON(info)
		}

		fmt.Printf("Current credits: %.2f\n", info.CurrentCredits)
		fmt.Printf("Reset date:      %s\n", info.ResetDate)
		return nil
	},
}

func init() {
	usageCmd.Flags().IntVar(&usageDays, "days", 0, "number of days to report (server default when 0)")
	creditsCmd.Flags().IntVar(&usageDays, "days", 0, "number of days to report (server default when 0)")

	rootCmd.AddCommand(accountCmd, usageCmd, creditsCmd)
}
