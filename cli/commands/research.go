package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/enosislabs/rainy-go/core"
)

var (
	researchProvider   string
	researchDepth      string
	researchMaxSources int
	researchAsync      bool
)

var researchCmd = &cobra.Command{
	Use:   "research <topic>",
	Short: "Run deep research on a topic",
	Long: `Run agentic deep research on a topic.

Requires a plan with the web research feature. With --async the task is
queued and a task ID is printed instead of the result.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		topic := strings.Join(args, " ")
		cfg := &core.ResearchConfig{
			Provider:   core.ResearchProvider(researchProvider),
			Depth:      core.ResearchDepth(researchDepth),
			MaxSources: researchMaxSources,
			Async:      researchAsync,
		}

		resp, err := client.Research(context.Background(), topic, cfg)
		if err != nil {
			return apiError(err)
		}

		if jsonOutput {
			return outputJSON(resp)
		}

		if resp.TaskID != "" {
			fmt.Printf("Task queued: %s\n", resp.TaskID)
			return nil
		}
		fmt.Println(resp.Result)
		return nil
	},
}

func init() {
	researchCmd.Flags().StringVar(&researchProvider, "provider", "", "search provider (exa, tavily)")
	researchCmd.Flags().StringVar(&researchDepth, "depth", "", "research depth (basic, advanced)")
	researchCmd.Flags().IntVar(&researchMaxSources, "max-sources", 0, "maximum sources to consult")
	researchCmd.Flags().BoolVar(&researchAsync, "async", false, "queue the task and return immediately")

	rootCmd.AddCommand(researchCmd)
}
