package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/enosislabs/rainy-go/core"
)

var (
	chatPrompt      string
	chatSystem      string
	chatTemperature float32
	chatMaxTokens   int
	chatStream      bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Send a chat completion request",
	Long: `Send a prompt to a model and print the completion.

The model is taken from --model, falling back to default_model in the
config file. With --stream the response is printed incrementally as the
model produces it.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatPrompt, "prompt", "p", "", "prompt to send (required)")
	chatCmd.Flags().StringVarP(&chatSystem, "system", "s", "", "system instruction")
	chatCmd.Flags().Float32VarP(&chatTemperature, "temperature", "t", 0, "sampling temperature (0-2)")
	chatCmd.Flags().IntVar(&chatMaxTokens, "max-tokens", 0, "maximum tokens to generate")
	chatCmd.Flags().BoolVar(&chatStream, "stream", false, "stream the response")
	chatCmd.MarkFlagRequired("prompt")

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if model == "" {
		return exitWithCode(ExitValidation, errors.New("no model specified: use --model or set default_model in the config"))
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	req := &core.ChatCompletionRequest{
		Model: model,
	}
	if chatSystem != "" {
		req.Messages = append(req.Messages, core.SystemMessage(chatSystem))
	}
	req.Messages = append(req.Messages, core.UserMessage(chatPrompt))
	if cmd.Flags().Changed("temperature") {
		req.Temperature = core.Ptr(chatTemperature)
	}
	if chatMaxTokens > 0 {
		req.MaxTokens = core.Ptr(chatMaxTokens)
	}

	ctx := context.Background()

	if chatStream {
		return streamChat(ctx, client, req)
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return apiError(err)
	}

	if jsonOutput {
		return outputJSON(resp)
	}

	fmt.Println(resp.Text())
	if verbose && resp.Usage != nil {
		fmt.Fprintf(os.Stderr, "\ntokens: %d prompt, %d completion, %d total\n",
			resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	}
	return nil
}

func streamChat(ctx context.Context, client *core.Client, req *core.ChatCompletionRequest) error {
	stream, err := client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return apiError(err)
	}
	defer stream.Close()

	for event := range stream.Events() {
		if event.Err != nil {
			// Decode errors are recoverable; the stream keeps going.
			if errors.Is(event.Err, core.ErrDecode) {
				if verbose {
					fmt.Fprintf(os.Stderr, "warning: skipped malformed chunk: %v\n", event.Err)
				}
				continue
			}
			fmt.Println()
			return apiError(event.Err)
		}
		fmt.Print(event.Chunk.Delta())
	}
	fmt.Println()
	return nil
}
