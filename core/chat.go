package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const chatCompletionsPath = "/chat/completions"

// Validate checks the request against the parameter ranges the API
// enforces, so malformed requests fail before any network traffic.
func (r *ChatCompletionRequest) Validate() error {
	if r.Model == "" {
		return invalidRequest("model is required")
	}
	if len(r.Messages) == 0 {
		return invalidRequest("messages cannot be empty")
	}
	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > 2) {
		return invalidRequest(fmt.Sprintf("temperature must be between 0.0 and 2.0, got %g", *r.Temperature))
	}
	if r.TopP != nil && (*r.TopP < 0 || *r.TopP > 1) {
		return invalidRequest(fmt.Sprintf("top_p must be between 0.0 and 1.0, got %g", *r.TopP))
	}
	if r.FrequencyPenalty != nil && (*r.FrequencyPenalty < -2 || *r.FrequencyPenalty > 2) {
		return invalidRequest(fmt.Sprintf("frequency_penalty must be between -2.0 and 2.0, got %g", *r.FrequencyPenalty))
	}
	if r.PresencePenalty != nil && (*r.PresencePenalty < -2 || *r.PresencePenalty > 2) {
		return invalidRequest(fmt.Sprintf("presence_penalty must be between -2.0 and 2.0, got %g", *r.PresencePenalty))
	}
	if r.MaxTokens != nil && *r.MaxTokens <= 0 {
		return invalidRequest("max_tokens must be greater than 0")
	}
	if r.TopLogprobs != nil && (*r.TopLogprobs < 0 || *r.TopLogprobs > 20) {
		return invalidRequest(fmt.Sprintf("top_logprobs must be between 0 and 20, got %d", *r.TopLogprobs))
	}
	if r.N != nil && *r.N <= 0 {
		return invalidRequest("n must be greater than 0")
	}
	if len(r.Stop) > 4 {
		return invalidRequest("cannot have more than 4 stop sequences")
	}
	for _, seq := range r.Stop {
		if seq == "" {
			return invalidRequest("stop sequences cannot be empty")
		}
		if len(seq) > 64 {
			return invalidRequest("stop sequences cannot be longer than 64 characters")
		}
	}
	if r.ThinkingConfig != nil {
		if err := r.validateThinking(); err != nil {
			return err
		}
	}
	return nil
}

// validateThinking checks the thinking configuration against the model
// family it targets.
func (r *ChatCompletionRequest) validateThinking() error {
	cfg := r.ThinkingConfig
	isGemini3 := strings.Contains(r.Model, "gemini-3")
	isGemini25 := strings.Contains(r.Model, "gemini-2.5")

	if cfg.ThinkingLevel != "" && cfg.ThinkingBudget != nil {
		return invalidRequest("cannot set both thinking_level and thinking_budget in the same request")
	}

	if cfg.ThinkingLevel != "" {
		if !isGemini3 {
			return invalidRequest("thinking_level is only supported for Gemini 3 models")
		}
		isPro := strings.Contains(r.Model, "gemini-3-pro")
		if isPro && (cfg.ThinkingLevel == ThinkingMinimal || cfg.ThinkingLevel == ThinkingMedium) {
			return invalidRequest("Gemini 3 Pro only supports 'low' and 'high' thinking levels")
		}
	}

	if cfg.ThinkingBudget != nil {
		if !isGemini25 {
			return invalidRequest("thinking_budget is only supported for Gemini 2.5 models")
		}
		budget := *cfg.ThinkingBudget
		switch {
		case strings.Contains(r.Model, "2.5-pro"):
			if budget != -1 && (budget < 128 || budget > 32768) {
				return invalidRequest("Gemini 2.5 Pro thinking budget must be -1 (dynamic) or between 128 and 32768")
			}
		case strings.Contains(r.Model, "2.5-flash"):
			if budget != -1 && (budget < 0 || budget > 24576) {
				return invalidRequest("Gemini 2.5 Flash thinking budget must be -1 (dynamic) or between 0 and 24576")
			}
		}
	}

	return nil
}

// SupportsThinking reports whether the requested model accepts a thinking
// configuration.
func (r *ChatCompletionRequest) SupportsThinking() bool {
	return strings.Contains(r.Model, "gemini-3") || strings.Contains(r.Model, "gemini-2.5")
}

func invalidRequest(msg string) error {
	return &APIError{
		Code:      "INVALID_REQUEST",
		Message:   msg,
		Retryable: false,
		Err:       ErrInvalidRequest,
	}
}

// CreateChatCompletion runs a chat completion and returns the full
// response.
func (c *Client) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp ChatCompletionResponse
	if err := c.send(ctx, http.MethodPost, chatCompletionsPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateChatCompletionWithMetadata runs a chat completion and additionally
// returns the observability metadata extracted from the response headers.
func (c *Client) CreateChatCompletionWithMetadata(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, *RequestMetadata, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	var resp ChatCompletionResponse
	md, err := c.sendMetadata(ctx, http.MethodPost, chatCompletionsPath, req, &resp)
	if err != nil {
		return nil, nil, err
	}
	return &resp, md, nil
}
