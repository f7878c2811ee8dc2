package core

import (
	"errors"
	"testing"
)

func validChat() *ChatCompletionRequest {
	return &ChatCompletionRequest{
		Model:    ModelGemini25Flash,
		Messages: []ChatMessage{UserMessage("hi")},
	}
}

func TestChatRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ChatCompletionRequest)
		wantErr bool
	}{
		{
			name:   "valid minimal",
			mutate: func(r *ChatCompletionRequest) {},
		},
		{
			name:    "missing model",
			mutate:  func(r *ChatCompletionRequest) { r.Model = "" },
			wantErr: true,
		},
		{
			name:    "no messages",
			mutate:  func(r *ChatCompletionRequest) { r.Messages = nil },
			wantErr: true,
		},
		{
			name:   "temperature in range",
			mutate: func(r *ChatCompletionRequest) { r.Temperature = Ptr(float32(1.5)) },
		},
		{
			name:    "temperature too high",
			mutate:  func(r *ChatCompletionRequest) { r.Temperature = Ptr(float32(2.1)) },
			wantErr: true,
		},
		{
			name:    "temperature negative",
			mutate:  func(r *ChatCompletionRequest) { r.Temperature = Ptr(float32(-0.1)) },
			wantErr: true,
		},
		{
			name:    "top_p out of range",
			mutate:  func(r *ChatCompletionRequest) { r.TopP = Ptr(float32(1.5)) },
			wantErr: true,
		},
		{
			name:    "frequency penalty out of range",
			mutate:  func(r *ChatCompletionRequest) { r.FrequencyPenalty = Ptr(float32(-2.5)) },
			wantErr: true,
		},
		{
			name:    "presence penalty out of range",
			mutate:  func(r *ChatCompletionRequest) { r.PresencePenalty = Ptr(float32(2.5)) },
			wantErr: true,
		},
		{
			name:    "max tokens zero",
			mutate:  func(r *ChatCompletionRequest) { r.MaxTokens = Ptr(0) },
			wantErr: true,
		},
		{
			name:    "top logprobs too high",
			mutate:  func(r *ChatCompletionRequest) { r.TopLogprobs = Ptr(21) },
			wantErr: true,
		},
		{
			name:    "n zero",
			mutate:  func(r *ChatCompletionRequest) { r.N = Ptr(0) },
			wantErr: true,
		},
		{
			name:    "too many stop sequences",
			mutate:  func(r *ChatCompletionRequest) { r.Stop = []string{"a", "b", "c", "d", "e"} },
			wantErr: true,
		},
		{
			name:    "empty stop sequence",
			mutate:  func(r *ChatCompletionRequest) { r.Stop = []string{""} },
			wantErr: true,
		},
		{
			name: "overlong stop sequence",
			mutate: func(r *ChatCompletionRequest) {
				long := make([]byte, 65)
				for i := range long {
					long[i] = 'x'
				}
				r.Stop = []string{string(long)}
			},
			wantErr: true,
		},
		{
			name:   "four stop sequences",
			mutate: func(r *ChatCompletionRequest) { r.Stop = []string{"a", "b", "c", "d"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validChat()
			tt.mutate(req)
			err := req.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRequest) {
					t.Fatalf("Validate() error = %v, want ErrInvalidRequest", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestThinkingConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		cfg     ThinkingConfig
		wantErr bool
	}{
		{
			name:  "level on gemini 3 flash",
			model: ModelGemini3Flash,
			cfg:   ThinkingConfig{ThinkingLevel: ThinkingMedium},
		},
		{
			name:    "level on non-gemini model",
			model:   ModelGPT4o,
			cfg:     ThinkingConfig{ThinkingLevel: ThinkingHigh},
			wantErr: true,
		},
		{
			name:    "minimal level on gemini 3 pro",
			model:   ModelGemini3Pro,
			cfg:     ThinkingConfig{ThinkingLevel: ThinkingMinimal},
			wantErr: true,
		},
		{
			name:  "high level on gemini 3 pro",
			model: ModelGemini3Pro,
			cfg:   ThinkingConfig{ThinkingLevel: ThinkingHigh},
		},
		{
			name:  "budget on gemini 2.5 flash",
			model: ModelGemini25Flash,
			cfg:   ThinkingConfig{ThinkingBudget: Ptr(1024)},
		},
		{
			name:    "budget on gemini 3",
			model:   ModelGemini3Flash,
			cfg:     ThinkingConfig{ThinkingBudget: Ptr(1024)},
			wantErr: true,
		},
		{
			name:  "dynamic budget on 2.5 pro",
			model: ModelGemini25Pro,
			cfg:   ThinkingConfig{ThinkingBudget: Ptr(-1)},
		},
		{
			name:    "budget below range on 2.5 pro",
			model:   ModelGemini25Pro,
			cfg:     ThinkingConfig{ThinkingBudget: Ptr(64)},
			wantErr: true,
		},
		{
			name:    "budget above range on 2.5 flash",
			model:   ModelGemini25Flash,
			cfg:     ThinkingConfig{ThinkingBudget: Ptr(30000)},
			wantErr: true,
		},
		{
			name:    "level and budget together",
			model:   ModelGemini3Flash,
			cfg:     ThinkingConfig{ThinkingLevel: ThinkingLow, ThinkingBudget: Ptr(512)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validChat()
			req.Model = tt.model
			req.ThinkingConfig = &tt.cfg
			err := req.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("Validate() error = %v, want ErrInvalidRequest", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestSupportsThinking(t *testing.T) {
	req := validChat()
	req.Model = ModelGemini3Flash
	if !req.SupportsThinking() {
		t.Error("gemini 3 should support thinking")
	}
	req.Model = ModelGPT4o
	if req.SupportsThinking() {
		t.Error("gpt-4o should not support thinking")
	}
}
