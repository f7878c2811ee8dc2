package core

import "encoding/json"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single message in a conversation.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage creates a message with the system role.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage creates a message with the user role.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}

// AssistantMessage creates a message with the assistant role.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleAssistant, Content: content}
}

// Ptr returns a pointer to v. Optional request fields are pointers so that
// zero values can be expressed explicitly.
func Ptr[T any](v T) *T {
	return &v
}

// ChatCompletionRequest describes a chat completion call. Optional fields
// are pointers and omitted from the wire format when nil.
type ChatCompletionRequest struct {
	// Model is the identifier of the model to run, e.g. ModelGPT4o.
	Model string `json:"model"`

	// Messages is the conversation history, oldest first.
	Messages []ChatMessage `json:"messages"`

	// Temperature is the sampling temperature in [0, 2].
	Temperature *float32 `json:"temperature,omitempty"`

	// MaxTokens caps the number of generated tokens.
	MaxTokens *int `json:"max_tokens,omitempty"`

	// TopP is the nucleus sampling parameter in [0, 1].
	TopP *float32 `json:"top_p,omitempty"`

	// FrequencyPenalty penalizes tokens by frequency, in [-2, 2].
	FrequencyPenalty *float32 `json:"frequency_penalty,omitempty"`

	// PresencePenalty penalizes tokens already present, in [-2, 2].
	PresencePenalty *float32 `json:"presence_penalty,omitempty"`

	// Stop lists up to four sequences that end generation.
	Stop []string `json:"stop,omitempty"`

	// User is an opaque end-user identifier for tracking.
	User string `json:"user,omitempty"`

	// Provider hints the router toward a specific upstream provider.
	Provider string `json:"provider,omitempty"`

	// Stream requests a streamed response.
	Stream *bool `json:"stream,omitempty"`

	// LogitBias adjusts the likelihood of specific tokens.
	LogitBias json.RawMessage `json:"logit_bias,omitempty"`

	// Logprobs requests log probabilities for output tokens.
	Logprobs *bool `json:"logprobs,omitempty"`

	// TopLogprobs is the number of most likely tokens to return per
	// position, in [0, 20].
	TopLogprobs *int `json:"top_logprobs,omitempty"`

	// N is the number of completions to generate.
	N *int `json:"n,omitempty"`

	// ResponseFormat constrains the output format.
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`

	// Tools lists the tools the model may call.
	Tools []Tool `json:"tools,omitempty"`

	// ToolChoice controls which tool, if any, the model calls.
	ToolChoice *ToolChoice `json:"tool_choice,omitempty"`

	// ThinkingConfig configures reasoning for Gemini 3 and 2.5 models.
	ThinkingConfig *ThinkingConfig `json:"thinking_config,omitempty"`
}

// ChatCompletionResponse is a completed (non-streaming) chat completion.
type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   *Usage       `json:"usage,omitempty"`
}

// Text returns the content of the first choice, or "" when there are no
// choices.
func (r *ChatCompletionResponse) Text() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// ChatChoice is one generated completion.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// Usage reports token consumption for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
	// ThoughtsTokenCount counts reasoning tokens for thinking-capable
	// models. Zero when the model does not report it.
	ThoughtsTokenCount int `json:"thoughts_token_count,omitempty"`
}

// ResponseFormatType selects the output format the model must produce.
type ResponseFormatType string

const (
	ResponseFormatText       ResponseFormatType = "text"
	ResponseFormatJSONObject ResponseFormatType = "json_object"
	ResponseFormatJSONSchema ResponseFormatType = "json_schema"
)

// ResponseFormat constrains model output. Schema is only consulted when
// Type is ResponseFormatJSONSchema.
type ResponseFormat struct {
	Type   ResponseFormatType `json:"type"`
	Schema json.RawMessage    `json:"json_schema,omitempty"`
}

// Tool is a capability the model may invoke.
type Tool struct {
	Type     string             `json:"type"`
	Function FunctionDefinition `json:"function"`
}

// NewFunctionTool creates a function tool from a definition.
func NewFunctionTool(fn FunctionDefinition) Tool {
	return Tool{Type: "function", Function: fn}
}

// FunctionDefinition describes a callable function, with parameters as a
// JSON Schema object.
type FunctionDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// ToolChoice controls tool selection. Mode is "none", "auto", or empty when
// Function names a specific tool.
type ToolChoice struct {
	Mode     string
	Function string
}

// ToolChoiceNone disables tool calls.
func ToolChoiceNone() *ToolChoice { return &ToolChoice{Mode: "none"} }

// ToolChoiceAuto lets the model decide.
func ToolChoiceAuto() *ToolChoice { return &ToolChoice{Mode: "auto"} }

// ToolChoiceFunction forces a call to the named function.
func ToolChoiceFunction(name string) *ToolChoice {
	return &ToolChoice{Function: name}
}

// MarshalJSON emits the wire shape: a bare string for the none/auto modes,
// an object for a named function.
func (t ToolChoice) MarshalJSON() ([]byte, error) {
	if t.Mode != "" {
		return json.Marshal(t.Mode)
	}
	return json.Marshal(struct {
		Type     string `json:"type"`
		Function struct {
			Name string `json:"name"`
		} `json:"function"`
	}{
		Type: "function",
		Function: struct {
			Name string `json:"name"`
		}{Name: t.Function},
	})
}

// UnmarshalJSON accepts either form.
func (t *ToolChoice) UnmarshalJSON(data []byte) error {
	var mode string
	if err := json.Unmarshal(data, &mode); err == nil {
		t.Mode = mode
		t.Function = ""
		return nil
	}
	var obj struct {
		Function struct {
			Name string `json:"name"`
		} `json:"function"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.Mode = ""
	t.Function = obj.Function.Name
	return nil
}

// ThinkingLevel selects reasoning depth for Gemini 3 models.
type ThinkingLevel string

const (
	// ThinkingMinimal means the model likely will not think. Flash only.
	ThinkingMinimal ThinkingLevel = "minimal"
	ThinkingLow     ThinkingLevel = "low"
	// ThinkingMedium balances reasoning and speed. Flash only.
	ThinkingMedium ThinkingLevel = "medium"
	ThinkingHigh   ThinkingLevel = "high"
)

// ThinkingConfig configures reasoning for thinking-capable models.
// ThinkingLevel applies to Gemini 3 and ThinkingBudget to Gemini 2.5; a
// request must not set both.
type ThinkingConfig struct {
	// IncludeThoughts requests thought summaries in the response.
	IncludeThoughts *bool `json:"include_thoughts,omitempty"`

	// ThinkingLevel is the Gemini 3 reasoning depth.
	ThinkingLevel ThinkingLevel `json:"thinking_level,omitempty"`

	// ThinkingBudget is the Gemini 2.5 thinking-token budget. -1 means
	// dynamic, 0 disables thinking.
	ThinkingBudget *int `json:"thinking_budget,omitempty"`
}

// ChatCompletionChunk is one streamed delta of a chat completion.
type ChatCompletionChunk struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []StreamChoice `json:"choices"`
	// Usage is only present on the final chunk.
	Usage *Usage `json:"usage,omitempty"`
}

// Delta returns the new content carried by this chunk, or "" when the
// chunk has no content delta.
func (c *ChatCompletionChunk) Delta() string {
	if len(c.Choices) == 0 || c.Choices[0].Delta.Content == nil {
		return ""
	}
	return *c.Choices[0].Delta.Content
}

// StreamChoice is one choice within a streamed chunk.
type StreamChoice struct {
	Index        int         `json:"index"`
	Delta        StreamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason,omitempty"`
}

// StreamDelta is the incremental payload of a streamed choice.
type StreamDelta struct {
	Role      string     `json:"role,omitempty"`
	Content   *string    `json:"content,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is a streamed tool invocation fragment.
type ToolCall struct {
	Index    int               `json:"index"`
	ID       string            `json:"id,omitempty"`
	Type     string            `json:"type,omitempty"`
	Function *ToolCallFunction `json:"function,omitempty"`
}

// ToolCallFunction carries the function fragment of a streamed tool call.
type ToolCallFunction struct {
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// Model identifiers accepted by the chat completion endpoint.
const (
	// OpenAI.
	ModelGPT4o   = "gpt-4o"
	ModelGPT5    = "gpt-5"
	ModelGPT5Pro = "gpt-5-pro"
	ModelO3      = "o3"
	ModelO4Mini  = "o4-mini"

	// Google Gemini 2.5.
	ModelGemini25Pro       = "gemini-2.5-pro"
	ModelGemini25Flash     = "gemini-2.5-flash"
	ModelGemini25FlashLite = "gemini-2.5-flash-lite"

	// Google Gemini 3, with thinking support.
	ModelGemini3Pro      = "gemini-3-pro-preview"
	ModelGemini3Flash    = "gemini-3-flash-preview"
	ModelGemini3ProImage = "gemini-3-pro-image-preview"

	// Groq.
	ModelLlama318BInstant    = "llama-3.1-8b-instant"
	ModelLlama3370BVersatile = "llama-3.3-70b-versatile"
	ModelKimiK2              = "moonshotai/kimi-k2-instruct-0905"

	// Cerebras.
	ModelCerebrasLlama318B = "cerebras/llama3.1-8b"

	// Enosis Labs.
	ModelAstronomer1    = "astronomer-1"
	ModelAstronomer1Max = "astronomer-1-max"
	ModelAstronomer15   = "astronomer-1.5"
	ModelAstronomer2    = "astronomer-2"
	ModelAstronomer2Pro = "astronomer-2-pro"
)

// Provider identifiers accepted as routing hints.
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGroq       = "groq"
	ProviderCerebras   = "cerebras"
	ProviderGemini     = "gemini"
	ProviderEnosisLabs = "enosislabs"
)
