package core

import (
	"context"
	"errors"
	"net/http"
)

// ResearchProvider selects the search backend for web research.
type ResearchProvider string

const (
	ResearchProviderExa    ResearchProvider = "exa"
	ResearchProviderTavily ResearchProvider = "tavily"
)

// ResearchDepth controls how thorough a research run is.
type ResearchDepth string

const (
	ResearchDepthBasic    ResearchDepth = "basic"
	ResearchDepthAdvanced ResearchDepth = "advanced"
)

// ResearchConfig configures a web research request. The zero value uses the
// Exa provider at basic depth with up to ten sources.
type ResearchConfig struct {
	Provider   ResearchProvider
	Depth      ResearchDepth
	MaxSources int
	// Async queues the research and returns a task ID instead of waiting
	// for the report.
	Async bool
}

// researchRequest is the wire shape of a research call.
type researchRequest struct {
	Topic      string           `json:"topic"`
	Provider   ResearchProvider `json:"provider"`
	Depth      ResearchDepth    `json:"depth"`
	MaxSources int              `json:"maxSources"`
	Async      bool             `json:"async"`
}

// DeepResearchResponse is the outcome of a research call. Result and
// GeneratedAt are set in sync mode; TaskID and Message in async mode.
type DeepResearchResponse struct {
	Success     bool   `json:"success"`
	Mode        string `json:"mode"`
	Result      string `json:"result,omitempty"`
	TaskID      string `json:"taskId,omitempty"`
	GeneratedAt string `json:"generatedAt,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Research runs deep web research on a topic through the agent network.
// The endpoint is mounted at the server root and requires a plan with the
// web_research feature; without it the call fails with ErrAuthentication
// and code FEATURE_NOT_AVAILABLE.
func (c *Client) Research(ctx context.Context, topic string, cfg *ResearchConfig) (*DeepResearchResponse, error) {
	if topic == "" {
		return nil, invalidRequest("research topic cannot be empty")
	}

	if cfg == nil {
		cfg = &ResearchConfig{}
	}
	req := researchRequest{
		Topic:      topic,
		Provider:   cfg.Provider,
		Depth:      cfg.Depth,
		MaxSources: cfg.MaxSources,
		Async:      cfg.Async,
	}
	if req.Provider == "" {
		req.Provider = ResearchProviderExa
	}
	if req.Depth == "" {
		req.Depth = ResearchDepthBasic
	}
	if req.MaxSources <= 0 {
		req.MaxSources = 10
	}

	var resp DeepResearchResponse
	err := c.sendRoot(ctx, http.MethodPost, "/agents/research", req, &resp)
	if err != nil {
		var ae *APIError
		if errors.As(err, &ae) && ae.Status == http.StatusForbidden {
			return nil, &APIError{
				Status:    http.StatusForbidden,
				Code:      "FEATURE_NOT_AVAILABLE",
				Message:   "web research requires a plan with the web_research feature",
				RequestID: ae.RequestID,
				Retryable: false,
				Err:       ErrAuthentication,
			}
		}
		return nil, err
	}
	return &resp, nil
}
