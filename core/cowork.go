package core

import (
	"context"
	"net/http"
	"strings"
)

// CoworkPlan identifies the subscription plan behind an API key.
type CoworkPlan struct {
	// ID is the plan identifier: "free", "go", "go_plus", "plus", "pro",
	// or "pro_plus".
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsPaid reports whether the plan is a paid subscription.
func (p CoworkPlan) IsPaid() bool {
	return p.ID != "" && p.ID != "free"
}

// CoworkUsage tracks consumption against the plan's limits.
type CoworkUsage struct {
	TasksUsedToday  int  `json:"tasks_used_today"`
	MaxTasksPerDay  *int `json:"max_tasks_per_day,omitempty"`
	TokensUsedToday int  `json:"tokens_used_today"`
}

// Remaining returns the tasks left today, or -1 when the plan is
// unlimited.
func (u CoworkUsage) Remaining() int {
	if u.MaxTasksPerDay == nil {
		return -1
	}
	if rem := *u.MaxTasksPerDay - u.TasksUsedToday; rem > 0 {
		return rem
	}
	return 0
}

// CoworkProfile is the account profile attached to the API key.
type CoworkProfile struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Plan  CoworkPlan  `json:"plan"`
	Usage CoworkUsage `json:"usage"`
}

// CoworkFeatures lists the premium features the plan grants.
type CoworkFeatures struct {
	WebResearch     bool `json:"web_research"`
	DocumentExport  bool `json:"document_export"`
	ImageAnalysis   bool `json:"image_analysis"`
	PrioritySupport bool `json:"priority_support"`
}

// CoworkModels is the model list available to the current plan.
type CoworkModels struct {
	Models []string `json:"models"`
	Plan   string   `json:"plan,omitempty"`
}

// CoworkCapabilities is the full capability set derived from the profile:
// plan, models, and feature gates.
type CoworkCapabilities struct {
	Profile        CoworkProfile  `json:"profile"`
	Features       CoworkFeatures `json:"features"`
	IsValid        bool           `json:"is_valid"`
	Models         []string       `json:"models"`
	UpgradeMessage string         `json:"upgrade_message,omitempty"`
}

// FreeCapabilities is the capability set of an absent or invalid key.
func FreeCapabilities() *CoworkCapabilities {
	return &CoworkCapabilities{
		Profile: CoworkProfile{
			Plan: CoworkPlan{ID: "free", Name: "Free"},
		},
		Models:         []string{"gemini-2.0-flash"},
		UpgradeMessage: "Upgrade to a paid plan for more models and features",
	}
}

// CanUseModel reports whether the plan grants access to model.
func (c *CoworkCapabilities) CanUseModel(model string) bool {
	for _, m := range c.Models {
		if m == model {
			return true
		}
	}
	return false
}

// CanUseFeature reports whether the named feature gate is open. Unknown
// feature names are closed.
func (c *CoworkCapabilities) CanUseFeature(feature string) bool {
	switch feature {
	case "web_research":
		return c.Features.WebResearch
	case "document_export":
		return c.Features.DocumentExport
	case "image_analysis":
		return c.Features.ImageAnalysis
	case "priority_support":
		return c.Features.PrioritySupport
	default:
		return false
	}
}

// CanMakeRequest reports whether the daily task budget has room.
func (c *CoworkCapabilities) CanMakeRequest() bool {
	return c.IsValid && c.Profile.Usage.Remaining() != 0
}

// GetCoworkProfile fetches the profile behind the current API key.
func (c *Client) GetCoworkProfile(ctx context.Context) (*CoworkProfile, error) {
	var profile CoworkProfile
	if err := c.send(ctx, http.MethodGet, "/cowork/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetCoworkModels fetches just the model list for the current plan. Cheaper
// than deriving full capabilities when only the models matter.
func (c *Client) GetCoworkModels(ctx context.Context) (*CoworkModels, error) {
	var models CoworkModels
	if err := c.send(ctx, http.MethodGet, "/cowork/models", nil, &models); err != nil {
		return nil, err
	}
	return &models, nil
}

// GetCoworkCapabilities fetches the profile and derives the plan's model
// list and feature gates from it. An invalid or expired key degrades to the
// free capability set rather than failing.
func (c *Client) GetCoworkCapabilities(ctx context.Context) (*CoworkCapabilities, error) {
	profile, err := c.GetCoworkProfile(ctx)
	if err != nil {
		if IsRetryable(err) {
			return nil, err
		}
		return FreeCapabilities(), nil
	}

	return &CoworkCapabilities{
		Profile:  *profile,
		Features: featuresForPlan(profile.Plan),
		IsValid:  true,
		Models:   modelsForPlan(profile.Plan),
	}, nil
}

// HasPaidPlan reports whether the current key belongs to a paid plan.
func (c *Client) HasPaidPlan(ctx context.Context) bool {
	caps, err := c.GetCoworkCapabilities(ctx)
	return err == nil && caps.Profile.Plan.IsPaid()
}

// modelsForPlan maps a plan to its model allowance.
func modelsForPlan(plan CoworkPlan) []string {
	switch plan.ID {
	case "free":
		return []string{"gemini-2.0-flash"}
	case "go", "go_plus":
		return []string{"gemini-2.0-flash", ModelGemini25Flash}
	case "plus":
		return []string{"gemini-2.0-flash", ModelGemini25Flash, ModelGemini25Pro}
	case "pro", "pro_plus":
		return []string{"gemini-2.0-flash", ModelGemini25Flash, ModelGemini25Pro, "claude-sonnet-4"}
	default:
		return nil
	}
}

// featuresForPlan maps a plan to its feature gates.
func featuresForPlan(plan CoworkPlan) CoworkFeatures {
	return CoworkFeatures{
		WebResearch:     plan.ID != "free",
		DocumentExport:  plan.ID != "free",
		ImageAnalysis:   true,
		PrioritySupport: strings.Contains(plan.ID, "pro"),
	}
}

// OfflineCapabilities reconstructs a pessimistic capability set from a
// cached plan, for use when the API is unreachable.
func OfflineCapabilities(cached *CoworkPlan) *CoworkCapabilities {
	if cached == nil || !cached.IsPaid() {
		return FreeCapabilities()
	}
	return &CoworkCapabilities{
		Profile: CoworkProfile{
			Name: "Offline User",
			Plan: *cached,
		},
		IsValid: true,
		Models:  []string{ModelGemini25Flash},
	}
}
