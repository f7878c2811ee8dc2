package core

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// UsageStats is a usage report over a trailing window of days.
type UsageStats struct {
	PeriodDays         int                 `json:"period_days"`
	DailyUsage         []DailyUsage        `json:"daily_usage"`
	RecentTransactions []CreditTransaction `json:"recent_transactions"`
	TotalRequests      int64               `json:"total_requests"`
	TotalTokens        int64               `json:"total_tokens"`
}

// DailyUsage is one day's consumption.
type DailyUsage struct {
	Date        string  `json:"date"`
	CreditsUsed float64 `json:"credits_used"`
	Requests    int64   `json:"requests"`
	Tokens      int64   `json:"tokens"`
}

// TransactionType classifies a credit transaction.
type TransactionType string

const (
	TransactionUsage    TransactionType = "usage"
	TransactionReset    TransactionType = "reset"
	TransactionPurchase TransactionType = "purchase"
	TransactionRefund   TransactionType = "refund"
)

// CreditTransaction is one movement on the account's credit balance.
type CreditTransaction struct {
	ID                  uuid.UUID       `json:"id"`
	TransactionType     TransactionType `json:"transaction_type"`
	CreditsAmount       float64         `json:"credits_amount"`
	CreditsBalanceAfter float64         `json:"credits_balance_after"`
	Provider            string          `json:"provider,omitempty"`
	Model               string          `json:"model,omitempty"`
	Description         string          `json:"description"`
	CreatedAt           time.Time       `json:"created_at"`
}

// CreditInfo summarizes the current balance and projected costs.
type CreditInfo struct {
	CurrentCredits      float64 `json:"current_credits"`
	EstimatedCost       float64 `json:"estimated_cost"`
	CreditsAfterRequest float64 `json:"credits_after_request"`
	ResetDate           string  `json:"reset_date"`
}

// GetUsageStats fetches usage statistics for the trailing days window.
// days of zero uses the server default of 30.
func (c *Client) GetUsageStats(ctx context.Context, days int) (*UsageStats, error) {
	path := "/usage/stats"
	if days > 0 {
		path = fmt.Sprintf("/usage/stats?days=%d", days)
	}

	var stats UsageStats
	if err := c.send(ctx, http.MethodGet, path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetCreditInfo fetches the current credit balance and cost estimates.
// days of zero uses the server default window.
func (c *Client) GetCreditInfo(ctx context.Context, days int) (*CreditInfo, error) {
	path := "/usage/credits"
	if days > 0 {
		path = fmt.Sprintf("/usage/credits?days=%d", days)
	}

	var resp struct {
		Credits CreditInfo `json:"credits"`
	}
	if err := c.send(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Credits, nil
}
