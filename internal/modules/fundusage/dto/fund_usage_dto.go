package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateFundUsageRequest struct {
	CampaignID  string `json:"campaign_id" binding:"required,uuid"`
	Description string `json:"description" binding:"required"`
	AmountSpent string `json:"amount_spent" binding:"required,decimal_gt0"`
	// SpentAt defaults to now; RFC 3339 or "2006-01-02".
	SpentAt string `json:"spent_at"`
}

type FundUsageResponse struct {
	ID           uuid.UUID       `json:"id"`
	CampaignID   uuid.UUID       `json:"campaign_id"`
	CampaignName string          `json:"campaign_name"`
	Description  string          `json:"description"`
	AmountSpent  decimal.Decimal `json:"amount_spent"`
	SpentAt      time.Time       `json:"spent_at"`
}

// CampaignFundSummary compares what a campaign raised with what it spent.
type CampaignFundSummary struct {
	CampaignID   uuid.UUID       `json:"campaign_id"`
	CampaignName string          `json:"campaign_name"`
	TotalRaised  decimal.Decimal `json:"total_raised"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	UsageCount   int64           `json:"usage_count"`
}
