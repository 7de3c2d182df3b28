package dto

import (
	"anoa.com/charityhub/internal/entity"
	"github.com/shopspring/decimal"
)

type CreateCampaignRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	GoalAmount  string `json:"goal_amount" binding:"required,decimal_gt0"`
}

// UpdateCampaignRequest is a partial update; nil fields are left unchanged.
type UpdateCampaignRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	GoalAmount  *string `json:"goal_amount" binding:"omitempty,decimal_gt0"`
	Status      *string `json:"status" binding:"omitempty,oneof=active completed archived"`
}

type SearchQuery struct {
	Q string `form:"q"`
}

type CampaignWithStats struct {
	entity.Campaign
	TotalDonations     decimal.Decimal `json:"total_donations"`
	DonorCount         int64           `json:"donor_count"`
	ProgressPercentage int             `json:"progress_percentage"`
}
