package dto

import (
	"time"

	"anoa.com/charityhub/internal/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventDonationCreated is the feed message type for a newly recorded donation.
const EventDonationCreated = "donation.created"

type CreateDonationRequest struct {
	CampaignID string `json:"campaign_id" binding:"required,uuid"`
	Amount     string `json:"amount" binding:"required,decimal_gt0"`
}

type DonationResponse struct {
	ID         uuid.UUID               `json:"id"`
	DonorID    uuid.UUID               `json:"donor_id"`
	CampaignID uuid.UUID               `json:"campaign_id"`
	Amount     decimal.Decimal         `json:"amount"`
	ReceiptID  uuid.UUID               `json:"receipt_id"`
	CreatedAt  time.Time               `json:"created_at"`
	Campaign   *entity.CampaignSummary `json:"campaign,omitempty"`
	Donor      *entity.UserSummary     `json:"donor,omitempty"`
}

// DonationEvent is published to the live feed after a donation is recorded.
type DonationEvent struct {
	Type         string          `json:"type"`
	DonationID   uuid.UUID       `json:"donation_id"`
	ReceiptID    uuid.UUID       `json:"receipt_id"`
	Amount       decimal.Decimal `json:"amount"`
	CampaignID   uuid.UUID       `json:"campaign_id"`
	CampaignName string          `json:"campaign_name"`
	DonorID      uuid.UUID       `json:"donor_id"`
	DonorName    string          `json:"donor_name"`
	CreatedAt    time.Time       `json:"created_at"`
}
