package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CampaignActive    = "active"
	CampaignCompleted = "completed"
	CampaignArchived  = "archived"
)

type Campaign struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	GoalAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"goal_amount"`
	Status      string          `gorm:"size:20;not null;default:active" json:"status"`
	CoverURL    *string         `gorm:"type:text" json:"cover_url,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CampaignActive
	}
	return nil
}

// CampaignSummary is the public slice of a campaign embedded in other payloads.
type CampaignSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
