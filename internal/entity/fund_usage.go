package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FundUsage struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"campaign_id"`
	Campaign    *Campaign       `gorm:"foreignKey:CampaignID;constraint:OnDelete:RESTRICT" json:"-"`
	Description string          `gorm:"type:text;not null" json:"description"`
	AmountSpent decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount_spent"`
	SpentAt     time.Time       `gorm:"not null;index" json:"spent_at"`
}

func (FundUsage) TableName() string {
	return "fund_usage"
}

func (f *FundUsage) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.SpentAt.IsZero() {
		f.SpentAt = tx.NowFunc()
	}
	return nil
}
