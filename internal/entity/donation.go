package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Donation is append-only: nothing updates or deletes it once recorded.
type Donation struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	DonorID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"donor_id"`
	Donor      *User           `gorm:"foreignKey:DonorID;constraint:OnDelete:RESTRICT" json:"-"`
	CampaignID uuid.UUID       `gorm:"type:uuid;not null;index" json:"campaign_id"`
	Campaign   *Campaign       `gorm:"foreignKey:CampaignID;constraint:OnDelete:RESTRICT" json:"-"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	ReceiptID  uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"receipt_id"`
	CreatedAt  time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.ReceiptID == uuid.Nil {
		d.ReceiptID = uuid.New()
	}
	return nil
}
