package repository

import (
	"context"
	"time"

	"anoa.com/charityhub/internal/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FundUsageRow is a fund usage record with its campaign name.
type FundUsageRow struct {
	ID           uuid.UUID
	CampaignID   uuid.UUID
	CampaignName string
	Description  string
	AmountSpent  decimal.Decimal
	SpentAt      time.Time
}

type SummaryRow struct {
	CampaignID   uuid.UUID
	CampaignName string
	TotalRaised  decimal.Decimal
	TotalSpent   decimal.Decimal
	UsageCount   int64
}

type FundUsageRepository interface {
	Create(ctx context.Context, usage *entity.FundUsage) error
	FindAll(ctx context.Context) ([]FundUsageRow, error)
	FindByID(ctx context.Context, id uuid.UUID) (*FundUsageRow, error)
	Summary(ctx context.Context) ([]SummaryRow, error)
}

type fundUsageRepository struct {
	db *gorm.DB
}

func NewFundUsageRepository(db *gorm.DB) FundUsageRepository {
	return &fundUsageRepository{db: db}
}

func (r *fundUsageRepository) Create(ctx context.Context, usage *entity.FundUsage) error {
	return r.db.WithContext(ctx).Create(usage).Error
}

func (r *fundUsageRepository) withCampaignName(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.FundUsage{}).
		Select("fund_usage.id, fund_usage.campaign_id, campaigns.name AS campaign_name, fund_usage.description, fund_usage.amount_spent, fund_usage.spent_at").
		Joins("JOIN campaigns ON campaigns.id = fund_usage.campaign_id")
}

func (r *fundUsageRepository) FindAll(ctx context.Context) ([]FundUsageRow, error) {
	rows := []FundUsageRow{}
	err := r.withCampaignName(ctx).Order("fund_usage.spent_at DESC").Scan(&rows).Error
	return rows, err
}

func (r *fundUsageRepository) FindByID(ctx context.Context, id uuid.UUID) (*FundUsageRow, error) {
	var rows []FundUsageRow
	if err := r.withCampaignName(ctx).Where("fund_usage.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// Summary uses correlated subqueries so donation and usage rows never multiply each other.
func (r *fundUsageRepository) Summary(ctx context.Context) ([]SummaryRow, error) {
	rows := []SummaryRow{}
	err := r.db.WithContext(ctx).
		Model(&entity.Campaign{}).
		Select(`campaigns.id AS campaign_id, campaigns.name AS campaign_name,
			COALESCE((SELECT SUM(donations.amount) FROM donations WHERE donations.campaign_id = campaigns.id), 0) AS total_raised,
			COALESCE((SELECT SUM(fund_usage.amount_spent) FROM fund_usage WHERE fund_usage.campaign_id = campaigns.id), 0) AS total_spent,
			(SELECT COUNT(*) FROM fund_usage WHERE fund_usage.campaign_id = campaigns.id) AS usage_count`).
		Order("campaigns.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
