package repository

import (
	"context"
	"strings"

	"anoa.com/charityhub/internal/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CampaignStats is a campaign row with its donation aggregates.
type CampaignStats struct {
	entity.Campaign
	TotalDonations decimal.Decimal
	DonorCount     int64
}

type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	Update(ctx context.Context, campaign *entity.Campaign) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	// CountDependents counts donations and fund usage rows pointing at the campaign.
	CountDependents(ctx context.Context, id uuid.UUID) (int64, error)

	FindAllWithStats(ctx context.Context) ([]CampaignStats, error)
	FindWithStatsByID(ctx context.Context, id uuid.UUID) (*CampaignStats, error)
	FindWithStatsByIDs(ctx context.Context, ids []uuid.UUID) ([]CampaignStats, error)
	SearchWithStats(ctx context.Context, term string) ([]CampaignStats, error)
}

type campaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

func (r *campaignRepository) Update(ctx context.Context, campaign *entity.Campaign) error {
	return r.db.WithContext(ctx).Save(campaign).Error
}

func (r *campaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	var campaign entity.Campaign
	if err := r.db.WithContext(ctx).First(&campaign, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Campaign{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *campaignRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Campaign{}).Count(&count).Error
	return count, err
}

func (r *campaignRepository) CountDependents(ctx context.Context, id uuid.UUID) (int64, error) {
	var donations, usages int64
	if err := r.db.WithContext(ctx).Model(&entity.Donation{}).
		Where("campaign_id = ?", id).Count(&donations).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.FundUsage{}).
		Where("campaign_id = ?", id).Count(&usages).Error; err != nil {
		return 0, err
	}
	return donations + usages, nil
}

// withStats left-joins donations so campaigns without any still appear with zero totals.
func (r *campaignRepository) withStats(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.Campaign{}).
		Select("campaigns.*, COALESCE(SUM(donations.amount), 0) AS total_donations, COUNT(DISTINCT donations.donor_id) AS donor_count").
		Joins("LEFT JOIN donations ON donations.campaign_id = campaigns.id").
		Group("campaigns.id").
		Order("campaigns.created_at DESC")
}

func (r *campaignRepository) FindAllWithStats(ctx context.Context) ([]CampaignStats, error) {
	rows := []CampaignStats{}
	if err := r.withStats(ctx).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *campaignRepository) FindWithStatsByID(ctx context.Context, id uuid.UUID) (*CampaignStats, error) {
	rows := []CampaignStats{}
	if err := r.withStats(ctx).Where("campaigns.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// FindWithStatsByIDs keeps the order of ids, which carries search relevance.
func (r *campaignRepository) FindWithStatsByIDs(ctx context.Context, ids []uuid.UUID) ([]CampaignStats, error) {
	if len(ids) == 0 {
		return []CampaignStats{}, nil
	}

	var rows []CampaignStats
	if err := r.withStats(ctx).Where("campaigns.id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]CampaignStats, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	ordered := make([]CampaignStats, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

func (r *campaignRepository) SearchWithStats(ctx context.Context, term string) ([]CampaignStats, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	rows := []CampaignStats{}
	err := r.withStats(ctx).
		Where("LOWER(campaigns.name) LIKE ? OR LOWER(campaigns.description) LIKE ?", pattern, pattern).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
