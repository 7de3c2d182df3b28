package repository

import (
	"context"

	"anoa.com/charityhub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationRepository interface {
	Create(ctx context.Context, donation *entity.Donation) error
	// FindByID loads the donation with its donor and campaign.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Donation, error)
	FindByDonor(ctx context.Context, donorID uuid.UUID) ([]*entity.Donation, error)
	FindByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*entity.Donation, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Donation, error)
	CampaignExists(ctx context.Context, campaignID uuid.UUID) (bool, error)
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *entity.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Donation, error) {
	var donation entity.Donation
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Campaign").
		First(&donation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) FindByDonor(ctx context.Context, donorID uuid.UUID) ([]*entity.Donation, error) {
	donations := []*entity.Donation{}
	err := r.db.WithContext(ctx).
		Preload("Campaign").
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&donations).Error
	return donations, err
}

func (r *donationRepository) FindByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*entity.Donation, error) {
	donations := []*entity.Donation{}
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&donations).Error
	return donations, err
}

func (r *donationRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Donation, error) {
	donations := []*entity.Donation{}
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Campaign").
		Order("created_at DESC").
		Limit(limit).
		Find(&donations).Error
	return donations, err
}

func (r *donationRepository) CampaignExists(ctx context.Context, campaignID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Campaign{}).Where("id = ?", campaignID).Count(&count).Error
	return count > 0, err
}
