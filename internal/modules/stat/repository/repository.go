package repository

import (
	"context"
	"time"

	"anoa.com/charityhub/internal/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DonationTotals struct {
	DonationCount int64
	TotalRaised   decimal.Decimal
}

type DonorTotals struct {
	TotalDonated       decimal.Decimal
	CampaignsSupported int64
}

type StatRepository interface {
	CountCampaigns(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role string) (int64, error)
	DonationTotals(ctx context.Context) (DonationTotals, error)
	DonorTotals(ctx context.Context, donorID uuid.UUID) (DonorTotals, error)
	// LastDonationAt is nil when the donor has never donated.
	LastDonationAt(ctx context.Context, donorID uuid.UUID) (*time.Time, error)
	CountAssignments(ctx context.Context, volunteerID uuid.UUID) (int64, error)
	CountUpcomingAssignments(ctx context.Context, volunteerID uuid.UUID, after time.Time) (int64, error)
}

type statRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) StatRepository {
	return &statRepository{db: db}
}

func (r *statRepository) CountCampaigns(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Campaign{}).Count(&count).Error
	return count, err
}

func (r *statRepository) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *statRepository) DonationTotals(ctx context.Context) (DonationTotals, error) {
	var totals DonationTotals
	err := r.db.WithContext(ctx).
		Model(&entity.Donation{}).
		Select("COUNT(*) AS donation_count, COALESCE(SUM(amount), 0) AS total_raised").
		Scan(&totals).Error
	return totals, err
}

func (r *statRepository) DonorTotals(ctx context.Context, donorID uuid.UUID) (DonorTotals, error) {
	var totals DonorTotals
	err := r.db.WithContext(ctx).
		Model(&entity.Donation{}).
		Select("COALESCE(SUM(amount), 0) AS total_donated, COUNT(DISTINCT campaign_id) AS campaigns_supported").
		Where("donor_id = ?", donorID).
		Scan(&totals).Error
	return totals, err
}

func (r *statRepository) LastDonationAt(ctx context.Context, donorID uuid.UUID) (*time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).
		Model(&entity.Donation{}).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Limit(1).
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, nil
	}
	return &times[0], nil
}

func (r *statRepository) CountAssignments(ctx context.Context, volunteerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.VolunteerAssignment{}).
		Where("volunteer_id = ?", volunteerID).
		Count(&count).Error
	return count, err
}

func (r *statRepository) CountUpcomingAssignments(ctx context.Context, volunteerID uuid.UUID, after time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.VolunteerAssignment{}).
		Joins("JOIN events ON events.id = volunteer_assignments.event_id").
		Where("volunteer_assignments.volunteer_id = ? AND events.date > ?", volunteerID, after.UTC()).
		Count(&count).Error
	return count, err
}
