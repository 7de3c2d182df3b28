package service

import (
	"context"
	"time"

	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/internal/modules/stat/dto"
	"anoa.com/charityhub/internal/modules/stat/repository"
	"github.com/google/uuid"
)

// HoursPerEvent is the flat credit a volunteer earns per assignment. It is a
// policy figure, not a measured duration.
const HoursPerEvent = 4

type StatService interface {
	AdminStats(ctx context.Context) (*dto.AdminStats, error)
	DonorStats(ctx context.Context, donorID uuid.UUID) (*dto.DonorStats, error)
	VolunteerStats(ctx context.Context, volunteerID uuid.UUID) (*dto.VolunteerStats, error)
}

type statService struct {
	repo repository.StatRepository
	now  func() time.Time
}

func NewStatService(repo repository.StatRepository) StatService {
	return &statService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *statService) AdminStats(ctx context.Context) (*dto.AdminStats, error) {
	campaigns, err := s.repo.CountCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	donations, err := s.repo.DonationTotals(ctx)
	if err != nil {
		return nil, err
	}

	volunteers, err := s.repo.CountUsersByRole(ctx, entity.RoleVolunteer)
	if err != nil {
		return nil, err
	}

	return &dto.AdminStats{
		TotalCampaigns:   campaigns,
		TotalDonations:   donations.DonationCount,
		ActiveVolunteers: volunteers,
		TotalRaised:      donations.TotalRaised,
	}, nil
}

func (s *statService) DonorStats(ctx context.Context, donorID uuid.UUID) (*dto.DonorStats, error) {
	totals, err := s.repo.DonorTotals(ctx, donorID)
	if err != nil {
		return nil, err
	}

	last, err := s.repo.LastDonationAt(ctx, donorID)
	if err != nil {
		return nil, err
	}

	return &dto.DonorStats{
		TotalDonated:       totals.TotalDonated,
		CampaignsSupported: totals.CampaignsSupported,
		LastDonation:       last,
	}, nil
}

func (s *statService) VolunteerStats(ctx context.Context, volunteerID uuid.UUID) (*dto.VolunteerStats, error) {
	total, err := s.repo.CountAssignments(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.repo.CountUpcomingAssignments(ctx, volunteerID, s.now())
	if err != nil {
		return nil, err
	}

	return &dto.VolunteerStats{
		UpcomingEvents:   upcoming,
		TotalEvents:      total,
		HoursVolunteered: total * HoursPerEvent,
	}, nil
}
