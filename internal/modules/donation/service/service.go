package service

import (
	"context"
	"errors"

	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/internal/modules/donation/dto"
	"anoa.com/charityhub/internal/modules/donation/repository"
	"anoa.com/charityhub/pkg/apperror"
	"anoa.com/charityhub/pkg/validator"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecentLimit is how many donations the admin dashboard shows.
const RecentLimit = 10

var errDonationNotFound = apperror.NotFound("donation not found")

// Publisher receives donation events for the live feed.
type Publisher interface {
	PublishDonation(ctx context.Context, event dto.DonationEvent) error
}

type DonationService interface {
	Create(ctx context.Context, donorID uuid.UUID, req dto.CreateDonationRequest) (*dto.DonationResponse, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]dto.DonationResponse, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]dto.DonationResponse, error)
	Recent(ctx context.Context) ([]dto.DonationResponse, error)
	// Receipt renders the HTML receipt for a donation owned by donorID.
	Receipt(ctx context.Context, donorID, donationID uuid.UUID) ([]byte, error)
}

type donationService struct {
	repo      repository.DonationRepository
	publisher Publisher
}

// NewDonationService accepts a nil publisher when the live feed is disabled.
func NewDonationService(repo repository.DonationRepository, publisher Publisher) DonationService {
	return &donationService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *donationService) Create(ctx context.Context, donorID uuid.UUID, req dto.CreateDonationRequest) (*dto.DonationResponse, error) {
	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		return nil, apperror.Invalid("Campaign must be a valid id")
	}

	amount, ok := validator.ParseAmount(req.Amount)
	if !ok {
		return nil, apperror.Invalid(validator.AmountMessage("Donation amount"))
	}

	donation := &entity.Donation{
		DonorID:    donorID,
		CampaignID: campaignID,
		Amount:     amount,
	}

	// Campaign existence is left to the foreign key.
	if err := s.repo.Create(ctx, donation); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperror.NotFound("campaign not found")
		}
		return nil, err
	}

	zap.L().Info("donation recorded",
		zap.String("donation_id", donation.ID.String()),
		zap.String("campaign_id", campaignID.String()),
		zap.String("amount", amount.String()))

	s.publish(ctx, donation)

	res := toDonationResponse(donation)
	return &res, nil
}

func (s *donationService) publish(ctx context.Context, donation *entity.Donation) {
	if s.publisher == nil {
		return
	}

	event := dto.DonationEvent{
		Type:       dto.EventDonationCreated,
		DonationID: donation.ID,
		ReceiptID:  donation.ReceiptID,
		Amount:     donation.Amount,
		CampaignID: donation.CampaignID,
		DonorID:    donation.DonorID,
		CreatedAt:  donation.CreatedAt,
	}

	if full, err := s.repo.FindByID(ctx, donation.ID); err == nil {
		if full.Campaign != nil {
			event.CampaignName = full.Campaign.Name
		}
		if full.Donor != nil {
			event.DonorName = full.Donor.Name
		}
	}

	if err := s.publisher.PublishDonation(ctx, event); err != nil {
		zap.L().Warn("failed to publish donation event", zap.String("donation_id", donation.ID.String()), zap.Error(err))
	}
}

func (s *donationService) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]dto.DonationResponse, error) {
	donations, err := s.repo.FindByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	return toDonationResponses(donations), nil
}

func (s *donationService) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]dto.DonationResponse, error) {
	exists, err := s.repo.CampaignExists(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("campaign not found")
	}

	donations, err := s.repo.FindByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return toDonationResponses(donations), nil
}

func (s *donationService) Recent(ctx context.Context) ([]dto.DonationResponse, error) {
	donations, err := s.repo.FindRecent(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}
	return toDonationResponses(donations), nil
}

func (s *donationService) Receipt(ctx context.Context, donorID, donationID uuid.UUID) ([]byte, error) {
	donation, err := s.repo.FindByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errDonationNotFound
		}
		return nil, err
	}

	// Someone else's receipt is reported exactly like a missing one.
	if donation.DonorID != donorID {
		return nil, errDonationNotFound
	}

	return renderReceipt(donation)
}

func toDonationResponse(d *entity.Donation) dto.DonationResponse {
	res := dto.DonationResponse{
		ID:         d.ID,
		DonorID:    d.DonorID,
		CampaignID: d.CampaignID,
		Amount:     d.Amount,
		ReceiptID:  d.ReceiptID,
		CreatedAt:  d.CreatedAt,
	}
	if d.Campaign != nil {
		res.Campaign = &entity.CampaignSummary{ID: d.Campaign.ID, Name: d.Campaign.Name}
	}
	if d.Donor != nil {
		res.Donor = &entity.UserSummary{ID: d.Donor.ID, Name: d.Donor.Name, Email: d.Donor.Email}
	}
	return res
}

func toDonationResponses(donations []*entity.Donation) []dto.DonationResponse {
	result := make([]dto.DonationResponse, 0, len(donations))
	for _, d := range donations {
		result = append(result, toDonationResponse(d))
	}
	return result
}
