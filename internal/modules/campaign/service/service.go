package service

import (
	"context"
	"errors"
	"strings"

	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/internal/modules/campaign/dto"
	"anoa.com/charityhub/internal/modules/campaign/repository"
	"anoa.com/charityhub/pkg/apperror"
	commonDto "anoa.com/charityhub/pkg/dto"
	"anoa.com/charityhub/pkg/storage"
	"anoa.com/charityhub/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const coverFolder = "campaigns"

var errCampaignNotFound = apperror.NotFound("campaign not found")

// SearchIndex is the full-text index campaigns are mirrored into.
type SearchIndex interface {
	IndexCampaigns(ctx context.Context, campaigns []dto.CampaignWithStats) error
	DeleteCampaign(ctx context.Context, id uuid.UUID) error
	SearchCampaignIDs(ctx context.Context, query string) ([]uuid.UUID, error)
}

type CampaignService interface {
	ListWithStats(ctx context.Context) ([]dto.CampaignWithStats, error)
	Search(ctx context.Context, query string) ([]dto.CampaignWithStats, error)
	Create(ctx context.Context, req dto.CreateCampaignRequest) (*dto.CampaignWithStats, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCampaignRequest) (*dto.CampaignWithStats, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadCover(ctx context.Context, id uuid.UUID, file commonDto.UploadFile) (*dto.CampaignWithStats, error)
	// Reindex pushes every campaign with fresh totals into the search index.
	Reindex(ctx context.Context) (int, error)
}

type campaignService struct {
	repo         repository.CampaignRepository
	imageStorage storage.ImageStorage
	search       SearchIndex
}

// NewCampaignService accepts nil imageStorage and nil search; the features
// backed by them are then unavailable.
func NewCampaignService(repo repository.CampaignRepository, imageStorage storage.ImageStorage, search SearchIndex) CampaignService {
	return &campaignService{
		repo:         repo,
		imageStorage: imageStorage,
		search:       search,
	}
}

func (s *campaignService) ListWithStats(ctx context.Context) ([]dto.CampaignWithStats, error) {
	rows, err := s.repo.FindAllWithStats(ctx)
	if err != nil {
		return nil, err
	}
	return toCampaignsWithStats(rows), nil
}

func (s *campaignService) Search(ctx context.Context, query string) ([]dto.CampaignWithStats, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListWithStats(ctx)
	}

	if s.search != nil {
		ids, err := s.search.SearchCampaignIDs(ctx, query)
		if err == nil {
			rows, err := s.repo.FindWithStatsByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			return toCampaignsWithStats(rows), nil
		}
		zap.L().Warn("search index unavailable, falling back to store", zap.Error(err))
	}

	rows, err := s.repo.SearchWithStats(ctx, query)
	if err != nil {
		return nil, err
	}
	return toCampaignsWithStats(rows), nil
}

func (s *campaignService) Create(ctx context.Context, req dto.CreateCampaignRequest) (*dto.CampaignWithStats, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Invalid("Name is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperror.Invalid("Description is required")
	}

	goal, err := parseGoal(req.GoalAmount)
	if err != nil {
		return nil, err
	}

	campaign := &entity.Campaign{
		Name:        name,
		Description: req.Description,
		GoalAmount:  goal,
		Status:      entity.CampaignActive,
	}
	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	zap.L().Info("campaign created", zap.String("campaign_id", campaign.ID.String()), zap.String("name", campaign.Name))

	return s.refresh(ctx, campaign.ID)
}

func (s *campaignService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCampaignRequest) (*dto.CampaignWithStats, error) {
	campaign, err := s.findCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.Invalid("Name is required")
		}
		campaign.Name = name
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, apperror.Invalid("Description is required")
		}
		campaign.Description = *req.Description
	}
	if req.GoalAmount != nil {
		goal, err := parseGoal(*req.GoalAmount)
		if err != nil {
			return nil, err
		}
		campaign.GoalAmount = goal
	}
	if req.Status != nil {
		campaign.Status = *req.Status
	}

	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	return s.refresh(ctx, campaign.ID)
}

func (s *campaignService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findCampaign(ctx, id); err != nil {
		return err
	}

	dependents, err := s.repo.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return apperror.Conflict("campaign has donations or fund usage records; archive it instead")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return errCampaignNotFound
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return apperror.Conflict("campaign has donations or fund usage records; archive it instead")
		}
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteCampaign(ctx, id); err != nil {
			zap.L().Warn("failed to remove campaign from search index", zap.String("campaign_id", id.String()), zap.Error(err))
		}
	}

	return nil
}

func (s *campaignService) UploadCover(ctx context.Context, id uuid.UUID, file commonDto.UploadFile) (*dto.CampaignWithStats, error) {
	if s.imageStorage == nil {
		return nil, apperror.Unavailable("image storage is not configured")
	}

	campaign, err := s.findCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.imageStorage.UploadImage(ctx, file.Reader, coverFolder, file.FileName)
	if err != nil {
		return nil, apperror.Invalid(err.Error())
	}

	previous := campaign.CoverURL
	campaign.CoverURL = &url
	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	if previous != nil && *previous != "" {
		if err := s.imageStorage.DeleteImage(ctx, *previous); err != nil {
			zap.L().Warn("failed to delete previous campaign cover", zap.String("url", *previous), zap.Error(err))
		}
	}

	return s.refresh(ctx, campaign.ID)
}

func (s *campaignService) Reindex(ctx context.Context) (int, error) {
	if s.search == nil {
		return 0, apperror.Unavailable("search is not configured")
	}

	campaigns, err := s.ListWithStats(ctx)
	if err != nil {
		return 0, err
	}
	if len(campaigns) == 0 {
		return 0, nil
	}

	if err := s.search.IndexCampaigns(ctx, campaigns); err != nil {
		return 0, err
	}
	return len(campaigns), nil
}

func (s *campaignService) findCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCampaignNotFound
		}
		return nil, err
	}
	return campaign, nil
}

// refresh reloads the campaign with its totals and mirrors it into search.
func (s *campaignService) refresh(ctx context.Context, id uuid.UUID) (*dto.CampaignWithStats, error) {
	row, err := s.repo.FindWithStatsByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := toCampaignWithStats(*row)

	if s.search != nil {
		if err := s.search.IndexCampaigns(ctx, []dto.CampaignWithStats{result}); err != nil {
			zap.L().Warn("failed to index campaign", zap.String("campaign_id", id.String()), zap.Error(err))
		}
	}

	return &result, nil
}

func parseGoal(raw string) (decimal.Decimal, error) {
	goal, ok := validator.ParseAmount(raw)
	if !ok {
		return decimal.Zero, apperror.Invalid(validator.AmountMessage("Goal amount"))
	}
	return goal, nil
}

func toCampaignWithStats(row repository.CampaignStats) dto.CampaignWithStats {
	return dto.CampaignWithStats{
		Campaign:           row.Campaign,
		TotalDonations:     row.TotalDonations,
		DonorCount:         row.DonorCount,
		ProgressPercentage: ProgressPercentage(row.TotalDonations, row.GoalAmount),
	}
}

func toCampaignsWithStats(rows []repository.CampaignStats) []dto.CampaignWithStats {
	result := make([]dto.CampaignWithStats, 0, len(rows))
	for _, row := range rows {
		result = append(result, toCampaignWithStats(row))
	}
	return result
}
