package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/internal/modules/fundusage/dto"
	"anoa.com/charityhub/internal/modules/fundusage/repository"
	"anoa.com/charityhub/pkg/apperror"
	"anoa.com/charityhub/pkg/validator"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FundUsageService interface {
	List(ctx context.Context) ([]dto.FundUsageResponse, error)
	Create(ctx context.Context, req dto.CreateFundUsageRequest) (*dto.FundUsageResponse, error)
	Summary(ctx context.Context) ([]dto.CampaignFundSummary, error)
}

type fundUsageService struct {
	repo repository.FundUsageRepository
}

func NewFundUsageService(repo repository.FundUsageRepository) FundUsageService {
	return &fundUsageService{repo: repo}
}

func (s *fundUsageService) List(ctx context.Context) ([]dto.FundUsageResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.FundUsageResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, toFundUsageResponse(row))
	}
	return result, nil
}

func (s *fundUsageService) Create(ctx context.Context, req dto.CreateFundUsageRequest) (*dto.FundUsageResponse, error) {
	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		return nil, apperror.Invalid("Campaign must be a valid id")
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperror.Invalid("Description is required")
	}

	amount, ok := validator.ParseAmount(req.AmountSpent)
	if !ok {
		return nil, apperror.Invalid(validator.AmountMessage("Amount spent"))
	}

	usage := &entity.FundUsage{
		CampaignID:  campaignID,
		Description: description,
		AmountSpent: amount,
	}

	if raw := strings.TrimSpace(req.SpentAt); raw != "" {
		spentAt, err := parseSpentAt(raw)
		if err != nil {
			return nil, err
		}
		usage.SpentAt = spentAt
	}

	if err := s.repo.Create(ctx, usage); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperror.NotFound("campaign not found")
		}
		return nil, err
	}

	zap.L().Info("fund usage recorded",
		zap.String("campaign_id", campaignID.String()),
		zap.String("amount_spent", amount.String()))

	row, err := s.repo.FindByID(ctx, usage.ID)
	if err != nil {
		return nil, err
	}

	res := toFundUsageResponse(*row)
	return &res, nil
}

func (s *fundUsageService) Summary(ctx context.Context) ([]dto.CampaignFundSummary, error) {
	rows, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CampaignFundSummary, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.CampaignFundSummary{
			CampaignID:   row.CampaignID,
			CampaignName: row.CampaignName,
			TotalRaised:  row.TotalRaised,
			TotalSpent:   row.TotalSpent,
			Remaining:    row.TotalRaised.Sub(row.TotalSpent),
			UsageCount:   row.UsageCount,
		})
	}
	return result, nil
}

func parseSpentAt(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperror.Invalid("spent_at must be a valid date")
}

func toFundUsageResponse(row repository.FundUsageRow) dto.FundUsageResponse {
	return dto.FundUsageResponse{
		ID:           row.ID,
		CampaignID:   row.CampaignID,
		CampaignName: row.CampaignName,
		Description:  row.Description,
		AmountSpent:  row.AmountSpent,
		SpentAt:      row.SpentAt,
	}
}
