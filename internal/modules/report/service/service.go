package service

import (
	"context"
	"strconv"
	"time"

	campaignService "anoa.com/charityhub/internal/modules/campaign/service"
	fundUsageService "anoa.com/charityhub/internal/modules/fundusage/service"
)

const (
	CampaignsFileName = "campaigns-report.csv"
	FundUsageFileName = "fund-usage-report.csv"
)

var (
	campaignColumns  = []string{"Campaign Name", "Goal Amount", "Raised", "Progress %", "Donors"}
	fundUsageColumns = []string{"Campaign", "Description", "Amount Spent", "Date"}
)

type ReportService interface {
	CampaignsCSV(ctx context.Context) ([]byte, error)
	FundUsageCSV(ctx context.Context) ([]byte, error)
}

type reportService struct {
	campaigns campaignService.CampaignService
	fundUsage fundUsageService.FundUsageService
}

func NewReportService(campaigns campaignService.CampaignService, fundUsage fundUsageService.FundUsageService) ReportService {
	return &reportService{
		campaigns: campaigns,
		fundUsage: fundUsage,
	}
}

func (s *reportService) CampaignsCSV(ctx context.Context) ([]byte, error) {
	campaigns, err := s.campaigns.ListWithStats(ctx)
	if err != nil {
		return nil, err
	}

	var w csvWriter
	w.WriteHeader(campaignColumns...)
	for _, c := range campaigns {
		w.Write(
			c.Name,
			c.GoalAmount.String(),
			c.TotalDonations.String(),
			strconv.Itoa(c.ProgressPercentage),
			strconv.FormatInt(c.DonorCount, 10),
		)
	}
	return w.Bytes(), nil
}

func (s *reportService) FundUsageCSV(ctx context.Context) ([]byte, error) {
	usage, err := s.fundUsage.List(ctx)
	if err != nil {
		return nil, err
	}

	var w csvWriter
	w.WriteHeader(fundUsageColumns...)
	for _, u := range usage {
		w.Write(
			u.CampaignName,
			u.Description,
			u.AmountSpent.String(),
			u.SpentAt.UTC().Format(time.DateOnly),
		)
	}
	return w.Bytes(), nil
}
