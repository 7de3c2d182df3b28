package service

import (
	"errors"
	"testing"
	"time"

	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/internal/modules/fundusage/dto"
	"anoa.com/charityhub/internal/modules/fundusage/repository"
	"anoa.com/charityhub/internal/testutil"
	"anoa.com/charityhub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupFundUsageService(t *testing.T) (FundUsageService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewFundUsageService(repository.NewFundUsageRepository(db)), db
}

func TestCreateAndListFundUsage(t *testing.T) {
	svc, db := setupFundUsageService(t)
	campaign := testutil.CreateCampaign(t, db, "Clean Water", "1000")

	older, err := svc.Create(testutil.Ctx(), dto.CreateFundUsageRequest{
		CampaignID:  campaign.ID.String(),
		Description: "Water filters",
		AmountSpent: "120.25",
		SpentAt:     "2020-01-10",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if older.CampaignName != "Clean Water" {
		t.Errorf("expected campaign name, got %q", older.CampaignName)
	}
	if !older.SpentAt.Equal(time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected spent_at %s", older.SpentAt)
	}

	newer, err := svc.Create(testutil.Ctx(), dto.CreateFundUsageRequest{
		CampaignID:  campaign.ID.String(),
		Description: "Pipes",
		AmountSpent: "80",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if newer.SpentAt.IsZero() {
		t.Error("expected spent_at to default to now")
	}

	list, err := svc.List(testutil.Ctx())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Errorf("expected newest spend first, got %+v", list)
	}
}

func TestCreateFundUsageUnknownCampaign(t *testing.T) {
	svc, _ := setupFundUsageService(t)

	_, err := svc.Create(testutil.Ctx(), dto.CreateFundUsageRequest{
		CampaignID:  uuid.NewString(),
		Description: "Nothing",
		AmountSpent: "1",
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateFundUsageRejectsInvalidAmount(t *testing.T) {
	svc, db := setupFundUsageService(t)
	campaign := testutil.CreateCampaign(t, db, "Clean Water", "1000")

	for _, amount := range []string{"0", "-3", "12.345", "10000000000.00"} {
		_, err := svc.Create(testutil.Ctx(), dto.CreateFundUsageRequest{
			CampaignID:  campaign.ID.String(),
			Description: "Pipes",
			AmountSpent: amount,
		})
		if !errors.Is(err, apperror.ErrInvalidInput) {
			t.Errorf("amount %q: expected invalid input, got %v", amount, err)
		}
	}

	_, err := svc.Create(testutil.Ctx(), dto.CreateFundUsageRequest{
		CampaignID:  campaign.ID.String(),
		Description: "   ",
		AmountSpent: "5",
	})
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("blank description: expected invalid input, got %v", err)
	}

	var count int64
	db.Model(&entity.FundUsage{}).Count(&count)
	if count != 0 {
		t.Errorf("expected nothing recorded, got %d rows", count)
	}
}

func TestSummary(t *testing.T) {
	svc, db := setupFundUsageService(t)
	donor := testutil.CreateUser(t, db, "alice", entity.RoleDonor)
	water := testutil.CreateCampaign(t, db, "Clean Water", "1000")
	testutil.CreateCampaign(t, db, "School Books", "200")

	testutil.CreateDonation(t, db, donor, water, "300")
	testutil.CreateDonation(t, db, donor, water, "200")
	for _, amount := range []string{"100", "50"} {
		if _, err := svc.Create(testutil.Ctx(), dto.CreateFundUsageRequest{
			CampaignID: water.ID.String(), Description: "spend", AmountSpent: amount,
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	summary, err := svc.Summary(testutil.Ctx())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("expected 2 campaigns, got %d", len(summary))
	}

	for _, s := range summary {
		switch s.CampaignID {
		case water.ID:
			if !s.TotalRaised.Equal(decimal.NewFromInt(500)) || !s.TotalSpent.Equal(decimal.NewFromInt(150)) {
				t.Errorf("unexpected totals raised=%s spent=%s", s.TotalRaised, s.TotalSpent)
			}
			if !s.Remaining.Equal(decimal.NewFromInt(350)) || s.UsageCount != 2 {
				t.Errorf("unexpected remaining=%s count=%d", s.Remaining, s.UsageCount)
			}
		default:
			if !s.TotalRaised.IsZero() || !s.TotalSpent.IsZero() || s.UsageCount != 0 {
				t.Errorf("expected empty campaign to report zeros, got %+v", s)
			}
		}
	}
}
