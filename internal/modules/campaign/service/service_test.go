package service

import (
	"context"
	"errors"
	"testing"

	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/internal/modules/campaign/dto"
	"anoa.com/charityhub/internal/modules/campaign/repository"
	"anoa.com/charityhub/internal/testutil"
	"anoa.com/charityhub/pkg/apperror"
	commonDto "anoa.com/charityhub/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeIndex struct {
	indexed map[uuid.UUID]dto.CampaignWithStats
	deleted []uuid.UUID
	hits    []uuid.UUID
	err     error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: map[uuid.UUID]dto.CampaignWithStats{}}
}

func (f *fakeIndex) IndexCampaigns(ctx context.Context, campaigns []dto.CampaignWithStats) error {
	for _, c := range campaigns {
		f.indexed[c.ID] = c
	}
	return nil
}

func (f *fakeIndex) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) SearchCampaignIDs(ctx context.Context, query string) ([]uuid.UUID, error) {
	return f.hits, f.err
}

func setupCampaignService(t *testing.T, index SearchIndex) (CampaignService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewCampaignService(repository.NewCampaignRepository(db), nil, index), db
}

func findCampaign(t *testing.T, list []dto.CampaignWithStats, id uuid.UUID) dto.CampaignWithStats {
	t.Helper()
	for _, c := range list {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("campaign %s not in list", id)
	return dto.CampaignWithStats{}
}

func TestListWithStatsEmptyCampaign(t *testing.T) {
	svc, db := setupCampaignService(t, nil)
	campaign := testutil.CreateCampaign(t, db, "Clean Water", "1000")

	list, err := svc.ListWithStats(testutil.Ctx())
	if err != nil {
		t.Fatalf("ListWithStats failed: %v", err)
	}

	got := findCampaign(t, list, campaign.ID)
	if !got.TotalDonations.IsZero() || got.DonorCount != 0 || got.ProgressPercentage != 0 {
		t.Errorf("expected zero stats, got total=%s donors=%d progress=%d",
			got.TotalDonations, got.DonorCount, got.ProgressPercentage)
	}
	if got.Status != entity.CampaignActive {
		t.Errorf("expected default status active, got %q", got.Status)
	}
}

func TestListWithStatsCountsDistinctDonors(t *testing.T) {
	svc, db := setupCampaignService(t, nil)
	alice := testutil.CreateUser(t, db, "alice", entity.RoleDonor)
	bob := testutil.CreateUser(t, db, "bob", entity.RoleDonor)
	water := testutil.CreateCampaign(t, db, "Clean Water", "1000")
	school := testutil.CreateCampaign(t, db, "School Books", "200")

	testutil.CreateDonation(t, db, alice, water, "250")
	testutil.CreateDonation(t, db, alice, water, "250")
	testutil.CreateDonation(t, db, bob, water, "100")
	testutil.CreateDonation(t, db, bob, school, "500")

	list, err := svc.ListWithStats(testutil.Ctx())
	if err != nil {
		t.Fatalf("ListWithStats failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 campaigns, got %d", len(list))
	}

	gotWater := findCampaign(t, list, water.ID)
	if !gotWater.TotalDonations.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected total 600, got %s", gotWater.TotalDonations)
	}
	if gotWater.DonorCount != 2 {
		t.Errorf("expected 2 donors, got %d", gotWater.DonorCount)
	}
	if gotWater.ProgressPercentage != 60 {
		t.Errorf("expected 60%%, got %d", gotWater.ProgressPercentage)
	}

	gotSchool := findCampaign(t, list, school.ID)
	if gotSchool.ProgressPercentage != 100 {
		t.Errorf("expected overfunded campaign capped at 100, got %d", gotSchool.ProgressPercentage)
	}
}

func TestCreateAndUpdateCampaign(t *testing.T) {
	index := newFakeIndex()
	svc, _ := setupCampaignService(t, index)

	created, err := svc.Create(testutil.Ctx(), dto.CreateCampaignRequest{
		Name:        "  Food Bank ",
		Description: "Weekly groceries",
		GoalAmount:  "5000.50",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Name != "Food Bank" || created.Status != entity.CampaignActive {
		t.Errorf("unexpected campaign: %+v", created.Campaign)
	}
	if _, ok := index.indexed[created.ID]; !ok {
		t.Error("created campaign was not indexed")
	}

	status := entity.CampaignCompleted
	goal := "6000"
	updated, err := svc.Update(testutil.Ctx(), created.ID, dto.UpdateCampaignRequest{Status: &status, GoalAmount: &goal})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != entity.CampaignCompleted || !updated.GoalAmount.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("update not applied: %+v", updated.Campaign)
	}
	if updated.Description != "Weekly groceries" {
		t.Errorf("untouched field changed: %q", updated.Description)
	}
}

func TestCreateRejectsInvalidGoal(t *testing.T) {
	svc, _ := setupCampaignService(t, nil)

	for _, goal := range []string{"0", "-5", "abc", "0.004", "10.001", "10000000000", "123456789012.50"} {
		_, err := svc.Create(testutil.Ctx(), dto.CreateCampaignRequest{Name: "x", Description: "y", GoalAmount: goal})
		if !errors.Is(err, apperror.ErrInvalidInput) {
			t.Errorf("goal %q: expected invalid input, got %v", goal, err)
		}
	}
}

func TestRejectsBlankText(t *testing.T) {
	svc, db := setupCampaignService(t, nil)

	tests := []dto.CreateCampaignRequest{
		{Name: "   ", Description: "Wells", GoalAmount: "100"},
		{Name: "Water", Description: " \t ", GoalAmount: "100"},
	}
	for _, req := range tests {
		if _, err := svc.Create(testutil.Ctx(), req); !errors.Is(err, apperror.ErrInvalidInput) {
			t.Errorf("create %+v: expected invalid input, got %v", req, err)
		}
	}

	existing := testutil.CreateCampaign(t, db, "Clean Water", "1000")
	blank := "  "
	if _, err := svc.Update(testutil.Ctx(), existing.ID, dto.UpdateCampaignRequest{Name: &blank}); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("update blank name: expected invalid input, got %v", err)
	}

	var stored entity.Campaign
	db.First(&stored, "id = ?", existing.ID)
	if stored.Name != "Clean Water" {
		t.Errorf("expected name unchanged, got %q", stored.Name)
	}
}

func TestUpdateUnknownCampaign(t *testing.T) {
	svc, _ := setupCampaignService(t, nil)

	name := "nope"
	_, err := svc.Update(testutil.Ctx(), uuid.New(), dto.UpdateCampaignRequest{Name: &name})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteCampaign(t *testing.T) {
	index := newFakeIndex()
	svc, db := setupCampaignService(t, index)
	campaign := testutil.CreateCampaign(t, db, "Temporary", "100")

	if err := svc.Delete(testutil.Ctx(), campaign.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(index.deleted) != 1 || index.deleted[0] != campaign.ID {
		t.Errorf("expected campaign removed from index, got %v", index.deleted)
	}

	if err := svc.Delete(testutil.Ctx(), campaign.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

func TestDeleteCampaignWithDonationsIsRestricted(t *testing.T) {
	svc, db := setupCampaignService(t, nil)
	donor := testutil.CreateUser(t, db, "alice", entity.RoleDonor)
	campaign := testutil.CreateCampaign(t, db, "Clean Water", "1000")
	testutil.CreateDonation(t, db, donor, campaign, "10")

	err := svc.Delete(testutil.Ctx(), campaign.ID)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	var count int64
	db.Model(&entity.Campaign{}).Where("id = ?", campaign.ID).Count(&count)
	if count != 1 {
		t.Error("campaign was deleted despite donations")
	}
}

func TestSearchFallsBackToStore(t *testing.T) {
	index := newFakeIndex()
	index.err = errors.New("meilisearch down")
	svc, db := setupCampaignService(t, index)
	water := testutil.CreateCampaign(t, db, "Clean Water", "1000")
	testutil.CreateCampaign(t, db, "School Books", "200")

	got, err := svc.Search(testutil.Ctx(), "WATER")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != water.ID {
		t.Errorf("expected only Clean Water, got %+v", got)
	}
}

func TestSearchUsesIndexOrder(t *testing.T) {
	index := newFakeIndex()
	svc, db := setupCampaignService(t, index)
	first := testutil.CreateCampaign(t, db, "Alpha", "100")
	second := testutil.CreateCampaign(t, db, "Beta", "100")
	index.hits = []uuid.UUID{second.ID, uuid.New(), first.ID}

	got, err := svc.Search(testutil.Ctx(), "anything")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("expected index order [Beta Alpha], got %+v", got)
	}
}

func TestUploadCoverWithoutStorage(t *testing.T) {
	svc, db := setupCampaignService(t, nil)
	campaign := testutil.CreateCampaign(t, db, "Clean Water", "1000")

	_, err := svc.UploadCover(testutil.Ctx(), campaign.ID, commonDto.UploadFile{FileName: "cover.png"})
	if !errors.Is(err, apperror.ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestReindex(t *testing.T) {
	index := newFakeIndex()
	svc, db := setupCampaignService(t, index)
	testutil.CreateCampaign(t, db, "Alpha", "100")
	testutil.CreateCampaign(t, db, "Beta", "100")
	index.indexed = map[uuid.UUID]dto.CampaignWithStats{}

	n, err := svc.Reindex(testutil.Ctx())
	if err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}
	if n != 2 || len(index.indexed) != 2 {
		t.Errorf("expected 2 campaigns indexed, got n=%d indexed=%d", n, len(index.indexed))
	}
}
