package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/internal/modules/donation/dto"
	"anoa.com/charityhub/internal/modules/donation/repository"
	"anoa.com/charityhub/internal/testutil"
	"anoa.com/charityhub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	events []dto.DonationEvent
}

func (p *recordingPublisher) PublishDonation(ctx context.Context, event dto.DonationEvent) error {
	p.events = append(p.events, event)
	return nil
}

func setupDonationService(t *testing.T) (DonationService, *gorm.DB, *recordingPublisher) {
	t.Helper()
	db := testutil.NewDB(t)
	publisher := &recordingPublisher{}
	return NewDonationService(repository.NewDonationRepository(db), publisher), db, publisher
}

func TestCreateDonation(t *testing.T) {
	svc, db, publisher := setupDonationService(t)
	donor := testutil.CreateUser(t, db, "alice", entity.RoleDonor)
	campaign := testutil.CreateCampaign(t, db, "Clean Water", "1000")

	res, err := svc.Create(testutil.Ctx(), donor.ID, dto.CreateDonationRequest{
		CampaignID: campaign.ID.String(),
		Amount:     "250.50",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if res.ReceiptID == uuid.Nil || res.ReceiptID == res.ID {
		t.Errorf("expected a distinct receipt id, got %s", res.ReceiptID)
	}
	if !res.Amount.Equal(decimal.RequireFromString("250.50")) {
		t.Errorf("expected amount 250.50, got %s", res.Amount)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.Type != dto.EventDonationCreated || event.CampaignName != "Clean Water" || event.DonorName != "alice" {
		t.Errorf("unexpected event %+v", event)
	}
}

func TestCreateDonationUnknownCampaign(t *testing.T) {
	svc, db, publisher := setupDonationService(t)
	donor := testutil.CreateUser(t, db, "alice", entity.RoleDonor)

	_, err := svc.Create(testutil.Ctx(), donor.ID, dto.CreateDonationRequest{
		CampaignID: uuid.NewString(),
		Amount:     "10",
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	var count int64
	db.Model(&entity.Donation{}).Count(&count)
	if count != 0 {
		t.Errorf("expected nothing recorded, got %d donations", count)
	}
	if len(publisher.events) != 0 {
		t.Error("failed donation was published")
	}
}

func TestCreateDonationRejectsBadAmount(t *testing.T) {
	svc, db, _ := setupDonationService(t)
	donor := testutil.CreateUser(t, db, "alice", entity.RoleDonor)
	campaign := testutil.CreateCampaign(t, db, "Clean Water", "1000")

	for _, amount := range []string{"0", "-1", "ten", "0.001", "0.004", "123456789012.50"} {
		_, err := svc.Create(testutil.Ctx(), donor.ID, dto.CreateDonationRequest{CampaignID: campaign.ID.String(), Amount: amount})
		if !errors.Is(err, apperror.ErrInvalidInput) {
			t.Errorf("amount %q: expected invalid input, got %v", amount, err)
		}
	}
}

func TestListByDonorNewestFirst(t *testing.T) {
	svc, db, _ := setupDonationService(t)
	alice := testutil.CreateUser(t, db, "alice", entity.RoleDonor)
	bob := testutil.CreateUser(t, db, "bob", entity.RoleDonor)
	campaign := testutil.CreateCampaign(t, db, "Clean Water", "1000")

	first := testutil.CreateDonation(t, db, alice, campaign, "10")
	second := testutil.CreateDonation(t, db, alice, campaign, "20")
	testutil.CreateDonation(t, db, bob, campaign, "30")

	list, err := svc.ListByDonor(testutil.Ctx(), alice.ID)
	if err != nil {
		t.Fatalf("ListByDonor failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 donations, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Errorf("expected newest first")
	}
	if list[0].Campaign == nil || list[0].Campaign.Name != "Clean Water" {
		t.Errorf("expected campaign summary, got %+v", list[0].Campaign)
	}
}

func TestRecentIsCappedAtTen(t *testing.T) {
	svc, db, _ := setupDonationService(t)
	donor := testutil.CreateUser(t, db, "alice", entity.RoleDonor)
	campaign := testutil.CreateCampaign(t, db, "Clean Water", "1000")
	for i := 0; i < 12; i++ {
		testutil.CreateDonation(t, db, donor, campaign, "5")
	}

	list, err := svc.Recent(testutil.Ctx())
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(list) != RecentLimit {
		t.Fatalf("expected %d donations, got %d", RecentLimit, len(list))
	}
	if list[0].Donor == nil || list[0].Donor.Email != "alice@example.com" || list[0].Campaign == nil {
		t.Errorf("expected donor and campaign summaries, got %+v", list[0])
	}
}

func TestListByCampaignUnknown(t *testing.T) {
	svc, _, _ := setupDonationService(t)

	if _, err := svc.ListByCampaign(testutil.Ctx(), uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReceipt(t *testing.T) {
	svc, db, _ := setupDonationService(t)
	alice := testutil.CreateUser(t, db, "alice", entity.RoleDonor)
	bob := testutil.CreateUser(t, db, "bob", entity.RoleDonor)
	campaign := testutil.CreateCampaign(t, db, `Books & "Pens" <for kids>`, "1000")
	donation := testutil.CreateDonation(t, db, alice, campaign, "42")

	body, err := svc.Receipt(testutil.Ctx(), alice.ID, donation.ID)
	if err != nil {
		t.Fatalf("Receipt failed: %v", err)
	}

	html := string(body)
	if !strings.Contains(html, donation.ReceiptID.String()) {
		t.Error("receipt is missing the receipt id")
	}
	if !strings.Contains(html, "$42.00") {
		t.Error("receipt is missing the amount")
	}
	if strings.Contains(html, "<for kids>") {
		t.Error("campaign name was not escaped")
	}

	if _, err := svc.Receipt(testutil.Ctx(), bob.ID, donation.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected not found for another donor, got %v", err)
	}
	if _, err := svc.Receipt(testutil.Ctx(), alice.ID, uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected not found for unknown donation, got %v", err)
	}
}
