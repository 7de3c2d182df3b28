// Package testutil provides store fixtures for package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"anoa.com/charityhub/internal/bootstrap"
	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/pkg/database"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory SQLite store with foreign keys enforced and
// the full schema migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), database.GormConfig())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username, role string) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		Name:         username,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

func CreateCampaign(t *testing.T, db *gorm.DB, name, goal string) *entity.Campaign {
	t.Helper()

	campaign := &entity.Campaign{
		Name:        name,
		Description: "Campaign " + name + " description",
		GoalAmount:  decimal.RequireFromString(goal),
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("Failed to create campaign %s: %v", name, err)
	}
	return campaign
}

func CreateDonation(t *testing.T, db *gorm.DB, donor *entity.User, campaign *entity.Campaign, amount string) *entity.Donation {
	t.Helper()

	donation := &entity.Donation{
		DonorID:    donor.ID,
		CampaignID: campaign.ID,
		Amount:     decimal.RequireFromString(amount),
	}
	if err := db.Create(donation).Error; err != nil {
		t.Fatalf("Failed to create donation: %v", err)
	}
	return donation
}

func CreateEvent(t *testing.T, db *gorm.DB, title string, date time.Time) *entity.Event {
	t.Helper()

	event := &entity.Event{
		Title:       title,
		Description: "Event " + title + " description",
		Date:        date.UTC(),
		Location:    "Community Hall",
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("Failed to create event %s: %v", title, err)
	}
	return event
}

func Assign(t *testing.T, db *gorm.DB, volunteer *entity.User, event *entity.Event) *entity.VolunteerAssignment {
	t.Helper()

	assignment := &entity.VolunteerAssignment{VolunteerID: volunteer.ID, EventID: event.ID}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("Failed to assign volunteer: %v", err)
	}
	return assignment
}

func Ctx() context.Context {
	return context.Background()
}
