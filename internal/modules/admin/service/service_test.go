package service

import (
	"errors"
	"testing"
	"time"

	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/internal/modules/admin/dto"
	"anoa.com/charityhub/internal/modules/user/repository"
	"anoa.com/charityhub/internal/testutil"
	"anoa.com/charityhub/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func setupAdminService(t *testing.T) (AdminService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewAdminService(repository.NewUserRepository(db)), db
}

func TestListUsers(t *testing.T) {
	svc, db := setupAdminService(t)
	testutil.CreateUser(t, db, "root", entity.RoleAdmin)
	testutil.CreateUser(t, db, "alice", entity.RoleDonor)
	testutil.CreateUser(t, db, "ann", entity.RoleVolunteer)

	all, err := svc.ListUsers(testutil.Ctx(), dto.UserFilter{})
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 users, got %d", len(all))
	}

	donors, err := svc.ListUsers(testutil.Ctx(), dto.UserFilter{Role: entity.RoleDonor})
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(donors) != 1 || donors[0].Username != "alice" {
		t.Errorf("expected only alice, got %+v", donors)
	}

	volunteers, err := svc.ListVolunteers(testutil.Ctx())
	if err != nil {
		t.Fatalf("ListVolunteers failed: %v", err)
	}
	if len(volunteers) != 1 || volunteers[0].Role != entity.RoleVolunteer {
		t.Errorf("expected only ann, got %+v", volunteers)
	}
}

func TestDeleteUser(t *testing.T) {
	svc, db := setupAdminService(t)
	admin := testutil.CreateUser(t, db, "root", entity.RoleAdmin)
	volunteer := testutil.CreateUser(t, db, "ann", entity.RoleVolunteer)
	event := testutil.CreateEvent(t, db, "Food Drive", time.Now())
	testutil.Assign(t, db, volunteer, event)

	if err := svc.DeleteUser(testutil.Ctx(), admin.ID, volunteer.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	var assignments int64
	db.Model(&entity.VolunteerAssignment{}).Count(&assignments)
	if assignments != 0 {
		t.Errorf("expected assignments to cascade, got %d", assignments)
	}

	if err := svc.DeleteUser(testutil.Ctx(), admin.ID, volunteer.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := svc.DeleteUser(testutil.Ctx(), admin.ID, uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected not found for unknown id, got %v", err)
	}
}

func TestDeleteUserGuards(t *testing.T) {
	svc, db := setupAdminService(t)
	admin := testutil.CreateUser(t, db, "root", entity.RoleAdmin)
	donor := testutil.CreateUser(t, db, "alice", entity.RoleDonor)
	campaign := testutil.CreateCampaign(t, db, "Clean Water", "1000")
	testutil.CreateDonation(t, db, donor, campaign, "10")

	if err := svc.DeleteUser(testutil.Ctx(), admin.ID, admin.ID); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("expected invalid input for self delete, got %v", err)
	}
	if err := svc.DeleteUser(testutil.Ctx(), admin.ID, donor.ID); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("expected conflict for donor with donations, got %v", err)
	}
}
