package service

import (
	"context"
	"errors"

	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/internal/modules/admin/dto"
	"anoa.com/charityhub/internal/modules/user/repository"
	"anoa.com/charityhub/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errUserHasDonations = apperror.Conflict("user has donations and cannot be deleted")

type AdminService interface {
	ListUsers(ctx context.Context, filter dto.UserFilter) ([]*entity.User, error)
	ListVolunteers(ctx context.Context) ([]*entity.User, error)
	// DeleteUser removes a user; actorID is the administrator performing it.
	DeleteUser(ctx context.Context, actorID, id uuid.UUID) error
}

type adminService struct {
	userRepo repository.UserRepository
}

func NewAdminService(userRepo repository.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

func (s *adminService) ListUsers(ctx context.Context, filter dto.UserFilter) ([]*entity.User, error) {
	return s.userRepo.FindAll(ctx, filter.Role)
}

func (s *adminService) ListVolunteers(ctx context.Context) ([]*entity.User, error) {
	return s.userRepo.FindAll(ctx, entity.RoleVolunteer)
}

func (s *adminService) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return apperror.Invalid("you cannot delete your own account")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}

	donations, err := s.userRepo.CountDonations(ctx, id)
	if err != nil {
		return err
	}
	if donations > 0 {
		return errUserHasDonations
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return apperror.NotFound("user not found")
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return errUserHasDonations
		}
		return err
	}

	zap.L().Info("user deleted", zap.String("user_id", id.String()), zap.String("by", actorID.String()))
	return nil
}
