package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"anoa.com/charityhub/internal/entity"
	"anoa.com/charityhub/internal/modules/event/dto"
	"anoa.com/charityhub/internal/modules/event/repository"
	userRepo "anoa.com/charityhub/internal/modules/user/repository"
	"anoa.com/charityhub/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errEventNotFound      = apperror.NotFound("event not found")
	errVolunteerNotFound  = apperror.NotFound("volunteer not found")
	errAssignmentNotFound = apperror.NotFound("assignment not found")
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", time.DateOnly}

type EventService interface {
	ListWithVolunteers(ctx context.Context) ([]dto.EventWithVolunteers, error)
	Create(ctx context.Context, req dto.CreateEventRequest) (*dto.EventWithVolunteers, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (*dto.EventWithVolunteers, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Assign(ctx context.Context, req dto.AssignVolunteerRequest) (*entity.VolunteerAssignment, error)
	Unassign(ctx context.Context, assignmentID uuid.UUID) error
	MyEvents(ctx context.Context, volunteerID uuid.UUID) ([]dto.EventWithVolunteers, error)
}

type eventService struct {
	repo     repository.EventRepository
	userRepo userRepo.UserRepository
}

func NewEventService(repo repository.EventRepository, userRepo userRepo.UserRepository) EventService {
	return &eventService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *eventService) ListWithVolunteers(ctx context.Context) ([]dto.EventWithVolunteers, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.withVolunteers(ctx, events)
}

func (s *eventService) MyEvents(ctx context.Context, volunteerID uuid.UUID) ([]dto.EventWithVolunteers, error) {
	events, err := s.repo.FindByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	return s.withVolunteers(ctx, events)
}

func (s *eventService) Create(ctx context.Context, req dto.CreateEventRequest) (*dto.EventWithVolunteers, error) {
	title, location := strings.TrimSpace(req.Title), strings.TrimSpace(req.Location)
	switch {
	case title == "":
		return nil, apperror.Invalid("Event title is required")
	case strings.TrimSpace(req.Description) == "":
		return nil, apperror.Invalid("Description is required")
	case location == "":
		return nil, apperror.Invalid("Location is required")
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	event := &entity.Event{
		Title:       title,
		Description: req.Description,
		Date:        date,
		Location:    location,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	zap.L().Info("event created", zap.String("event_id", event.ID.String()), zap.Time("date", event.Date))

	return &dto.EventWithVolunteers{Event: *event, Volunteers: []entity.UserSummary{}}, nil
}

func (s *eventService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (*dto.EventWithVolunteers, error) {
	event, err := s.findEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperror.Invalid("Event title is required")
		}
		event.Title = title
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, apperror.Invalid("Description is required")
		}
		event.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if req.Location != nil {
		location := strings.TrimSpace(*req.Location)
		if location == "" {
			return nil, apperror.Invalid("Location is required")
		}
		event.Location = location
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	result, err := s.withVolunteers(ctx, []entity.Event{*event})
	if err != nil {
		return nil, err
	}
	return &result[0], nil
}

func (s *eventService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errEventNotFound
		}
		return err
	}
	return nil
}

func (s *eventService) Assign(ctx context.Context, req dto.AssignVolunteerRequest) (*entity.VolunteerAssignment, error) {
	volunteerID, err := uuid.Parse(req.VolunteerID)
	if err != nil {
		return nil, apperror.Invalid("Volunteer must be a valid id")
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, apperror.Invalid("Event must be a valid id")
	}

	volunteer, err := s.userRepo.FindByID(ctx, volunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errVolunteerNotFound
		}
		return nil, err
	}
	if volunteer.Role != entity.RoleVolunteer {
		return nil, apperror.Invalid("user is not a volunteer")
	}

	if _, err := s.findEvent(ctx, eventID); err != nil {
		return nil, err
	}

	assignment := &entity.VolunteerAssignment{
		VolunteerID: volunteerID,
		EventID:     eventID,
	}
	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperror.Conflict("volunteer is already assigned to this event")
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, errEventNotFound
		}
		return nil, err
	}

	zap.L().Info("volunteer assigned",
		zap.String("volunteer_id", volunteerID.String()),
		zap.String("event_id", eventID.String()))

	return assignment, nil
}

func (s *eventService) Unassign(ctx context.Context, assignmentID uuid.UUID) error {
	if err := s.repo.DeleteAssignment(ctx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errAssignmentNotFound
		}
		return err
	}
	return nil
}

func (s *eventService) findEvent(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// withVolunteers attaches rosters with one query for the whole page of events.
func (s *eventService) withVolunteers(ctx context.Context, events []entity.Event) ([]dto.EventWithVolunteers, error) {
	ids := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	rosters, err := s.repo.FindRosters(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]dto.EventWithVolunteers, 0, len(events))
	for _, e := range events {
		volunteers := distinctVolunteers(rosters[e.ID])
		result = append(result, dto.EventWithVolunteers{
			Event:          e,
			VolunteerCount: len(volunteers),
			Volunteers:     volunteers,
		})
	}
	return result, nil
}

func distinctVolunteers(roster []entity.UserSummary) []entity.UserSummary {
	seen := make(map[uuid.UUID]struct{}, len(roster))
	out := make([]entity.UserSummary, 0, len(roster))
	for _, v := range roster {
		if _, ok := seen[v.ID]; ok {
			continue
		}
		seen[v.ID] = struct{}{}
		out = append(out, v)
	}
	return out
}

func parseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperror.Invalid("Event date must be a valid date")
}
