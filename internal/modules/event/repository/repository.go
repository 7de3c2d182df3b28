package repository

import (
	"context"

	"anoa.com/charityhub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	Update(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	// Delete removes the event; its assignments go with it through the cascade.
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context) ([]entity.Event, error)
	FindByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]entity.Event, error)
	// FindRosters returns the assigned volunteers of each event, oldest assignment first.
	FindRosters(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]entity.UserSummary, error)

	CreateAssignment(ctx context.Context, assignment *entity.VolunteerAssignment) error
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *eventRepository) FindAll(ctx context.Context) ([]entity.Event, error) {
	events := []entity.Event{}
	err := r.db.WithContext(ctx).Order("events.date DESC").Find(&events).Error
	return events, err
}

func (r *eventRepository) FindByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]entity.Event, error) {
	events := []entity.Event{}
	err := r.db.WithContext(ctx).
		Joins("JOIN volunteer_assignments ON volunteer_assignments.event_id = events.id").
		Where("volunteer_assignments.volunteer_id = ?", volunteerID).
		Order("events.date DESC").
		Find(&events).Error
	return events, err
}

type rosterRow struct {
	EventID uuid.UUID
	ID      uuid.UUID
	Name    string
	Email   string
}

func (r *eventRepository) FindRosters(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]entity.UserSummary, error) {
	rosters := make(map[uuid.UUID][]entity.UserSummary, len(eventIDs))
	if len(eventIDs) == 0 {
		return rosters, nil
	}

	var rows []rosterRow
	err := r.db.WithContext(ctx).
		Table("volunteer_assignments").
		Select("volunteer_assignments.event_id AS event_id, users.id AS id, users.name AS name, users.email AS email").
		Joins("JOIN users ON users.id = volunteer_assignments.volunteer_id").
		Where("volunteer_assignments.event_id IN ?", eventIDs).
		Order("volunteer_assignments.assigned_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		rosters[row.EventID] = append(rosters[row.EventID], entity.UserSummary{
			ID:    row.ID,
			Name:  row.Name,
			Email: row.Email,
		})
	}
	return rosters, nil
}

func (r *eventRepository) CreateAssignment(ctx context.Context, assignment *entity.VolunteerAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *eventRepository) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.VolunteerAssignment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
