package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Location    string    `gorm:"size:255;not null" json:"location"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// VolunteerAssignment links a volunteer to an event; the pair is unique.
type VolunteerAssignment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VolunteerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_volunteer_event,priority:1" json:"volunteer_id"`
	Volunteer   *User     `gorm:"foreignKey:VolunteerID;constraint:OnDelete:CASCADE" json:"-"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_volunteer_event,priority:2;index" json:"event_id"`
	Event       *Event    `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	AssignedAt  time.Time `gorm:"autoCreateTime" json:"assigned_at"`
}

func (a *VolunteerAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
