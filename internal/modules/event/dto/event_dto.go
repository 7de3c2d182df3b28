package dto

import "anoa.com/charityhub/internal/entity"

// Dates accept RFC 3339, "2006-01-02T15:04" and "2006-01-02"; values without
// a zone are read as UTC.
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Location    string `json:"location" binding:"required,max=255"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	Date        *string `json:"date" binding:"omitempty,min=1"`
	Location    *string `json:"location" binding:"omitempty,min=1,max=255"`
}

type AssignVolunteerRequest struct {
	VolunteerID string `json:"volunteer_id" binding:"required,uuid"`
	EventID     string `json:"event_id" binding:"required,uuid"`
}

type EventWithVolunteers struct {
	entity.Event
	VolunteerCount int                  `json:"volunteer_count"`
	Volunteers     []entity.UserSummary `json:"volunteers"`
}
