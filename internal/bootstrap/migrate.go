package bootstrap

import (
	"anoa.com/charityhub/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Campaign{},
		&entity.Donation{},
		&entity.Event{},
		&entity.VolunteerAssignment{},
		&entity.FundUsage{},
	)
}
