package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminStats: TotalDonations counts records, TotalRaised sums amounts.
type AdminStats struct {
	TotalCampaigns   int64           `json:"total_campaigns"`
	TotalDonations   int64           `json:"total_donations"`
	ActiveVolunteers int64           `json:"active_volunteers"`
	TotalRaised      decimal.Decimal `json:"total_raised"`
}

type DonorStats struct {
	TotalDonated       decimal.Decimal `json:"total_donated"`
	CampaignsSupported int64           `json:"campaigns_supported"`
	LastDonation       *time.Time      `json:"last_donation"`
}

type VolunteerStats struct {
	UpcomingEvents   int64 `json:"upcoming_events"`
	TotalEvents      int64 `json:"total_events"`
	HoursVolunteered int64 `json:"hours_volunteered"`
}
