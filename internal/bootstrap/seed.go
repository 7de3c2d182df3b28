package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"time"

	"anoa.com/charityhub/internal/entity"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
)

type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// SeedAdminUser creates the first administrator unless an account with the
// same username already exists. An empty password skips seeding.
func SeedAdminUser(db *gorm.DB, seed AdminSeed) error {
	if seed.Password == "" {
		zap.L().Info("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).
		Where("username = ?", seed.Username).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		zap.L().Debug("admin user already exists, skipping seed", zap.String("username", seed.Username))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.User{
		Username:     seed.Username,
		Email:        seed.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Name:         "Administrator",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	zap.L().Info("admin user seeded", zap.String("username", admin.Username))
	return nil
}

// DemoData is the YAML fixture layout. Donations, assignments and fund usage
// refer to users and campaigns by username / name / title.
type DemoData struct {
	Users []struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		Role     string `yaml:"role"`
	} `yaml:"users"`
	Campaigns []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		GoalAmount  string `yaml:"goal_amount"`
	} `yaml:"campaigns"`
	Donations []struct {
		Donor    string `yaml:"donor"`
		Campaign string `yaml:"campaign"`
		Amount   string `yaml:"amount"`
	} `yaml:"donations"`
	Events []struct {
		Title       string    `yaml:"title"`
		Description string    `yaml:"description"`
		Date        time.Time `yaml:"date"`
		Location    string    `yaml:"location"`
	} `yaml:"events"`
	Assignments []struct {
		Volunteer string `yaml:"volunteer"`
		Event     string `yaml:"event"`
	} `yaml:"assignments"`
	FundUsage []struct {
		Campaign    string `yaml:"campaign"`
		Description string `yaml:"description"`
		AmountSpent string `yaml:"amount_spent"`
	} `yaml:"fund_usage"`
}

func LoadDemoData(path string) (*DemoData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data DemoData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &data, nil
}

// SeedDemoData loads the fixture file into an empty store. It is a no-op when
// the file is missing or campaigns already exist.
func SeedDemoData(db *gorm.DB, path string) error {
	data, err := LoadDemoData(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			zap.L().Info("seed file not found, skipping demo data", zap.String("path", path))
			return nil
		}
		return err
	}

	var count int64
	if err := db.Model(&entity.Campaign{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		zap.L().Debug("store already has campaigns, skipping demo data")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := make(map[string]*entity.User)
		for _, u := range data.Users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := &entity.User{
				Username:     u.Username,
				Email:        u.Email,
				PasswordHash: string(hash),
				Role:         u.Role,
				Name:         u.Name,
			}
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", u.Username, err)
			}
			users[u.Username] = user
		}

		campaigns := make(map[string]*entity.Campaign)
		for _, c := range data.Campaigns {
			goal, err := decimal.NewFromString(c.GoalAmount)
			if err != nil {
				return fmt.Errorf("seed campaign %s: %w", c.Name, err)
			}
			campaign := &entity.Campaign{Name: c.Name, Description: c.Description, GoalAmount: goal}
			if err := tx.Create(campaign).Error; err != nil {
				return fmt.Errorf("seed campaign %s: %w", c.Name, err)
			}
			campaigns[c.Name] = campaign
		}

		for _, d := range data.Donations {
			donor, campaign := users[d.Donor], campaigns[d.Campaign]
			if donor == nil || campaign == nil {
				return fmt.Errorf("seed donation: unknown donor %q or campaign %q", d.Donor, d.Campaign)
			}
			amount, err := decimal.NewFromString(d.Amount)
			if err != nil {
				return fmt.Errorf("seed donation: %w", err)
			}
			if err := tx.Create(&entity.Donation{DonorID: donor.ID, CampaignID: campaign.ID, Amount: amount}).Error; err != nil {
				return fmt.Errorf("seed donation: %w", err)
			}
		}

		events := make(map[string]*entity.Event)
		for _, e := range data.Events {
			event := &entity.Event{Title: e.Title, Description: e.Description, Date: e.Date.UTC(), Location: e.Location}
			if err := tx.Create(event).Error; err != nil {
				return fmt.Errorf("seed event %s: %w", e.Title, err)
			}
			events[e.Title] = event
		}

		for _, a := range data.Assignments {
			volunteer, event := users[a.Volunteer], events[a.Event]
			if volunteer == nil || event == nil {
				return fmt.Errorf("seed assignment: unknown volunteer %q or event %q", a.Volunteer, a.Event)
			}
			if err := tx.Create(&entity.VolunteerAssignment{VolunteerID: volunteer.ID, EventID: event.ID}).Error; err != nil {
				return fmt.Errorf("seed assignment: %w", err)
			}
		}

		for _, f := range data.FundUsage {
			campaign := campaigns[f.Campaign]
			if campaign == nil {
				return fmt.Errorf("seed fund usage: unknown campaign %q", f.Campaign)
			}
			spent, err := decimal.NewFromString(f.AmountSpent)
			if err != nil {
				return fmt.Errorf("seed fund usage: %w", err)
			}
			if err := tx.Create(&entity.FundUsage{CampaignID: campaign.ID, Description: f.Description, AmountSpent: spent}).Error; err != nil {
				return fmt.Errorf("seed fund usage: %w", err)
			}
		}

		zap.L().Info("demo data seeded",
			zap.Int("users", len(data.Users)),
			zap.Int("campaigns", len(data.Campaigns)),
			zap.Int("donations", len(data.Donations)),
			zap.Int("events", len(data.Events)))
		return nil
	})
}
