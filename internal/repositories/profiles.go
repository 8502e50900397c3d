package repositories

import (
	"context"
	"time"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Profiles struct {
	db *gorm.DB
}

func NewProfilesRepository(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

// Upsert creates the profile on first save and fully replaces its editable
// fields afterwards.
func (repo *Profiles) Upsert(ctx context.Context, profile models.Profile) error {
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_name", "specialization", "cpv_codes", "negative_keywords",
			"scope", "departments", "updated_at",
		}),
	}).Create(&profile).Error
}

func (repo *Profiles) GetByID(ctx context.Context, userID string) (*models.Profile, error) {

	var profile models.Profile
	if err := repo.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (repo *Profiles) Get(ctx context.Context, limit int, offset int) ([]models.Profile, error) {

	var profiles []models.Profile
	if err := repo.db.WithContext(ctx).
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (repo *Profiles) UpdateSubscription(ctx context.Context, userID string, status models.SubscriptionStatus) error {
	return repo.db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).
		Update("subscription", status).Error
}

func (repo *Profiles) UpdateLastChecked(ctx context.Context, userID string, checkedAt time.Time) error {
	return repo.db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).
		Update("last_checked_at", checkedAt.UTC()).Error
}

func (repo *Profiles) Remove(ctx context.Context, userID string) error {
	return repo.db.WithContext(ctx).Delete(&models.Profile{}, "user_id = ?", userID).Error
}
