package repositories

import (
	"context"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Views persists per-user dashboard filter snapshots as opaque payloads.
type Views struct {
	db *gorm.DB
}

func NewViewsRepository(db *gorm.DB) *Views {
	return &Views{db: db}
}

func (repo *Views) Save(ctx context.Context, userID string, snapshot []byte) error {
	return repo.db.WithContext(ctx).Save(models.SavedView{
		UserID: userID,
		Value:  snapshot,
	}).Error
}

func (repo *Views) Load(ctx context.Context, userID string) ([]byte, error) {
	view := &models.SavedView{}
	err := repo.db.WithContext(ctx).First(view, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return view.Value, nil
}

func (repo *Views) Remove(ctx context.Context, userID string) error {
	return repo.db.WithContext(ctx).Delete(&models.SavedView{}, "user_id = ?", userID).Error
}
