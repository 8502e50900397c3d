package repositories

import (
	"context"
	"time"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Interactions struct {
	db *gorm.DB
}

func NewInteractionsRepository(db *gorm.DB) *Interactions {
	return &Interactions{db: db}
}

// Upsert writes the (user, tender) relationship. A second call with the same
// pair updates the existing row. A nil notes pointer leaves the stored notes
// untouched; an empty string explicitly clears them.
func (repo *Interactions) Upsert(ctx context.Context, userID, tenderID string,
	status models.InteractionStatus, notes *string) error {

	assignments := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if notes != nil {
		assignments["notes"] = *notes
	}

	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "tender_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&models.Interaction{
		UserID:   userID,
		TenderID: tenderID,
		Status:   status,
		Notes:    lo.FromPtr(notes),
	}).Error
}

func (repo *Interactions) GetByUser(ctx context.Context, userID string) ([]models.Interaction, error) {

	var interactions []models.Interaction
	if err := repo.db.WithContext(ctx).Find(&interactions, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return interactions, nil
}

func (repo *Interactions) GetByUserAndTender(ctx context.Context, userID, tenderID string) (*models.Interaction, error) {

	var interaction models.Interaction
	err := repo.db.WithContext(ctx).
		First(&interaction, "user_id = ? AND tender_id = ?", userID, tenderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &interaction, nil
}

// TriagedIDs returns the tender IDs the user has already handled, i.e. every
// interaction whose status is not to_qualify.
func (repo *Interactions) TriagedIDs(ctx context.Context, userID string) ([]string, error) {

	var ids []string
	err := repo.db.WithContext(ctx).Model(&models.Interaction{}).
		Where("user_id = ? AND status != ?", userID, models.StatusToQualify).
		Pluck("tender_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetWorkspace returns the user's saved, won and lost interactions.
func (repo *Interactions) GetWorkspace(ctx context.Context, userID string) ([]models.Interaction, error) {

	var interactions []models.Interaction
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID,
			[]models.InteractionStatus{models.StatusSaved, models.StatusWon, models.StatusLost}).
		Order("updated_at DESC").
		Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}

func (repo *Interactions) SetReminder(ctx context.Context, userID, tenderID string, remindAt time.Time) error {
	return repo.db.WithContext(ctx).Model(&models.Interaction{}).
		Where("user_id = ? AND tender_id = ?", userID, tenderID).
		Update("reminder_at", remindAt.UTC()).Error
}

func (repo *Interactions) ClearReminder(ctx context.Context, userID, tenderID string) error {
	return repo.db.WithContext(ctx).Model(&models.Interaction{}).
		Where("user_id = ? AND tender_id = ?", userID, tenderID).
		Update("reminder_at", nil).Error
}

// GetDueReminders returns every interaction whose reminder date has passed.
func (repo *Interactions) GetDueReminders(ctx context.Context, now time.Time) ([]models.Interaction, error) {

	var interactions []models.Interaction
	err := repo.db.WithContext(ctx).
		Where("reminder_at IS NOT NULL AND reminder_at <= ?", now.UTC()).
		Find(&interactions).Error
	if err != nil {
		return nil, err
	}
	return interactions, nil
}

func (repo *Interactions) SaveAnalysis(ctx context.Context, userID, tenderID string, analysisJSON string) error {
	return repo.db.WithContext(ctx).Model(&models.Interaction{}).
		Where("user_id = ? AND tender_id = ?", userID, tenderID).
		Update("analysis", analysisJSON).Error
}

func (repo *Interactions) SaveChatLog(ctx context.Context, userID, tenderID string, chatJSON string) error {
	return repo.db.WithContext(ctx).Model(&models.Interaction{}).
		Where("user_id = ? AND tender_id = ?", userID, tenderID).
		Update("chat_log", chatJSON).Error
}
