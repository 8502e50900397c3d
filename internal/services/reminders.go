package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/lecompagnon/boamp-companion/internal/events"
	"github.com/lecompagnon/boamp-companion/internal/logger"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type reminderRepository interface {
	GetDueReminders(ctx context.Context, now time.Time) ([]models.Interaction, error)
	ClearReminder(ctx context.Context, userID, tenderID string) error
}

// ReminderSweeper fires deadline reminders set on saved tenders. Each due
// reminder is published once and then cleared.
type ReminderSweeper struct {
	bus       EventBus.Bus
	reminders reminderRepository
	cron      *cron.Cron
}

func NewReminderSweeper(bus EventBus.Bus, reminders reminderRepository, cronSpec string) (*ReminderSweeper, error) {

	rs := &ReminderSweeper{
		bus:       bus,
		reminders: reminders,
		cron:      cron.New(),
	}

	_, err := rs.cron.AddFunc(cronSpec, rs.sweepDueReminders)
	if err != nil {
		return nil, err
	}

	rs.cron.Start()
	log.Infof("reminder sweeper started with schedule %q", cronSpec)
	return rs, nil
}

func (rs *ReminderSweeper) Stop() {
	rs.cron.Stop()
}

func (rs *ReminderSweeper) sweepDueReminders() {

	due, err := rs.reminders.GetDueReminders(context.Background(), time.Now().UTC())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get due reminders: %v", err)
		return
	}

	for _, interaction := range due {
		rs.bus.Publish(events.ReminderDueTopic, events.ReminderDue{
			UserID:   interaction.UserID,
			TenderID: interaction.TenderID,
			Notes:    interaction.Notes,
		})
		if err = rs.reminders.ClearReminder(context.Background(), interaction.UserID, interaction.TenderID); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to clear reminder: %v", err)
		}
	}

	if len(due) != 0 {
		log.Infof("published %v due reminders", len(due))
	}
}
