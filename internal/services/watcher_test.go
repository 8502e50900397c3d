package services

import (
	"context"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/lecompagnon/boamp-companion/internal/events"
	"github.com/stretchr/testify/assert"
)

func Test_NotifyMatches_PublishesOnlyFreshHighScores(t *testing.T) {

	bus := EventBus.New()
	var published []events.TenderFound
	err := bus.Subscribe(events.TenderFoundTopic, func(event events.TenderFound) {
		published = append(published, event)
	})
	assert.NoError(t, err)

	watcher, err := NewTenderWatcher(bus, nil, nil, nil, 0, 70)
	assert.NoError(t, err)

	profile := models.Profile{UserID: "user-1"}
	tenders := []models.Tender{
		{ID: "A", Score: 85},
		{ID: "B", Score: 40},
		{ID: "C", Score: 90},
		{ID: "D", Score: 95},
	}
	triaged := map[string]struct{}{"C": {}}

	watcher.notifyMatches(context.Background(), tenders, profile, triaged)

	assert.Len(t, published, 2)
	assert.Equal(t, "A", published[0].Tender.ID)
	assert.Equal(t, "D", published[1].Tender.ID)
}

func Test_OnProfileDeleted_CancelsInFlightSweep(t *testing.T) {

	bus := EventBus.New()
	watcher, err := NewTenderWatcher(bus, nil, nil, nil, 0, 70)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	watcher.profileContexts.Store("user-1", context.CancelFunc(cancel))

	bus.Publish(events.ProfileDeletedTopic, events.ProfileDeleted{UserID: "user-1"})
	bus.WaitAsync()

	select {
	case <-ctx.Done():
	default:
		t.Fatal("expected sweep context to be canceled")
	}

	_, stillTracked := watcher.profileContexts.Load("user-1")
	assert.False(t, stillTracked)
}
