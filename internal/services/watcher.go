package services

import (
	"context"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/lecompagnon/boamp-companion/internal/events"
	"github.com/lecompagnon/boamp-companion/internal/logger"
	"github.com/lecompagnon/boamp-companion/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type profileRepository interface {
	Get(ctx context.Context, limit int, offset int) ([]models.Profile, error)
	UpdateLastChecked(ctx context.Context, userID string, checkedAt time.Time) error
}

type interactionReader interface {
	TriagedIDs(ctx context.Context, userID string) ([]string, error)
}

// TenderWatcher periodically sweeps every active profile against the notice
// feed and publishes an event for each fresh tender scoring above the alert
// threshold. One sweep handles profiles page by page, each profile on its own
// goroutine so a deleted profile can cancel its in-flight fetch.
type TenderWatcher struct {
	bus             EventBus.Bus
	profiles        profileRepository
	interactions    interactionReader
	retriever       *TendersRetriever
	lastSweepTime   time.Time
	sweepInterval   time.Duration
	scoreThreshold  int
	profileContexts sync.Map
}

func NewTenderWatcher(bus EventBus.Bus, retriever *TendersRetriever,
	profiles profileRepository, interactions interactionReader,
	sweepInterval time.Duration, scoreThreshold int) (*TenderWatcher, error) {

	w := &TenderWatcher{
		bus:            bus,
		profiles:       profiles,
		interactions:   interactions,
		retriever:      retriever,
		sweepInterval:  sweepInterval,
		scoreThreshold: scoreThreshold,
	}
	err := bus.Subscribe(events.ProfileDeletedTopic, w.onProfileDeletedEvent)
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (w *TenderWatcher) Run() {
	for {
		startTime := time.Now()
		log.Infof("running tender sweep at %v", time.Now())

		w.runSweep()

		executionTime := time.Since(startTime)
		metrics.SweepDuration.Observe(executionTime.Seconds())
		log.Infof("tender sweep ended after %v", executionTime)

		var sleepTime time.Duration
		if executionTime <= w.sweepInterval {
			sleepTime = w.sweepInterval - executionTime
		} else {
			w.sweepInterval = executionTime + time.Hour
			log.Infof("sweep interval exceeded to %v", w.sweepInterval)
		}

		log.Infof("next sweep time is %v", time.Now().Add(sleepTime))
		time.Sleep(sleepTime)
	}
}

func (w *TenderWatcher) runSweep() {

	var pageSize, sweptTotal = 20, 0

	for offset := 0; ; offset += pageSize {

		profiles, err := w.profiles.Get(context.Background(), pageSize, offset)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get profiles: %v", err)
			break
		}
		if len(profiles) == 0 {
			break
		}

		var wg sync.WaitGroup
		for _, profile := range profiles {
			if !profile.HasActiveSubscription() {
				continue
			}
			w.runSweepForProfile(&wg, profile)
			sweptTotal++
		}

		wg.Wait()
	}

	log.Infof("handled %v profiles", sweptTotal)
}

func (w *TenderWatcher) runSweepForProfile(wg *sync.WaitGroup, profile models.Profile) {

	var since = profile.LastCheckedAt
	if since.IsZero() {
		since = profile.CreatedAt
	}

	profileCtx, cancel := context.WithCancel(context.Background())
	w.profileContexts.Store(profile.UserID, cancel)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer w.profileContexts.Delete(profile.UserID)
		w.sweepTendersForProfile(profileCtx, profile, since)
	}()
}

func (w *TenderWatcher) sweepTendersForProfile(ctx context.Context, profile models.Profile, since time.Time) {

	var pageSize, fetchedTotal = 20, 0

	triaged, err := w.interactions.TriagedIDs(ctx, profile.UserID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get triaged tenders: %v", err)
		return
	}
	triagedSet := make(map[string]struct{}, len(triaged))
	for _, id := range triaged {
		triagedSet[id] = struct{}{}
	}

	filter := SearchFilter{PublishedAfter: since}
	sweepStart := time.Now()

	for offset := 0; ; offset += pageSize {

		select {
		case <-ctx.Done():
			log.Infof("sweep canceled for user %v", profile.UserID)
			return
		default:
		}

		tenders, err := w.retriever.GetTenders(ctx, &profile, filter, offset, pageSize)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeBoampApi).Errorf("failed to get tenders: %v", err)
			return
		}
		fetchedTotal += len(tenders)

		if len(tenders) == 0 {
			break
		}

		w.notifyMatches(ctx, tenders, profile, triagedSet)

		// a short page means the feed is exhausted for this window
		if len(tenders) < pageSize {
			break
		}
	}

	if err = w.profiles.UpdateLastChecked(context.Background(), profile.UserID, sweepStart); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to update last checked time: %v", err)
	}

	log.Infof("fetched total %v tenders for user %v", fetchedTotal, profile.UserID)
}

func (w *TenderWatcher) notifyMatches(ctx context.Context, tenders []models.Tender,
	profile models.Profile, triagedSet map[string]struct{}) {

	for _, tender := range tenders {

		select {
		case <-ctx.Done():
			return
		default:
		}

		if _, handled := triagedSet[tender.ID]; handled {
			continue
		}
		if tender.Score < w.scoreThreshold {
			continue
		}

		metrics.MatchedTendersCounter.Inc()
		w.bus.Publish(events.TenderFoundTopic, events.TenderFound{Profile: profile, Tender: tender})
	}
}

func (w *TenderWatcher) onProfileDeletedEvent(event events.ProfileDeleted) {
	if cancel, ok := w.profileContexts.Load(event.UserID); ok {
		cancel.(context.CancelFunc)()
		w.profileContexts.Delete(event.UserID)
	}
}
