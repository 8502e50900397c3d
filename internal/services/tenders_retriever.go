package services

import (
	"context"
	"time"

	"github.com/lecompagnon/boamp-companion/internal/clients/boamp"
	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/lecompagnon/boamp-companion/internal/metrics"
	"github.com/lecompagnon/boamp-companion/internal/scoring"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type tenderCache interface {
	Put(tender models.Tender)
}

// TendersRetriever fetches a page of tenders for a profile, attaches the
// local compatibility score and opportunistically writes every payload into
// the tender cache (the only place full tender bodies survive).
type TendersRetriever struct {
	client *boamp.Client
	cache  tenderCache
}

func NewTendersRetriever(client *boamp.Client, cache tenderCache) *TendersRetriever {
	return &TendersRetriever{client: client, cache: cache}
}

// SearchFilter carries the server-side filters of a dashboard query.
type SearchFilter struct {
	Text           string
	Procedure      string
	PublishedAfter time.Time
}

func (r *TendersRetriever) GetTenders(ctx context.Context, profile *models.Profile,
	filter SearchFilter, offset, pageSize int) ([]models.Tender, error) {

	params := createSearchParams(profile, filter, offset, pageSize)
	if err := params.Validate(); err != nil {
		if errors.Is(err, boamp.ErrTooDeepPagination) {
			log.Warningf("too deep pagination for user %v, offset: %d, page size: %d",
				profile.UserID, offset, pageSize)
			return []models.Tender{}, nil
		}
		return nil, err
	}

	start := time.Now()
	tenders, err := r.client.GetTenders(ctx, params)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	metrics.FetchedTendersCounter.Add(float64(len(tenders)))

	for i := range tenders {
		tenders[i].Score = scoring.Score(profile, tenders[i])
		r.cache.Put(tenders[i])
	}

	return tenders, nil
}

// GetTender fetches one notice by ID, scored for the profile and cached.
func (r *TendersRetriever) GetTender(ctx context.Context, profile *models.Profile, id string) (*models.Tender, error) {

	tender, err := r.client.GetTender(ctx, id)
	if err != nil {
		return nil, err
	}

	tender.Score = scoring.Score(profile, *tender)
	r.cache.Put(*tender)
	return tender, nil
}

func createSearchParams(profile *models.Profile, filter SearchFilter, offset, pageSize int) boamp.SearchParameters {

	params := boamp.SearchParameters{
		Text:           filter.Text,
		Procedure:      filter.Procedure,
		PublishedAfter: filter.PublishedAfter,
		Limit:          pageSize,
		Offset:         offset,
	}

	// only an explicit department list narrows the query; country-wide and
	// continental scopes fetch the unfiltered feed, newest first
	if profile.Scope == models.ScopeDepartments {
		params.Departments = profile.DepartmentsAsArray()
	}

	return params
}
