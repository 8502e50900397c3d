package services

import (
	"context"
	"encoding/json"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/samber/lo"
)

type tenderFetcher interface {
	GetTenders(ctx context.Context, profile *models.Profile, filter SearchFilter,
		offset, pageSize int) ([]models.Tender, error)
}

type triagedReader interface {
	TriagedIDs(ctx context.Context, userID string) ([]string, error)
}

type viewStore interface {
	Save(ctx context.Context, userID string, snapshot []byte) error
	Load(ctx context.Context, userID string) ([]byte, error)
}

// DashboardFilter is one dashboard query: server-side filters passed to the
// feed, plus local-only thresholds applied after scoring (the feed knows
// nothing about scores or our budget reading).
type DashboardFilter struct {
	SearchFilter
	MinScore  int
	MaxBudget float64
}

// TenderPage is one page of the authorized dashboard list.
type TenderPage struct {
	Tenders    []models.Tender
	NextOffset int
	// HasMore is inferred from the page being full; a short page is treated
	// as exhaustion even though the upstream contract does not guarantee it.
	HasMore bool
}

// Dashboard coordinates fetch, triage filtering, local filtering and
// pagination for the main tender list.
type Dashboard struct {
	fetcher      tenderFetcher
	interactions triagedReader
	views        viewStore
	pageSize     int
}

func NewDashboard(fetcher tenderFetcher, interactions triagedReader, views viewStore, pageSize int) *Dashboard {
	return &Dashboard{
		fetcher:      fetcher,
		interactions: interactions,
		views:        views,
		pageSize:     pageSize,
	}
}

// FetchPage returns the next page of fresh tenders for the profile, with
// already-triaged tenders removed and local thresholds applied.
func (d *Dashboard) FetchPage(ctx context.Context, profile *models.Profile,
	filter DashboardFilter, offset int) (*TenderPage, error) {

	tenders, err := d.fetcher.GetTenders(ctx, profile, filter.SearchFilter, offset, d.pageSize)
	if err != nil {
		return nil, err
	}

	// a full page means the feed may hold more, regardless of how many
	// entries the local filters remove below
	hasMore := len(tenders) == d.pageSize

	triaged, err := d.interactions.TriagedIDs(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	triagedSet := lo.SliceToMap(triaged, func(id string) (string, struct{}) { return id, struct{}{} })

	authorized := lo.Filter(tenders, func(t models.Tender, _ int) bool {
		if _, handled := triagedSet[t.ID]; handled {
			return false
		}
		return d.passesLocalFilters(t, filter)
	})

	return &TenderPage{
		Tenders:    authorized,
		NextOffset: offset + d.pageSize,
		HasMore:    hasMore,
	}, nil
}

// Append merges a newly loaded page into the already displayed list,
// de-duplicating by tender ID so interleaved load-more responses cannot show
// a notice twice.
func (d *Dashboard) Append(existing []models.Tender, page []models.Tender) []models.Tender {
	return lo.UniqBy(append(existing, page...), func(t models.Tender) string { return t.ID })
}

func (d *Dashboard) passesLocalFilters(tender models.Tender, filter DashboardFilter) bool {
	if tender.Score < filter.MinScore {
		return false
	}
	if filter.MaxBudget > 0 && tender.Budget != nil && *tender.Budget > filter.MaxBudget {
		return false
	}
	return true
}

// SaveView persists the user's dashboard filters as their default view.
func (d *Dashboard) SaveView(ctx context.Context, userID string, filter DashboardFilter) error {
	snapshot, err := json.Marshal(filter)
	if err != nil {
		return err
	}
	return d.views.Save(ctx, userID, snapshot)
}

// LoadView restores the persisted default view, or nil when none was saved.
func (d *Dashboard) LoadView(ctx context.Context, userID string) (*DashboardFilter, error) {
	snapshot, err := d.views.Load(ctx, userID)
	if err != nil || snapshot == nil {
		return nil, err
	}

	var filter DashboardFilter
	if err = json.Unmarshal(snapshot, &filter); err != nil {
		return nil, err
	}
	return &filter, nil
}
