// Package cache keeps full tender payloads in memory. The authoritative
// store only persists IDs and statuses, so the workspace and detail views can
// only be rebuilt from what passed through here. The cache is best-effort and
// lossy: an evicted tender that no longer appears in a fresh fetch is gone,
// and dependent views silently drop it.
package cache

import (
	"time"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/lecompagnon/boamp-companion/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("tender not found in cache")

type Tenders struct {
	cache *gocache.Cache
}

// NewTenders creates the tender cache. A non-positive ttl means entries never
// expire, which matches the historical behavior of the product.
func NewTenders(ttl time.Duration) *Tenders {
	if ttl <= 0 {
		return &Tenders{cache: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Tenders{cache: gocache.New(ttl, 2*ttl)}
}

func (t *Tenders) Get(id string) (*models.Tender, error) {
	if cached, found := t.cache.Get(id); found {
		metrics.CacheHitsCounter.Inc()
		tender := cached.(models.Tender)
		return &tender, nil
	}
	metrics.CacheMissesCounter.Inc()
	return nil, ErrNotFound
}

// Put inserts or replaces the tender under its ID.
func (t *Tenders) Put(tender models.Tender) {
	t.cache.Set(tender.ID, tender, gocache.DefaultExpiration)
}

func (t *Tenders) GetAll() []models.Tender {
	items := t.cache.Items()
	tenders := make([]models.Tender, 0, len(items))
	for _, item := range items {
		tenders = append(tenders, item.Object.(models.Tender))
	}
	return tenders
}

func (t *Tenders) Len() int {
	return t.cache.ItemCount()
}

// SeedIfEmpty loads the built-in sample set when nothing has been cached yet,
// so a fresh install renders a populated dashboard before the first fetch.
func (t *Tenders) SeedIfEmpty() {
	if t.cache.ItemCount() > 0 {
		return
	}
	for _, tender := range sampleTenders {
		t.Put(tender)
	}
}
