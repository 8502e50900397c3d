package services

import (
	"context"

	"github.com/lecompagnon/boamp-companion/internal/cache"
	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type workspaceReader interface {
	GetWorkspace(ctx context.Context, userID string) ([]models.Interaction, error)
}

type cachedTenderReader interface {
	Get(id string) (*models.Tender, error)
}

// WorkspaceEntry pairs a triaged interaction with its full tender payload.
type WorkspaceEntry struct {
	Tender      models.Tender
	Interaction models.Interaction
}

// Workspace rebuilds the saved/won/lost board. Only interaction rows are
// authoritative; the tender bodies come from the local cache, so an entry
// whose tender fell out of the cache is silently omitted. That lossiness is
// part of the product's contract, not an error path.
type Workspace struct {
	interactions workspaceReader
	cache        cachedTenderReader
}

func NewWorkspace(interactions workspaceReader, tenderCache cachedTenderReader) *Workspace {
	return &Workspace{interactions: interactions, cache: tenderCache}
}

func (w *Workspace) GetEntries(ctx context.Context, userID string) ([]WorkspaceEntry, error) {

	interactions, err := w.interactions.GetWorkspace(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]WorkspaceEntry, 0, len(interactions))
	for _, interaction := range interactions {
		tender, err := w.cache.Get(interaction.TenderID)
		if err != nil {
			if errors.Is(err, cache.ErrNotFound) {
				log.Debugf("tender %v missing from cache, dropping workspace entry", interaction.TenderID)
				continue
			}
			return nil, err
		}
		entries = append(entries, WorkspaceEntry{Tender: *tender, Interaction: interaction})
	}

	return entries, nil
}
