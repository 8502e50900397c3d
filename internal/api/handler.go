package api

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/lecompagnon/boamp-companion/internal/services"
)

type profileStore interface {
	Upsert(ctx context.Context, profile models.Profile) error
	GetByID(ctx context.Context, userID string) (*models.Profile, error)
	Remove(ctx context.Context, userID string) error
}

type interactionStore interface {
	Upsert(ctx context.Context, userID, tenderID string, status models.InteractionStatus, notes *string) error
	GetByUserAndTender(ctx context.Context, userID, tenderID string) (*models.Interaction, error)
	SetReminder(ctx context.Context, userID, tenderID string, remindAt time.Time) error
	ClearReminder(ctx context.Context, userID, tenderID string) error
	SaveAnalysis(ctx context.Context, userID, tenderID string, analysisJSON string) error
	SaveChatLog(ctx context.Context, userID, tenderID string, chatJSON string) error
}

type dashboardService interface {
	FetchPage(ctx context.Context, profile *models.Profile, filter services.DashboardFilter, offset int) (*services.TenderPage, error)
	SaveView(ctx context.Context, userID string, filter services.DashboardFilter) error
	LoadView(ctx context.Context, userID string) (*services.DashboardFilter, error)
}

type workspaceService interface {
	GetEntries(ctx context.Context, userID string) ([]services.WorkspaceEntry, error)
}

type tenderReader interface {
	GetTender(ctx context.Context, profile *models.Profile, id string) (*models.Tender, error)
}

type assistantService interface {
	AnalyzeTender(ctx context.Context, profile *models.Profile, tender models.Tender) (*models.TenderAnalysis, error)
	ChatAboutTender(ctx context.Context, profile *models.Profile, tender models.Tender,
		history []models.ChatMessage, message string) (string, error)
	SuggestCPVCodes(ctx context.Context, profile *models.Profile) ([]string, error)
}

type Handler struct {
	bus          EventBus.Bus
	profiles     profileStore
	interactions interactionStore
	dashboard    dashboardService
	workspace    workspaceService
	tenders      tenderReader
	assistant    assistantService
}

func NewHandler(bus EventBus.Bus, profiles profileStore, interactions interactionStore,
	dashboard dashboardService, workspace workspaceService, tenders tenderReader,
	assistant assistantService) *Handler {

	return &Handler{
		bus:          bus,
		profiles:     profiles,
		interactions: interactions,
		dashboard:    dashboard,
		workspace:    workspace,
		tenders:      tenders,
		assistant:    assistant,
	}
}
