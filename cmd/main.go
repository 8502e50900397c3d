package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/lecompagnon/boamp-companion/internal/api"
	"github.com/lecompagnon/boamp-companion/internal/cache"
	"github.com/lecompagnon/boamp-companion/internal/clients/boamp"
	"github.com/lecompagnon/boamp-companion/internal/clients/gemini"
	"github.com/lecompagnon/boamp-companion/internal/config"
	"github.com/lecompagnon/boamp-companion/internal/events"
	"github.com/lecompagnon/boamp-companion/internal/logger"
	"github.com/lecompagnon/boamp-companion/internal/metrics"
	"github.com/lecompagnon/boamp-companion/internal/repositories"
	"github.com/lecompagnon/boamp-companion/internal/services"
	log "github.com/sirupsen/logrus"
)

func runWatcher(cfg *config.Config, retriever *services.TendersRetriever,
	profiles *repositories.Profiles, interactions *repositories.Interactions, bus EventBus.Bus) {

	watcher, err := services.NewTenderWatcher(bus, retriever, profiles, interactions,
		cfg.Watcher.SweepInterval, cfg.Watcher.ScoreThreshold)
	if err != nil {
		log.Fatalf("can't create watcher: %v", err)
	}
	go watcher.Run()
}

func subscribeAlerts(bus EventBus.Bus) {

	err := bus.Subscribe(events.TenderFoundTopic, func(event events.TenderFound) {
		log.Infof("tender %v (score %v) matched profile of user %v",
			event.Tender.ID, event.Tender.Score, event.Profile.UserID)
	})
	if err != nil {
		log.Fatalf("can't subscribe to found tenders: %v", err)
	}

	err = bus.Subscribe(events.ReminderDueTopic, func(event events.ReminderDue) {
		log.Infof("reminder due for user %v on tender %v", event.UserID, event.TenderID)
	})
	if err != nil {
		log.Fatalf("can't subscribe to due reminders: %v", err)
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.API.MetricsAddress)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	profiles := repositories.NewProfilesRepository(dbContext.DB)
	interactions := repositories.NewInteractionsRepository(dbContext.DB)
	views := repositories.NewViewsRepository(dbContext.DB)

	bus := EventBus.New()
	subscribeAlerts(bus)

	boampClient := boamp.NewClient()
	boampClient.SetRateLimit(cfg.Boamp.MaxRequestsPerSecond)

	aiClient, err := gemini.NewClient(ctx, cfg.AI.Key, gemini.Model(cfg.AI.Model))
	if err != nil {
		log.Fatalf("can't create AI client: %v", err)
	}
	aiClient.SetMinuteRateLimit(cfg.AI.MaxRequestsPerMinute)
	aiClient.SetDayRateLimit(cfg.AI.MaxRequestsPerDay)

	tenderCache := cache.NewTenders(cfg.Watcher.CacheTTL)
	tenderCache.SeedIfEmpty()

	retriever := services.NewTendersRetriever(boampClient, tenderCache)
	dashboard := services.NewDashboard(retriever, interactions, views, cfg.API.PageSize)
	workspace := services.NewWorkspace(interactions, tenderCache)
	assistant := services.NewAIService(aiClient)

	runWatcher(cfg, retriever, profiles, interactions, bus)

	sweeper, err := services.NewReminderSweeper(bus, interactions, cfg.Watcher.ReminderCron)
	if err != nil {
		log.Fatalf("can't create reminder sweeper: %v", err)
	}
	defer sweeper.Stop()

	server := api.NewServer(api.NewHandler(bus, profiles, interactions, dashboard, workspace, retriever, assistant))
	go func() {
		if err := server.Start(cfg.API.Address); err != nil {
			log.Fatalf("http server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to stop http server: %v", err)
	}
	log.Info("Services stopped.")
}
