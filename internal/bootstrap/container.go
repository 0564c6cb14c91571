package bootstrap

import (
	"log"

	"algodraft-be/internal/config"
	"algodraft-be/internal/controller"
	"algodraft-be/internal/pkg/logger"
	"algodraft-be/internal/repository/configstore"
	"algodraft-be/internal/repository/memory"
	"algodraft-be/internal/service"
	"algodraft-be/pkg/retrieval"
)

const appVersion = "1.0.0"

type Container struct {
	// Controllers
	AgentController  controller.IAgentController
	ConfigController controller.IConfigController
	PaperController  controller.IPaperController
	HealthController controller.IHealthController

	// Exposed for graceful shutdown in main.go
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Durable Agent Configuration
	store, err := configstore.New(cfg.Agent.ConfigFilePath, cfg.Agent.FallbackAPIKey, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize configuration store: %v", err)
	}

	// 3. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository(
		cfg.Session.MaxHistoryTurns,
		cfg.Session.IdleTTL,
		cfg.Session.SweepInterval,
	)

	// 4. Retrieval Collaborator
	retrievalClient := retrieval.NewHTTPClient(cfg.Papers.RetrieverURL)

	// 5. Services
	providerRouter := service.NewProviderRouter(store, cfg.Agent.OllamaBaseURL)
	agentService := service.NewAgentService(providerRouter, sessionRepo, retrievalClient, sysLogger, cfg.Agent.RequestTimeout)
	configService := service.NewConfigService(store, sysLogger)
	paperService := service.NewPaperService(retrievalClient, cfg.Papers.Dir, sysLogger)

	// 6. Controllers
	return &Container{
		AgentController:  controller.NewAgentController(agentService),
		ConfigController: controller.NewConfigController(configService),
		PaperController:  controller.NewPaperController(paperService),
		HealthController: controller.NewHealthController("AlgoDraft", appVersion),
		Logger:           sysLogger,
	}
}
