// Package wire provides dependency injection for the frontdesk application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"go.uber.org/zap"

	"github.com/example/frontdesk/internal/adapters/sms"
	"github.com/example/frontdesk/internal/adapters/sqlite"
	"github.com/example/frontdesk/internal/app"
	"github.com/example/frontdesk/internal/db"
	"github.com/example/frontdesk/internal/metrics"
	"github.com/example/frontdesk/internal/ports/primary"
	"github.com/example/frontdesk/internal/ports/secondary"
)

var (
	logger            *zap.Logger
	sessionRegistry   *app.SessionRegistry
	knowledgeRepo     secondary.KnowledgeRepository
	customerRepo      secondary.CustomerRepository
	escalationService primary.EscalationService
	knowledgeService  primary.KnowledgeService
	once              sync.Once
)

// Logger returns the singleton application logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	return logger
}

// EscalationService returns the singleton EscalationService instance.
func EscalationService() primary.EscalationService {
	once.Do(initServices)
	return escalationService
}

// KnowledgeService returns the singleton KnowledgeService instance.
func KnowledgeService() primary.KnowledgeService {
	once.Do(initServices)
	return knowledgeService
}

// Sessions returns the singleton live-session registry.
func Sessions() *app.SessionRegistry {
	once.Do(initServices)
	return sessionRegistry
}

// ReceptionService builds a reception flow on the given transport. Each
// transport (console call, future telephony bridge) gets its own instance;
// all of them share the singleton services underneath.
func ReceptionService(transport secondary.SessionTransport) primary.ReceptionService {
	once.Do(initServices)
	return app.NewReceptionService(escalationService, knowledgeRepo, customerRepo, transport, sessionRegistry, logger)
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	metrics.Init()

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	knowledgeRepo = sqlite.NewKnowledgeRepository(database)
	customerRepo = sqlite.NewCustomerRepository(database)
	escalationRepo := sqlite.NewEscalationRepository(database)

	sessionRegistry = app.NewSessionRegistry()
	notifier := sms.NewSimulator(logger)

	escalationService = app.NewEscalationService(escalationRepo, knowledgeRepo, sessionRegistry, notifier, logger)
	knowledgeService = app.NewKnowledgeService(knowledgeRepo)
}
