package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/workshopwise/marketplace-service/internal/events"
	"github.com/workshopwise/marketplace-service/internal/repositories"
	"github.com/workshopwise/marketplace-service/internal/security"
	"github.com/workshopwise/marketplace-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	EnableDebugLogging bool
	LogLevel           slog.Level
	DefaultTimeout     time.Duration

	// Bootstrap admin account, provisioned on startup when set
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	db             *gorm.DB
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	tokenManager   security.TokenManager
	eventPublisher events.EventPublisher
	config         ServiceManagerConfig

	authService         AuthService
	workshopService     WorkshopService
	registrationService RegistrationService
	moderationService   ModerationService
	profileService      ProfileService
	exportService       ExportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator, tm security.TokenManager, publisher events.EventPublisher, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:             db,
		repo:           repo,
		logger:         logger,
		validator:      v,
		tokenManager:   tm,
		eventPublisher: publisher,
		config:         config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.authService = NewAuthService(sm.repo, sm.db, sm.logger, sm.validator, sm.tokenManager, sm.eventPublisher)
	sm.workshopService = NewWorkshopService(sm.repo, sm.db, sm.logger, sm.validator, sm.eventPublisher)
	sm.registrationService = NewRegistrationService(sm.repo, sm.db, sm.logger, sm.validator, sm.eventPublisher)
	sm.moderationService = NewModerationService(sm.repo, sm.db, sm.logger, sm.validator, sm.eventPublisher)
	sm.profileService = NewProfileService(sm.repo, sm.db, sm.logger, sm.validator)
	sm.exportService = NewExportService(sm.repo, sm.workshopService, sm.logger)

	if sm.config.AdminEmail != "" && sm.config.AdminPassword != "" {
		if err := sm.authService.EnsureAdmin(ctx, sm.config.AdminName, sm.config.AdminEmail, sm.config.AdminPassword); err != nil {
			return fmt.Errorf("failed to provision admin account: %w", err)
		}
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) Workshop() WorkshopService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.workshopService
}

func (sm *serviceManager) Registration() RegistrationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.registrationService
}

func (sm *serviceManager) Moderation() ModerationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.moderationService
}

func (sm *serviceManager) Profile() ProfileService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.profileService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.exportService
}

// HealthCheck verifies the repository connections are alive
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	return sm.repo.Ping(ctx)
}

// Shutdown releases the event publisher; repository connections are owned by
// the repository manager
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.eventPublisher.Close(); err != nil {
		sm.logger.Warn("failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	return nil
}
