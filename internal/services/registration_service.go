package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/workshopwise/marketplace-service/internal/events"
	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/repositories"
	"github.com/workshopwise/marketplace-service/internal/validator"
)

type registrationService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewRegistrationService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) RegistrationService {
	return &registrationService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// Register checks, in order: workshop exists, workshop approved, no prior
// registration, a seat remains. Each failure is distinct. The resulting status
// depends on the workshop's registration mode:
//
//	automated + free  -> confirmed, seat claimed immediately
//	automated + paid  -> confirmed with payment proof, seat claimed immediately
//	manual            -> pending, seat claimed only on approval
func (s *registrationService) Register(ctx context.Context, userID, workshopID uint, req *validator.WorkshopRegistrationRequest) (*models.Registration, error) {
	var registration *models.Registration

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		workshop, err := txRepo.Workshop().GetByID(ctx, nil, workshopID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrWorkshopNotFound
			}
			return fmt.Errorf("failed to get workshop: %w", err)
		}

		if workshop.Status != models.WorkshopApproved {
			return ErrWorkshopNotApproved
		}

		exists, err := txRepo.Registration().ExistsByUserAndWorkshop(ctx, nil, userID, workshopID)
		if err != nil {
			return fmt.Errorf("failed to check existing registration: %w", err)
		}
		if exists {
			return ErrAlreadyRegistered
		}

		if !workshop.SeatsAvailable() {
			return ErrWorkshopFull
		}

		if errs := s.validator.GetBusinessValidator().ValidateRegistrationCreate(req, workshop); len(errs) > 0 {
			return errs
		}

		registration = &models.Registration{
			UserID:            userID,
			WorkshopID:        workshopID,
			Reason:            req.Reason,
			PaymentScreenshot: req.PaymentScreenshot,
			Status:            models.RegistrationPending,
		}

		if workshop.RegistrationMode == models.RegistrationAutomated {
			// The conditional update is the real capacity gate, the read
			// above only produces a friendlier early failure
			claimed, err := txRepo.Workshop().ClaimSeat(ctx, nil, workshopID)
			if err != nil {
				return fmt.Errorf("failed to claim seat: %w", err)
			}
			if !claimed {
				return ErrWorkshopFull
			}
			registration.Status = models.RegistrationConfirmed
		}

		if err := txRepo.Registration().Create(ctx, nil, registration); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrAlreadyRegistered
			}
			return fmt.Errorf("failed to create registration: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishRegistrationEvent(ctx, events.EventRegistrationCreated, registration)
	s.logger.Info("registration created",
		"registration_id", registration.ID,
		"workshop_id", workshopID,
		"user_id", userID,
		"status", registration.Status)

	return registration, nil
}

func (s *registrationService) GetMine(ctx context.Context, userID uint) ([]models.RegistrationWithWorkshop, error) {
	registrations, err := s.repo.Registration().GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}

	result := make([]models.RegistrationWithWorkshop, 0, len(registrations))
	for _, registration := range registrations {
		workshop := registration.Workshop
		result = append(result, models.RegistrationWithWorkshop{
			Registration: registration,
			Workshop:     &workshop,
		})
	}

	return result, nil
}

func (s *registrationService) publishRegistrationEvent(ctx context.Context, eventType string, registration *models.Registration) {
	event := events.NewEvent(eventType, events.RegistrationEvent{
		RegistrationID: registration.ID,
		UserID:         registration.UserID,
		WorkshopID:     registration.WorkshopID,
		Status:         string(registration.Status),
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish registration event", "error", err, "event_type", eventType)
	}
}
