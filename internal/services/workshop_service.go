package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/workshopwise/marketplace-service/internal/events"
	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/repositories"
	"github.com/workshopwise/marketplace-service/internal/validator"
)

type workshopService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewWorkshopService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) WorkshopService {
	return &workshopService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

func (s *workshopService) ListPublic(ctx context.Context, params PublicListParams) (*WorkshopListResponse, error) {
	filters := repositories.WorkshopFilters{
		Mode:     params.Mode,
		FreeOnly: params.FreeOnly,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	workshops, total, err := s.repo.Workshop().ListApproved(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}

	return &WorkshopListResponse{
		Workshops: workshops,
		Total:     total,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}, nil
}

func (s *workshopService) GetPublic(ctx context.Context, id uint) (*models.Workshop, error) {
	workshop, err := s.repo.Workshop().GetByIDWithEnterprise(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to get workshop: %w", err)
	}

	// Unapproved workshops are invisible to the public surface
	if workshop.Status != models.WorkshopApproved {
		return nil, ErrWorkshopNotFound
	}

	return workshop, nil
}

func (s *workshopService) Create(ctx context.Context, userID uint, req *validator.WorkshopCreateRequest) (*models.Workshop, error) {
	if errs := s.validator.GetBusinessValidator().ValidateWorkshopCreate(req); len(errs) > 0 {
		return nil, errs
	}

	enterprise, err := s.repo.Enterprise().GetByUserID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnterpriseNotFound
		}
		return nil, fmt.Errorf("failed to get enterprise: %w", err)
	}

	if enterprise.Status != models.EnterpriseApproved {
		return nil, ErrEnterpriseNotApproved
	}

	workshop := &models.Workshop{
		EnterpriseID:     enterprise.ID,
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		Mode:             req.Mode,
		Price:            req.Price,
		IsFree:           req.Price == 0,
		Seats:            req.Seats,
		RegisteredSeats:  0,
		RegistrationMode: req.RegistrationMode,
		Status:           models.WorkshopPending,
	}

	// Automated online workshops get a meeting link up front so confirmed
	// registrants can join without a manual follow-up
	if req.Mode == models.ModeOnline && req.RegistrationMode == models.RegistrationAutomated {
		link := fmt.Sprintf("https://meet.workshopwise.io/%s", uuid.NewString())
		workshop.MeetLink = &link
	}

	if err := s.repo.Workshop().Create(ctx, nil, workshop); err != nil {
		return nil, fmt.Errorf("failed to create workshop: %w", err)
	}

	s.publishWorkshopEvent(ctx, events.EventWorkshopCreated, workshop, userID)
	s.logger.Info("workshop created", "workshop_id", workshop.ID, "enterprise_id", enterprise.ID)

	return workshop, nil
}

func (s *workshopService) Delete(ctx context.Context, userID, workshopID uint) error {
	workshop, err := s.getOwnedWorkshop(ctx, userID, workshopID, "delete")
	if err != nil {
		return err
	}

	// Registrations never outlive their workshop
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Registration().DeleteByWorkshop(ctx, nil, workshopID); err != nil {
			return err
		}
		return txRepo.Workshop().Delete(ctx, nil, workshopID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}

	s.publishWorkshopEvent(ctx, events.EventWorkshopDeleted, workshop, userID)
	s.logger.Info("workshop deleted", "workshop_id", workshopID, "user_id", userID)

	return nil
}

func (s *workshopService) GetOwn(ctx context.Context, userID uint) ([]*models.Workshop, error) {
	enterprise, err := s.repo.Enterprise().GetByUserID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnterpriseNotFound
		}
		return nil, fmt.Errorf("failed to get enterprise: %w", err)
	}

	workshops, err := s.repo.Workshop().GetByEnterprise(ctx, nil, enterprise.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list own workshops: %w", err)
	}

	return workshops, nil
}

func (s *workshopService) GetRegistrations(ctx context.Context, userID, workshopID uint) ([]models.RegistrationWithUser, error) {
	if _, err := s.getOwnedWorkshop(ctx, userID, workshopID, "view_registrations"); err != nil {
		return nil, err
	}

	registrations, err := s.repo.Registration().GetByWorkshop(ctx, nil, workshopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}

	result := make([]models.RegistrationWithUser, 0, len(registrations))
	for _, registration := range registrations {
		result = append(result, models.RegistrationWithUser{
			Registration: registration,
			User:         registration.User.Public(),
		})
	}

	return result, nil
}

// getOwnedWorkshop loads a workshop and verifies the calling user's enterprise
// owns it.
func (s *workshopService) getOwnedWorkshop(ctx context.Context, userID, workshopID uint, action string) (*models.Workshop, error) {
	workshop, err := s.repo.Workshop().GetByID(ctx, nil, workshopID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to get workshop: %w", err)
	}

	enterprise, err := s.repo.Enterprise().GetByUserID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewPermissionError(userID, workshopID, "workshop", action, "no enterprise account")
		}
		return nil, fmt.Errorf("failed to get enterprise: %w", err)
	}

	if workshop.EnterpriseID != enterprise.ID {
		return nil, NewPermissionError(userID, workshopID, "workshop", action, "not the owning enterprise")
	}

	return workshop, nil
}

func (s *workshopService) publishWorkshopEvent(ctx context.Context, eventType string, workshop *models.Workshop, actorID uint) {
	event := events.NewEvent(eventType, events.StatusChangeEvent{
		EntityID: workshop.ID,
		ActorID:  actorID,
		ToStatus: string(workshop.Status),
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish workshop event", "error", err, "event_type", eventType)
	}
}
