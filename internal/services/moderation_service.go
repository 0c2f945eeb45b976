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

type moderationService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewModerationService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ModerationService {
	return &moderationService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

func (s *moderationService) ListUsers(ctx context.Context, actorID uint, params AdminListParams) (*UserListResponse, error) {
	users, total, err := s.repo.User().List(ctx, nil, repositories.UserFilters{
		Query:  params.Query,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &UserListResponse{Users: users, Total: total}, nil
}

// DeleteUser removes an account and everything hanging off it. For enterprise
// accounts that means the enterprise, its workshops and every registration to
// those workshops. The whole cascade commits or rolls back as one unit.
func (s *moderationService) DeleteUser(ctx context.Context, actorID, userID uint) error {
	if actorID == userID {
		return ErrAdminSelfDelete
	}

	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if user.Role == models.RoleEnterprise {
			enterprise, err := txRepo.Enterprise().GetByUserID(ctx, nil, userID)
			if err == nil {
				if err := s.cascadeEnterprise(ctx, txRepo, enterprise.ID); err != nil {
					return err
				}
			} else if !repositories.IsNotFoundError(err) {
				return fmt.Errorf("failed to get enterprise: %w", err)
			}
		}

		if err := txRepo.Registration().DeleteByUser(ctx, nil, userID); err != nil {
			return err
		}
		if err := txRepo.Profile().DeleteByUser(ctx, nil, userID); err != nil {
			return err
		}
		return txRepo.User().Delete(ctx, nil, userID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.publishEvent(ctx, events.EventUserDeleted, events.AccountEvent{
		UserID: userID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	s.logger.Info("user deleted", "user_id", userID, "actor_id", actorID)

	return nil
}

func (s *moderationService) ListEnterprises(ctx context.Context, actorID uint, params AdminListParams) (*EnterpriseListResponse, error) {
	enterprises, total, err := s.repo.Enterprise().List(ctx, nil, repositories.EnterpriseFilters{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list enterprises: %w", err)
	}
	return &EnterpriseListResponse{Enterprises: enterprises, Total: total}, nil
}

func (s *moderationService) UpdateEnterpriseStatus(ctx context.Context, actorID, enterpriseID uint, status models.EnterpriseStatus) (*models.Enterprise, error) {
	enterprise, err := s.repo.Enterprise().GetByID(ctx, nil, enterpriseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnterpriseNotFound
		}
		return nil, fmt.Errorf("failed to get enterprise: %w", err)
	}

	if errs := s.validator.GetBusinessValidator().ValidateEnterpriseStatusTransition(enterprise.Status, status); len(errs) > 0 {
		return nil, errs
	}

	previous := enterprise.Status
	if err := s.repo.Enterprise().UpdateStatus(ctx, nil, enterpriseID, status); err != nil {
		return nil, fmt.Errorf("failed to update enterprise status: %w", err)
	}
	enterprise.Status = status

	s.publishEvent(ctx, events.EventEnterpriseModerated, events.StatusChangeEvent{
		EntityID:   enterpriseID,
		ActorID:    actorID,
		FromStatus: string(previous),
		ToStatus:   string(status),
	})
	s.logger.Info("enterprise status updated",
		"enterprise_id", enterpriseID, "from", previous, "to", status, "actor_id", actorID)

	return enterprise, nil
}

func (s *moderationService) DeleteEnterprise(ctx context.Context, actorID, enterpriseID uint) error {
	if _, err := s.repo.Enterprise().GetByID(ctx, nil, enterpriseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrEnterpriseNotFound
		}
		return fmt.Errorf("failed to get enterprise: %w", err)
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		return s.cascadeEnterprise(ctx, txRepo, enterpriseID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete enterprise: %w", err)
	}

	s.publishEvent(ctx, events.EventEnterpriseDeleted, events.StatusChangeEvent{
		EntityID: enterpriseID,
		ActorID:  actorID,
	})
	s.logger.Info("enterprise deleted", "enterprise_id", enterpriseID, "actor_id", actorID)

	return nil
}

func (s *moderationService) ListWorkshops(ctx context.Context, actorID uint, params AdminListParams) (*WorkshopListResponse, error) {
	workshops, total, err := s.repo.Workshop().List(ctx, nil, repositories.WorkshopFilters{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
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

func (s *moderationService) UpdateWorkshopStatus(ctx context.Context, actorID, workshopID uint, status models.WorkshopStatus) (*models.Workshop, error) {
	workshop, err := s.repo.Workshop().GetByID(ctx, nil, workshopID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to get workshop: %w", err)
	}

	if errs := s.validator.GetBusinessValidator().ValidateWorkshopStatusTransition(workshop.Status, status); len(errs) > 0 {
		return nil, errs
	}

	previous := workshop.Status
	if err := s.repo.Workshop().UpdateStatus(ctx, nil, workshopID, status); err != nil {
		return nil, fmt.Errorf("failed to update workshop status: %w", err)
	}
	workshop.Status = status

	s.publishEvent(ctx, events.EventWorkshopModerated, events.StatusChangeEvent{
		EntityID:   workshopID,
		ActorID:    actorID,
		FromStatus: string(previous),
		ToStatus:   string(status),
	})
	s.logger.Info("workshop status updated",
		"workshop_id", workshopID, "from", previous, "to", status, "actor_id", actorID)

	return workshop, nil
}

func (s *moderationService) DeleteWorkshop(ctx context.Context, actorID, workshopID uint) error {
	if _, err := s.repo.Workshop().GetByID(ctx, nil, workshopID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrWorkshopNotFound
		}
		return fmt.Errorf("failed to get workshop: %w", err)
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Registration().DeleteByWorkshop(ctx, nil, workshopID); err != nil {
			return err
		}
		return txRepo.Workshop().Delete(ctx, nil, workshopID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}

	s.publishEvent(ctx, events.EventWorkshopDeleted, events.StatusChangeEvent{
		EntityID: workshopID,
		ActorID:  actorID,
	})
	s.logger.Info("workshop deleted", "workshop_id", workshopID, "actor_id", actorID)

	return nil
}

func (s *moderationService) ListRegistrations(ctx context.Context, actorID uint, params AdminListParams) (*RegistrationListResponse, error) {
	registrations, total, err := s.repo.Registration().List(ctx, nil, repositories.RegistrationFilters{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return &RegistrationListResponse{Registrations: registrations, Total: total}, nil
}

// UpdateRegistrationStatus moves a pending registration to a terminal state.
// Approving or confirming claims a seat with the same conditional update used
// by automated sign-up, so an approval of the last seat cannot overshoot
// capacity and a repeated approval cannot count the same seat twice.
func (s *moderationService) UpdateRegistrationStatus(ctx context.Context, actorID, registrationID uint, status models.RegistrationStatus) (*models.Registration, error) {
	var registration *models.Registration

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		var err error
		registration, err = txRepo.Registration().GetByID(ctx, nil, registrationID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrRegistrationNotFound
			}
			return fmt.Errorf("failed to get registration: %w", err)
		}

		if errs := s.validator.GetBusinessValidator().ValidateRegistrationStatusTransition(registration.Status, status); len(errs) > 0 {
			return errs
		}

		if status == models.RegistrationApproved || status == models.RegistrationConfirmed {
			claimed, err := txRepo.Workshop().ClaimSeat(ctx, nil, registration.WorkshopID)
			if err != nil {
				return fmt.Errorf("failed to claim seat: %w", err)
			}
			if !claimed {
				return ErrWorkshopFull
			}
		}

		if err := txRepo.Registration().UpdateStatus(ctx, nil, registrationID, status); err != nil {
			return fmt.Errorf("failed to update registration status: %w", err)
		}
		registration.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.EventRegistrationDecided, events.RegistrationEvent{
		RegistrationID: registrationID,
		UserID:         registration.UserID,
		WorkshopID:     registration.WorkshopID,
		Status:         string(status),
	})
	s.logger.Info("registration status updated",
		"registration_id", registrationID, "to", status, "actor_id", actorID)

	return registration, nil
}

// cascadeEnterprise removes an enterprise together with its workshops and
// every registration to those workshops. Must run inside a transaction.
func (s *moderationService) cascadeEnterprise(ctx context.Context, txRepo repositories.Repository, enterpriseID uint) error {
	workshopIDs, err := txRepo.Workshop().GetIDsByEnterprise(ctx, nil, enterpriseID)
	if err != nil {
		return err
	}
	if err := txRepo.Registration().DeleteByWorkshops(ctx, nil, workshopIDs); err != nil {
		return err
	}
	if err := txRepo.Workshop().DeleteByEnterprise(ctx, nil, enterpriseID); err != nil {
		return err
	}
	return txRepo.Enterprise().Delete(ctx, nil, enterpriseID)
}

func (s *moderationService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if err := s.eventPublisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Warn("failed to publish moderation event", "error", err, "event_type", eventType)
	}
}
