package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/workshopwise/marketplace-service/internal/events"
	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/repositories"
	"github.com/workshopwise/marketplace-service/internal/security"
	"github.com/workshopwise/marketplace-service/internal/validator"
)

type authService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	tokenManager   security.TokenManager
	eventPublisher events.EventPublisher
}

func NewAuthService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, tm security.TokenManager, publisher events.EventPublisher) AuthService {
	return &authService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		tokenManager:   tm,
		eventPublisher: publisher,
	}
}

func (s *authService) RegisterUser(ctx context.Context, req *validator.RegisterUserRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}

	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.tokenManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.publishAccountEvent(ctx, events.EventUserRegistered, user)
	s.logger.Info("user registered", "user_id", user.ID)

	return &AuthResponse{User: user.Public(), Session: session}, nil
}

func (s *authService) RegisterEnterprise(ctx context.Context, req *validator.RegisterEnterpriseRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.ContactPerson,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleEnterprise,
	}
	enterprise := &models.Enterprise{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Domain:        req.Domain,
		Location:      req.Location,
		Website:       req.Website,
		Status:        models.EnterprisePending,
	}

	// The account and its enterprise record are created together or not at all
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, nil, user); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		enterprise.UserID = user.ID
		if err := txRepo.Enterprise().Create(ctx, nil, enterprise); err != nil {
			return fmt.Errorf("failed to create enterprise: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	session, err := s.tokenManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.publishAccountEvent(ctx, events.EventEnterpriseRegistered, user)
	s.logger.Info("enterprise registered", "user_id", user.ID, "enterprise_id", enterprise.ID)

	return &AuthResponse{User: user.Public(), Enterprise: enterprise, Session: session}, nil
}

func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Unknown email and wrong password return the same error so the endpoint
	// cannot be used to enumerate accounts
	user, err := s.repo.User().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session, err := s.tokenManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	response := &AuthResponse{User: user.Public(), Session: session}

	if user.Role == models.RoleEnterprise {
		enterprise, err := s.repo.Enterprise().GetByUserID(ctx, nil, user.ID)
		if err == nil {
			response.Enterprise = enterprise
		} else if !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to load enterprise: %w", err)
		}
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return response, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	exists, err := s.repo.User().ExistsByEmail(ctx, nil, email)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}

	if err := s.repo.User().Create(ctx, nil, admin); err != nil {
		// A concurrent startup may have provisioned the account already
		if repositories.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	s.logger.Info("admin account provisioned", "user_id", admin.ID)
	return nil
}

func (s *authService) publishAccountEvent(ctx context.Context, eventType string, user *models.User) {
	event := events.NewEvent(eventType, events.AccountEvent{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish account event", "error", err, "event_type", eventType)
	}
}
