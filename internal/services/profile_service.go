package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/repositories"
	"github.com/workshopwise/marketplace-service/internal/validator"
)

type profileService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProfileService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) ProfileService {
	return &profileService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

// Get returns the caller's profile, creating an empty one on first access so
// the client never has to distinguish "no profile yet" from "empty profile".
func (s *profileService) Get(ctx context.Context, userID uint) (*models.UserProfile, error) {
	profile, err := s.repo.Profile().GetByUserID(ctx, nil, userID)
	if err == nil {
		return profile, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile = &models.UserProfile{UserID: userID}
	if err := s.repo.Profile().Create(ctx, nil, profile); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return s.repo.Profile().GetByUserID(ctx, nil, userID)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

func (s *profileService) Update(ctx context.Context, userID uint, req *validator.ProfileUpdateRequest) (*models.UserProfile, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Phone = req.Phone
	profile.Location = req.Location
	profile.Bio = req.Bio
	profile.Company = req.Company
	profile.Experience = req.Experience

	if req.Skills != nil {
		skills, err := json.Marshal(req.Skills)
		if err != nil {
			return nil, fmt.Errorf("failed to encode skills: %w", err)
		}
		profile.Skills = datatypes.JSON(skills)
	}

	if err := s.repo.Profile().Update(ctx, nil, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated", "user_id", userID)
	return profile, nil
}
