package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/validator"
)

func newProfileTestService(deps *testDeps) ProfileService {
	return NewProfileService(deps.repo, nil, deps.logger, deps.validator)
}

func TestProfileService_Get(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps()
	service := newProfileTestService(deps)

	learner := seedUser(deps.repo, "Learner", "learner@test.test", models.RoleUser)

	// First access creates an empty profile
	profile, err := service.Get(ctx, learner.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if profile.UserID != learner.ID {
		t.Errorf("expected profile for user %d, got %d", learner.ID, profile.UserID)
	}

	// Second access returns the same record
	again, err := service.Get(ctx, learner.ID)
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if again.ID != profile.ID {
		t.Errorf("expected the same profile, got %d and %d", profile.ID, again.ID)
	}
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps()
	service := newProfileTestService(deps)

	learner := seedUser(deps.repo, "Learner", "learner@test.test", models.RoleUser)

	updated, err := service.Update(ctx, learner.ID, &validator.ProfileUpdateRequest{
		Phone:      strPtr("+84 90 123 4567"),
		Location:   strPtr("Da Nang"),
		Bio:        strPtr("Backend engineer moving into platform work."),
		Skills:     []string{"go", "postgres", "kafka"},
		Experience: strPtr("5 years"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Location == nil || *updated.Location != "Da Nang" {
		t.Errorf("location not persisted: %v", updated.Location)
	}

	var skills []string
	if err := json.Unmarshal(updated.Skills, &skills); err != nil {
		t.Fatalf("skills not stored as JSON: %v", err)
	}
	if len(skills) != 3 || skills[0] != "go" {
		t.Errorf("unexpected skills %v", skills)
	}
}
