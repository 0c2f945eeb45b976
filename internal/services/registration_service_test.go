package services

import (
	"context"
	"errors"
	"testing"

	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/validator"
)

func newRegistrationTestService(deps *testDeps) RegistrationService {
	return NewRegistrationService(deps.repo, nil, deps.logger, deps.validator, deps.publisher)
}

func TestRegistrationService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("workshop not found", func(t *testing.T) {
		deps := newTestDeps()
		service := newRegistrationTestService(deps)

		_, err := service.Register(ctx, 1, 999, &validator.WorkshopRegistrationRequest{})
		if !errors.Is(err, ErrWorkshopNotFound) {
			t.Fatalf("expected ErrWorkshopNotFound, got %v", err)
		}
	})

	t.Run("workshop not approved", func(t *testing.T) {
		deps := newTestDeps()
		service := newRegistrationTestService(deps)

		owner := seedUser(deps.repo, "Owner", "owner@acme.test", models.RoleEnterprise)
		enterprise := seedEnterprise(deps.repo, owner.ID, models.EnterpriseApproved)
		workshop := seedWorkshop(deps.repo, enterprise.ID, models.Workshop{Status: models.WorkshopPending})

		learner := seedUser(deps.repo, "Learner", "learner@test.test", models.RoleUser)

		_, err := service.Register(ctx, learner.ID, workshop.ID, &validator.WorkshopRegistrationRequest{})
		if !errors.Is(err, ErrWorkshopNotApproved) {
			t.Fatalf("expected ErrWorkshopNotApproved, got %v", err)
		}
	})

	t.Run("automated free workshop confirms immediately", func(t *testing.T) {
		deps := newTestDeps()
		service := newRegistrationTestService(deps)

		owner := seedUser(deps.repo, "Owner", "owner@acme.test", models.RoleEnterprise)
		enterprise := seedEnterprise(deps.repo, owner.ID, models.EnterpriseApproved)
		workshop := seedWorkshop(deps.repo, enterprise.ID, models.Workshop{Status: models.WorkshopApproved})
		learner := seedUser(deps.repo, "Learner", "learner@test.test", models.RoleUser)

		registration, err := service.Register(ctx, learner.ID, workshop.ID, &validator.WorkshopRegistrationRequest{})
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if registration.Status != models.RegistrationConfirmed {
			t.Errorf("expected confirmed, got %s", registration.Status)
		}

		stored, _ := deps.repo.Workshop().GetByID(ctx, nil, workshop.ID)
		if stored.RegisteredSeats != 1 {
			t.Errorf("expected 1 registered seat, got %d", stored.RegisteredSeats)
		}
	})

	t.Run("automated paid workshop requires payment proof", func(t *testing.T) {
		deps := newTestDeps()
		service := newRegistrationTestService(deps)

		owner := seedUser(deps.repo, "Owner", "owner@acme.test", models.RoleEnterprise)
		enterprise := seedEnterprise(deps.repo, owner.ID, models.EnterpriseApproved)
		workshop := seedWorkshop(deps.repo, enterprise.ID, models.Workshop{
			Status: models.WorkshopApproved,
			Price:  49.90,
		})
		learner := seedUser(deps.repo, "Learner", "learner@test.test", models.RoleUser)

		_, err := service.Register(ctx, learner.ID, workshop.ID, &validator.WorkshopRegistrationRequest{})

		var validationErrors ValidationErrors
		if !errors.As(err, &validationErrors) {
			t.Fatalf("expected validation errors, got %v", err)
		}

		// No seat may be claimed on a failed attempt
		stored, _ := deps.repo.Workshop().GetByID(ctx, nil, workshop.ID)
		if stored.RegisteredSeats != 0 {
			t.Errorf("expected 0 registered seats, got %d", stored.RegisteredSeats)
		}
	})

	t.Run("automated paid workshop confirms with payment proof", func(t *testing.T) {
		deps := newTestDeps()
		service := newRegistrationTestService(deps)

		owner := seedUser(deps.repo, "Owner", "owner@acme.test", models.RoleEnterprise)
		enterprise := seedEnterprise(deps.repo, owner.ID, models.EnterpriseApproved)
		workshop := seedWorkshop(deps.repo, enterprise.ID, models.Workshop{
			Status: models.WorkshopApproved,
			Price:  49.90,
		})
		learner := seedUser(deps.repo, "Learner", "learner@test.test", models.RoleUser)

		registration, err := service.Register(ctx, learner.ID, workshop.ID, &validator.WorkshopRegistrationRequest{
			PaymentScreenshot: strPtr("https://cdn.test/receipt.png"),
		})
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if registration.Status != models.RegistrationConfirmed {
			t.Errorf("expected confirmed, got %s", registration.Status)
		}
	})

	t.Run("manual workshop requires a reason", func(t *testing.T) {
		deps := newTestDeps()
		service := newRegistrationTestService(deps)

		owner := seedUser(deps.repo, "Owner", "owner@acme.test", models.RoleEnterprise)
		enterprise := seedEnterprise(deps.repo, owner.ID, models.EnterpriseApproved)
		workshop := seedWorkshop(deps.repo, enterprise.ID, models.Workshop{
			Status:           models.WorkshopApproved,
			RegistrationMode: models.RegistrationManual,
		})
		learner := seedUser(deps.repo, "Learner", "learner@test.test", models.RoleUser)

		_, err := service.Register(ctx, learner.ID, workshop.ID, &validator.WorkshopRegistrationRequest{})

		var validationErrors ValidationErrors
		if !errors.As(err, &validationErrors) {
			t.Fatalf("expected validation errors, got %v", err)
		}
	})

	t.Run("manual workshop stays pending and claims no seat", func(t *testing.T) {
		deps := newTestDeps()
		service := newRegistrationTestService(deps)

		owner := seedUser(deps.repo, "Owner", "owner@acme.test", models.RoleEnterprise)
		enterprise := seedEnterprise(deps.repo, owner.ID, models.EnterpriseApproved)
		workshop := seedWorkshop(deps.repo, enterprise.ID, models.Workshop{
			Status:           models.WorkshopApproved,
			RegistrationMode: models.RegistrationManual,
		})
		learner := seedUser(deps.repo, "Learner", "learner@test.test", models.RoleUser)

		registration, err := service.Register(ctx, learner.ID, workshop.ID, &validator.WorkshopRegistrationRequest{
			Reason: strPtr("I run a study group on this topic"),
		})
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if registration.Status != models.RegistrationPending {
			t.Errorf("expected pending, got %s", registration.Status)
		}

		stored, _ := deps.repo.Workshop().GetByID(ctx, nil, workshop.ID)
		if stored.RegisteredSeats != 0 {
			t.Errorf("manual sign-up must not claim a seat, got %d", stored.RegisteredSeats)
		}
	})

	t.Run("duplicate registration rejected", func(t *testing.T) {
		deps := newTestDeps()
		service := newRegistrationTestService(deps)

		owner := seedUser(deps.repo, "Owner", "owner@acme.test", models.RoleEnterprise)
		enterprise := seedEnterprise(deps.repo, owner.ID, models.EnterpriseApproved)
		workshop := seedWorkshop(deps.repo, enterprise.ID, models.Workshop{Status: models.WorkshopApproved})
		learner := seedUser(deps.repo, "Learner", "learner@test.test", models.RoleUser)

		if _, err := service.Register(ctx, learner.ID, workshop.ID, &validator.WorkshopRegistrationRequest{}); err != nil {
			t.Fatalf("first register failed: %v", err)
		}

		_, err := service.Register(ctx, learner.ID, workshop.ID, &validator.WorkshopRegistrationRequest{})
		if !errors.Is(err, ErrAlreadyRegistered) {
			t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}
	})

	t.Run("full workshop rejected", func(t *testing.T) {
		deps := newTestDeps()
		service := newRegistrationTestService(deps)

		owner := seedUser(deps.repo, "Owner", "owner@acme.test", models.RoleEnterprise)
		enterprise := seedEnterprise(deps.repo, owner.ID, models.EnterpriseApproved)
		workshop := seedWorkshop(deps.repo, enterprise.ID, models.Workshop{
			Status: models.WorkshopApproved,
			Seats:  1,
		})

		first := seedUser(deps.repo, "First", "first@test.test", models.RoleUser)
		second := seedUser(deps.repo, "Second", "second@test.test", models.RoleUser)

		if _, err := service.Register(ctx, first.ID, workshop.ID, &validator.WorkshopRegistrationRequest{}); err != nil {
			t.Fatalf("first register failed: %v", err)
		}

		_, err := service.Register(ctx, second.ID, workshop.ID, &validator.WorkshopRegistrationRequest{})
		if !errors.Is(err, ErrWorkshopFull) {
			t.Fatalf("expected ErrWorkshopFull, got %v", err)
		}
	})

	t.Run("publishes registration event", func(t *testing.T) {
		deps := newTestDeps()
		service := newRegistrationTestService(deps)

		owner := seedUser(deps.repo, "Owner", "owner@acme.test", models.RoleEnterprise)
		enterprise := seedEnterprise(deps.repo, owner.ID, models.EnterpriseApproved)
		workshop := seedWorkshop(deps.repo, enterprise.ID, models.Workshop{Status: models.WorkshopApproved})
		learner := seedUser(deps.repo, "Learner", "learner@test.test", models.RoleUser)

		if _, err := service.Register(ctx, learner.ID, workshop.ID, &validator.WorkshopRegistrationRequest{}); err != nil {
			t.Fatalf("register failed: %v", err)
		}

		published := deps.publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		if published[0].Type != "registration.created" {
			t.Errorf("expected registration.created, got %s", published[0].Type)
		}
	})
}

func TestRegistrationService_GetMine(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps()
	service := newRegistrationTestService(deps)

	owner := seedUser(deps.repo, "Owner", "owner@acme.test", models.RoleEnterprise)
	enterprise := seedEnterprise(deps.repo, owner.ID, models.EnterpriseApproved)
	workshop := seedWorkshop(deps.repo, enterprise.ID, models.Workshop{Status: models.WorkshopApproved})
	learner := seedUser(deps.repo, "Learner", "learner@test.test", models.RoleUser)
	other := seedUser(deps.repo, "Other", "other@test.test", models.RoleUser)

	if _, err := service.Register(ctx, learner.ID, workshop.ID, &validator.WorkshopRegistrationRequest{}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := service.Register(ctx, other.ID, workshop.ID, &validator.WorkshopRegistrationRequest{}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	mine, err := service.GetMine(ctx, learner.ID)
	if err != nil {
		t.Fatalf("GetMine failed: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 registration, got %d", len(mine))
	}
	if mine[0].Workshop == nil || mine[0].Workshop.ID != workshop.ID {
		t.Error("expected workshop details attached to the registration")
	}
}
