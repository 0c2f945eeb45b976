package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/workshopwise/marketplace-service/internal/models"
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateWorkshopCreate validates workshop creation business rules
func (bv *BusinessValidator) ValidateWorkshopCreate(req *WorkshopCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, bv.validateWorkshopBusinessRules(req)...)

	return errors
}

// ValidateRegistrationCreate validates workshop sign-up inputs against the
// workshop's configuration. Reason is mandatory when approval is manual;
// payment proof is mandatory on the automated paid path.
func (bv *BusinessValidator) ValidateRegistrationCreate(req *WorkshopRegistrationRequest, workshop *models.Workshop) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if workshop.RegistrationMode == models.RegistrationManual {
		if req.Reason == nil || strings.TrimSpace(*req.Reason) == "" {
			errors = append(errors, ValidationError{
				Field:   "reason",
				Message: "is required for manually approved workshops",
				Rule:    "business_logic",
			})
		}
	}

	if workshop.RegistrationMode == models.RegistrationAutomated && !workshop.IsFree {
		if req.PaymentScreenshot == nil || strings.TrimSpace(*req.PaymentScreenshot) == "" {
			errors = append(errors, ValidationError{
				Field:   "payment_screenshot",
				Message: "payment proof is required for paid workshops",
				Rule:    "business_logic",
			})
		}
	}

	return errors
}

// ValidateEnterpriseStatusTransition validates enterprise moderation decisions
func (bv *BusinessValidator) ValidateEnterpriseStatusTransition(current, next models.EnterpriseStatus) ValidationErrors {
	allowed := map[models.EnterpriseStatus][]models.EnterpriseStatus{
		models.EnterprisePending:  {models.EnterpriseApproved, models.EnterpriseRejected},
		models.EnterpriseApproved: {models.EnterpriseRejected},
		models.EnterpriseRejected: {models.EnterpriseApproved},
	}
	return transitionErrors("status", string(current), string(next), statusSet(allowed[current]))
}

// ValidateWorkshopStatusTransition validates workshop moderation decisions
func (bv *BusinessValidator) ValidateWorkshopStatusTransition(current, next models.WorkshopStatus) ValidationErrors {
	allowed := map[models.WorkshopStatus][]models.WorkshopStatus{
		models.WorkshopPending:  {models.WorkshopApproved, models.WorkshopRejected},
		models.WorkshopApproved: {models.WorkshopRejected},
		models.WorkshopRejected: {models.WorkshopApproved},
	}
	return transitionErrors("status", string(current), string(next), statusSet(allowed[current]))
}

// ValidateRegistrationStatusTransition validates registration moderation
// decisions. Approved, rejected and confirmed are terminal.
func (bv *BusinessValidator) ValidateRegistrationStatusTransition(current, next models.RegistrationStatus) ValidationErrors {
	allowed := map[models.RegistrationStatus][]models.RegistrationStatus{
		models.RegistrationPending: {models.RegistrationApproved, models.RegistrationRejected, models.RegistrationConfirmed},
	}
	return transitionErrors("status", string(current), string(next), statusSet(allowed[current]))
}

func statusSet[T ~string](statuses []T) map[string]bool {
	set := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		set[string(s)] = true
	}
	return set
}

func transitionErrors(field, current, next string, allowed map[string]bool) ValidationErrors {
	if allowed[next] {
		return nil
	}
	return ValidationErrors{{
		Field:   field,
		Message: fmt.Sprintf("cannot transition from %s to %s", current, next),
		Value:   next,
		Rule:    "status_transition",
	}}
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Title validation (3-200 characters)
	bv.validate.RegisterValidation("workshop_title", func(fl validator.FieldLevel) bool {
		title := strings.TrimSpace(fl.Field().String())
		return len(title) >= 3 && len(title) <= 200
	})

	// Seat capacity validation (1-1000)
	bv.validate.RegisterValidation("seat_count", func(fl validator.FieldLevel) bool {
		seats := fl.Field().Int()
		return seats >= 1 && seats <= 1000
	})

	// Price validation (0-100000, zero means free)
	bv.validate.RegisterValidation("price_range", func(fl validator.FieldLevel) bool {
		price := fl.Field().Float()
		return price >= 0 && price <= 100000
	})

	// Workshop date validation (must be in future)
	bv.validate.RegisterValidation("future_date", func(fl validator.FieldLevel) bool {
		field := fl.Field()

		if field.Kind() == reflect.Ptr && field.IsNil() {
			return true // Optional field
		}

		var date time.Time
		if field.Kind() == reflect.Ptr {
			date = field.Elem().Interface().(time.Time)
		} else {
			date = field.Interface().(time.Time)
		}

		return date.After(time.Now())
	})

	// delivery mode validation
	bv.validate.RegisterValidation("workshop_mode", func(fl validator.FieldLevel) bool {
		mode := models.WorkshopMode(fl.Field().String())
		switch mode {
		case models.ModeOnline, models.ModeOffline, models.ModeHybrid:
			return true
		}
		return false
	})

	// registration mode validation
	bv.validate.RegisterValidation("registration_mode", func(fl validator.FieldLevel) bool {
		mode := models.RegistrationMode(fl.Field().String())
		return mode == models.RegistrationAutomated || mode == models.RegistrationManual
	})

	bv.validate.RegisterValidation("workshop_status", func(fl validator.FieldLevel) bool {
		status := models.WorkshopStatus(fl.Field().String())
		switch status {
		case models.WorkshopPending, models.WorkshopApproved, models.WorkshopRejected:
			return true
		}
		return false
	})

	bv.validate.RegisterValidation("enterprise_status", func(fl validator.FieldLevel) bool {
		status := models.EnterpriseStatus(fl.Field().String())
		switch status {
		case models.EnterprisePending, models.EnterpriseApproved, models.EnterpriseRejected:
			return true
		}
		return false
	})

	bv.validate.RegisterValidation("registration_status", func(fl validator.FieldLevel) bool {
		status := models.RegistrationStatus(fl.Field().String())
		switch status {
		case models.RegistrationPending, models.RegistrationApproved,
			models.RegistrationRejected, models.RegistrationConfirmed:
			return true
		}
		return false
	})
}

// validateWorkshopBusinessRules validates business rules for workshop creation
func (bv *BusinessValidator) validateWorkshopBusinessRules(req *WorkshopCreateRequest) ValidationErrors {
	var errors ValidationErrors

	// Paid online workshops collect payment proof out of band, price must be
	// explicit rather than inferred from the free flag
	if req.Price < 0 {
		errors = append(errors, ValidationError{
			Field:   "price",
			Message: "cannot be negative",
			Value:   req.Price,
			Rule:    "business_logic",
		})
	}

	if !req.Date.IsZero() && req.Date.Before(time.Now()) {
		errors = append(errors, ValidationError{
			Field:   "date",
			Message: "must be in the future",
			Value:   req.Date,
			Rule:    "business_logic",
		})
	}

	return errors
}
