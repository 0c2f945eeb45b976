package validator

// Validator bundles struct validation with business rule validation so
// services depend on a single entry point.
type Validator struct {
	business *BusinessValidator
}

// New creates a validator with all business rules registered
func New() *Validator {
	return &Validator{business: NewBusinessValidator()}
}

// GetBusinessValidator returns the underlying business validator
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

// Validate validates a struct and returns ValidationErrors on failure
func (v *Validator) Validate(s interface{}) error {
	if errors := v.business.Validate(s); len(errors) > 0 {
		return errors
	}
	return nil
}
