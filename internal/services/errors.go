package services

import (
	"errors"
	"fmt"

	"github.com/workshopwise/marketplace-service/internal/validator"
)

// Validation error types shared with the validator package
type (
	ValidationError  = validator.ValidationError
	ValidationErrors = validator.ValidationErrors
)

// Sentinel errors returned by services and mapped to HTTP responses in handlers
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEnterpriseNotFound   = errors.New("enterprise not found")
	ErrWorkshopNotFound     = errors.New("workshop not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrProfileNotFound      = errors.New("profile not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrPasswordMismatch   = errors.New("passwords do not match")

	ErrEnterpriseNotApproved = errors.New("enterprise is not approved")
	ErrWorkshopNotApproved   = errors.New("workshop is not approved")
	ErrAlreadyRegistered     = errors.New("already registered for this workshop")
	ErrWorkshopFull          = errors.New("workshop has no seats available")

	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrAdminSelfDelete         = errors.New("administrators cannot delete their own account")
)

// PermissionError indicates the caller lacks rights for an operation
type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s %d: %s",
		e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}
