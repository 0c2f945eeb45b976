package models

// ===== JOINED VIEWS =====

// RegistrationWithWorkshop is a registration joined with a snapshot of its workshop,
// returned from "my registrations" listings.
type RegistrationWithWorkshop struct {
	Registration *Registration `json:"registration"`
	Workshop     *Workshop     `json:"workshop"`
}

// RegistrationWithUser is a registration joined with the submitting user's public
// fields, returned to the workshop's owning enterprise.
type RegistrationWithUser struct {
	Registration *Registration `json:"registration"`
	User         PublicUser    `json:"user"`
}
