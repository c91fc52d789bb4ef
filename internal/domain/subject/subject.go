// Package subject defines the authenticated identity seen by the gateway.
package subject

import "context"

// Subject is created by the external identity provider at signup and is
// read-only here. ID is opaque.
type Subject struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name"`
}

// DisplayName prefers the business name and falls back to the email.
func (s *Subject) DisplayName() string {
	if s.BusinessName != "" {
		return s.BusinessName
	}
	return s.Email
}

// Repository reads subjects from the identity store.
type Repository interface {
	// GetByID returns nil, nil when the subject does not exist.
	GetByID(ctx context.Context, id string) (*Subject, error)
	// List returns every subject, i.e. every tenant.
	List(ctx context.Context) ([]*Subject, error)
}
