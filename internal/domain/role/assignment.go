// Package role stores which subjects hold an elevated role.
package role

import (
	"context"
	"errors"
	"time"

	"shelfwatch/internal/shared/authorization"
)

var ErrAlreadyAssigned = errors.New("role already assigned")

// Assignment is one (subject, role) row; the pair is unique.
type Assignment struct {
	ID        string
	SubjectID string
	Role      authorization.UserRole
	GrantedBy string
	CreatedAt time.Time
}

type Repository interface {
	// HasRole is an existence query; absence is (false, nil).
	HasRole(ctx context.Context, subjectID string, role authorization.UserRole) (bool, error)
	// Grant returns ErrAlreadyAssigned when the pair exists.
	Grant(ctx context.Context, a *Assignment) error
	// Revoke reports whether a row was removed.
	Revoke(ctx context.Context, subjectID string, role authorization.UserRole) (bool, error)
	ListBySubject(ctx context.Context, subjectID string) ([]*Assignment, error)
}
