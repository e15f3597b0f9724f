package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

type Repository interface {
	// Upsert creates the profile on first write and merges the patch into the
	// existing row on subsequent writes, atomically.
	Upsert(ctx context.Context, userID uuid.UUID, p Patch) (Profile, error)

	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	GetWithOwner(ctx context.Context, userID uuid.UUID) (WithOwner, error)
	ListWithOwners(ctx context.Context) ([]WithOwner, error)

	SetExperience(ctx context.Context, userID uuid.UUID, entries []Experience) error
	SetEducation(ctx context.Context, userID uuid.UUID, entries []Education) error

	// DeleteWithUser removes the profile and its owning user record together.
	DeleteWithUser(ctx context.Context, userID uuid.UUID) error
}
