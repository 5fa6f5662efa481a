package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/dressshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AdminCapability proves that its holder was authorized as an administrator.
// It can only be minted by an Authorizer in this package; the zero value grants nothing.
type AdminCapability struct {
	actorID uuid.UUID
}

// ActorID returns the administrator the capability was granted to
func (c AdminCapability) ActorID() uuid.UUID {
	return c.actorID
}

// Valid reports whether the capability was actually granted
func (c AdminCapability) Valid() bool {
	return c.actorID != uuid.Nil
}

// Authorizer grants privileged capabilities to authenticated users
type Authorizer interface {
	AuthorizeAdmin(ctx context.Context, userID uuid.UUID) (AdminCapability, error)
}

// RoleAuthorizer grants the admin capability to users whose stored role is ADMIN
type RoleAuthorizer struct {
	users UserRepository
}

// NewRoleAuthorizer creates a RoleAuthorizer backed by the user store
func NewRoleAuthorizer(users UserRepository) *RoleAuthorizer {
	return &RoleAuthorizer{users: users}
}

// AuthorizeAdmin looks the user up and grants the capability if the role allows it.
func (a *RoleAuthorizer) AuthorizeAdmin(ctx context.Context, userID uuid.UUID) (AdminCapability, error) {
	if userID == uuid.Nil {
		return AdminCapability{}, shared.ErrForbidden
	}
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return AdminCapability{}, shared.ErrForbidden
		}
		return AdminCapability{}, fmt.Errorf("load user %s: %w", userID, err)
	}
	if !user.IsAdmin() {
		return AdminCapability{}, shared.ErrForbidden
	}
	return AdminCapability{actorID: user.ID}, nil
}
