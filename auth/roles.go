// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/contest-hub/models"
	"github.com/danielhkuo/contest-hub/store"
)

// RoleResolver reads a principal's current role from the users collection.
type RoleResolver struct {
	users store.Collection
}

func NewRoleResolver(users store.Collection) *RoleResolver {
	return &RoleResolver{users: users}
}

// ResolveRole returns the stored role for email. found is false when no user
// has that email; that is not an error.
func (r *RoleResolver) ResolveRole(ctx context.Context, email string) (role string, found bool, err error) {
	if email == "" {
		return "", false, nil
	}

	user, err := r.users.FindOne(ctx, store.ByField(models.FieldEmail, email))
	if errors.Is(err, store.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve role: %w", err)
	}

	return user.String(models.FieldRole), true, nil
}
