package auth

import (
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

// Authorization rules for mutating user records. Pure decisions, no I/O.
//
// A caller may mutate their own record; admins may mutate anyone. Changing a
// role is reserved for admins even on the caller's own record.

// CanUpdate decides whether identity may update the target user record.
// roleChange must be true when the requested updates include a role change.
func CanUpdate(identity *Identity, targetID int64, roleChange bool) error {
	if identity == nil {
		return apperrors.NewUnauthorized("you must be logged in to update user information")
	}
	if identity.ID != targetID && !identity.IsAdmin() {
		return apperrors.NewForbidden("you can only update your own information")
	}
	if roleChange && !identity.IsAdmin() {
		return apperrors.NewForbidden("only admins can change user roles")
	}
	return nil
}

// CanDelete decides whether identity may delete the target user record.
func CanDelete(identity *Identity, targetID int64) error {
	if identity == nil {
		return apperrors.NewUnauthorized("you must be logged in to delete a user")
	}
	if identity.ID != targetID && !identity.IsAdmin() {
		return apperrors.NewForbidden("you can only delete your own account")
	}
	return nil
}
