package auth

import "errors"

var (
	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserNameOrEmailExists is returned when creating a user whose username
	// or email address is already taken.
	ErrUserNameOrEmailExists = errors.New("username or email already exists")

	// ErrInvalidOldPassword is returned when the old password does not match
	// during a password change.
	ErrInvalidOldPassword = errors.New("invalid old password")

	// ErrRoleNotFound is returned when a role cannot be found in the database.
	ErrRoleNotFound = errors.New("role not found")

	// ErrPermissionNotFound is returned when one of the referenced permissions does not exist.
	ErrPermissionNotFound = errors.New("permission not found")

	// ErrMissingCapability is returned when the acting user lacks the implicit
	// capability an operation is gated on.
	ErrMissingCapability = errors.New("acting user lacks required capability")
)
