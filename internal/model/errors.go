package model

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrInvalidInviteCode means no space matches the invite code.
	ErrInvalidInviteCode = errors.New("invalid invite code")
	// ErrAlreadyMember means the user is already in the space.
	ErrAlreadyMember = errors.New("you are already a member of this space")
	// ErrSpaceFull means the space reached MaxSpaceMembers.
	ErrSpaceFull = errors.New("this space already has 3 members")
	// ErrInviteTypeMismatch means the code's slot does not match the current member count.
	ErrInviteTypeMismatch = errors.New("this invite code is no longer valid for this space")
	// ErrNotAMember means the user is not in the space.
	ErrNotAMember = errors.New("you are not a member of this space")
	// ErrReadFailure marks a transient store read error.
	ErrReadFailure = errors.New("temporary read failure, please retry")
	// ErrJoinIncomplete means the space accepted the member but their profile
	// does not list it yet.
	ErrJoinIncomplete = errors.New("you joined the space but your profile was not updated; recover the space to finish")
	// ErrMembershipConflict is returned by stores when a conditional member update misses.
	ErrMembershipConflict = errors.New("membership changed concurrently")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrStorageDisabled    = errors.New("object storage is not configured")

	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)
