package service

import "errors"

// Custom errors for clear communication to the API layer.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationClosed     = errors.New("invitation already accepted or rejected")
	ErrRequestNotFound      = errors.New("request not found")
	ErrRequestClosed        = errors.New("request already approved or rejected")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrScoutNotFound        = errors.New("scout profile not found")
	ErrKitNotFound          = errors.New("kit not found")
)
