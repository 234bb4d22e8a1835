package models

import "time"

// UserRole is the application-level role of an account. Callers are trusted
// to enforce roles before invoking mutations; the store does not.
type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRolePlayer  UserRole = "PLAYER"
	UserRoleCaptain UserRole = "CAPTAIN"
	UserRoleScout   UserRole = "SCOUT"
)

// User represents an account. The secret is stored verbatim and compared
// directly on login; plain-text storage is a known weakness.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Secret    string     `json:"secret"`
	Role      UserRole   `json:"role"`
	PlayerID  string     `json:"playerId"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// NotificationType tags a notification with the workflow that produced it.
type NotificationType string

const (
	NotificationInvitation   NotificationType = "INVITATION"
	NotificationMatchResult  NotificationType = "MATCH_RESULT"
	NotificationRegistration NotificationType = "REGISTRATION"
	NotificationKitRequest   NotificationType = "KIT_REQUEST"
	NotificationGeneral      NotificationType = "GENERAL"
)

// Notification is owned by a single user. Its only legal mutation after
// creation is flipping the read flag; the owner may delete it.
type Notification struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	Type         NotificationType `json:"type"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	TeamID       string           `json:"teamId,omitempty"`
	MatchID      string           `json:"matchId,omitempty"`
	InvitationID string           `json:"invitationId,omitempty"`
	Read         bool             `json:"read"`
	CreatedAt    *time.Time       `json:"createdAt,omitempty"`
}
