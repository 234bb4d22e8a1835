package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/store"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

// NotificationService encapsulates the business logic for notifications.
// Notifications are created by privileged workflows, mutated only to flip the
// read flag, and deleted by their owner.
type NotificationService struct {
	engine *store.Engine
}

// NewNotificationService creates a new NotificationService instance.
func NewNotificationService(engine *store.Engine) *NotificationService {
	return &NotificationService{engine: engine}
}

// Create stores a notification for a user, filling id and timestamp.
func (ns *NotificationService) Create(ctx context.Context, n models.Notification) (*models.Notification, error) {
	if n.UserID == "" || n.Title == "" {
		return nil, fmt.Errorf("%w: notification user id and title are required", ErrInvalidInput)
	}
	now := time.Now()
	n.ID = uuid.NewString()
	n.Read = false
	n.CreatedAt = &now
	if n.Type == "" {
		n.Type = models.NotificationGeneral
	}
	if err := ns.engine.Put(ctx, store.Notifications, &n); err != nil {
		return nil, fmt.Errorf("service failed to create notification: %w", err)
	}
	return &n, nil
}

// MarkRead flips the read flag, the only legal mutation after creation.
func (ns *NotificationService) MarkRead(ctx context.Context, id string) error {
	n, err := store.Get[models.Notification](ctx, ns.engine, store.Notifications, id)
	if err != nil {
		return fmt.Errorf("service failed to get notification: %w", err)
	}
	if n == nil {
		return ErrNotificationNotFound
	}
	if n.Read {
		return nil
	}
	n.Read = true
	if err := ns.engine.Put(ctx, store.Notifications, n); err != nil {
		return fmt.Errorf("service failed to mark notification %s read: %w", id, err)
	}
	return nil
}

// Delete removes a notification. Deleting one that is already gone succeeds.
func (ns *NotificationService) Delete(ctx context.Context, id string) error {
	if err := ns.engine.Delete(ctx, store.Notifications, id); err != nil {
		return fmt.Errorf("service failed to delete notification %s: %w", id, err)
	}
	return nil
}

// ByUser lists a user's notifications via the owner index.
func (ns *NotificationService) ByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := store.GetAllByIndex[models.Notification](ctx, ns.engine, store.Notifications, "userId", userID)
	if err != nil {
		return nil, fmt.Errorf("service failed to list notifications for user %s: %w", userID, err)
	}
	return notifications, nil
}
