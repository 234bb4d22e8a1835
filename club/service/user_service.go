package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/store"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

// UserService encapsulates the business logic for accounts.
type UserService struct {
	engine *store.Engine
}

// NewUserService creates a new UserService instance.
func NewUserService(engine *store.Engine) *UserService {
	return &UserService{engine: engine}
}

// Register creates a new account. Usernames are unique, enforced through the
// username index rather than a constraint, so two instances registering the
// same name concurrently resolve last-writer-wins like every other collection.
func (us *UserService) Register(ctx context.Context, username, secret string, role models.UserRole) (*models.User, error) {
	if username == "" || secret == "" {
		return nil, fmt.Errorf("%w: username and secret are required", ErrInvalidInput)
	}

	existing, err := store.GetAllByIndex[models.User](ctx, us.engine, store.Users, "username", username)
	if err != nil {
		return nil, fmt.Errorf("service failed to check username availability: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrUsernameTaken
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Secret:    secret,
		Role:      role,
		CreatedAt: &now,
	}
	if err := us.engine.Put(ctx, store.Users, user); err != nil {
		return nil, fmt.Errorf("service failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate checks the secret verbatim against the stored one. The secret
// is stored and compared in plain text, a known weakness.
func (us *UserService) Authenticate(ctx context.Context, username, secret string) (*models.User, error) {
	matches, err := store.GetAllByIndex[models.User](ctx, us.engine, store.Users, "username", username)
	if err != nil {
		return nil, fmt.Errorf("service failed to look up user: %w", err)
	}
	if len(matches) == 0 || matches[0].Secret != secret {
		return nil, ErrInvalidCredentials
	}
	user := matches[0]
	return &user, nil
}

// GetUser retrieves an account by id.
func (us *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := store.Get[models.User](ctx, us.engine, store.Users, id)
	if err != nil {
		return nil, fmt.Errorf("service failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// LinkPlayer points an account at its player card.
func (us *UserService) LinkPlayer(ctx context.Context, userID, playerID string) error {
	user, err := us.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	user.PlayerID = playerID
	if err := us.engine.Put(ctx, store.Users, user); err != nil {
		return fmt.Errorf("service failed to link player to user %s: %w", userID, err)
	}
	return nil
}
