package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/bus"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/store"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

// testEnv wires every service against a throwaway on-disk store, the same way
// main wires them against the real one.
type testEnv struct {
	bus           *bus.LocalBus
	engine        *store.Engine
	users         *UserService
	players       *PlayerService
	teams         *TeamService
	invitations   *InvitationService
	registrations *RegistrationService
	notifications *NotificationService
	scouts        *ScoutService
	kits          *KitService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	local := bus.NewLocalBus()
	engine, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "club.db"), store.TargetVersion, local)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { engine.Close() })

	notifications := NewNotificationService(engine)
	players := NewPlayerService(engine)
	return &testEnv{
		bus:           local,
		engine:        engine,
		users:         NewUserService(engine),
		players:       players,
		teams:         NewTeamService(engine, notifications),
		invitations:   NewInvitationService(engine, notifications),
		registrations: NewRegistrationService(engine, players, notifications),
		notifications: notifications,
		scouts:        NewScoutService(engine),
		kits:          NewKitService(engine, notifications),
	}
}

// seedUser registers an account directly, bypassing validation.
func (env *testEnv) seedUser(t *testing.T, id, username string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{ID: id, Username: username, Secret: "s3cret", Role: role}
	if err := env.engine.Put(context.Background(), store.Users, user); err != nil {
		t.Fatalf("seeding user %s: %v", id, err)
	}
	return user
}

func (env *testEnv) seedTeam(t *testing.T, id, name, captainID string) *models.Team {
	t.Helper()
	team := &models.Team{ID: id, Name: name, CaptainID: captainID}
	if err := env.engine.Put(context.Background(), store.Teams, team); err != nil {
		t.Fatalf("seeding team %s: %v", id, err)
	}
	return team
}

func (env *testEnv) seedPlayer(t *testing.T, id, userID, name string, role models.Role) *models.Player {
	t.Helper()
	player := &models.Player{ID: id, UserID: userID, Name: name, Role: role}
	if err := env.engine.Put(context.Background(), store.Players, player); err != nil {
		t.Fatalf("seeding player %s: %v", id, err)
	}
	return player
}
