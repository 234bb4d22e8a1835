package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/api"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/bus"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/presence"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/service"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/session"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/store"
	sharedapi "github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/api"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/config"
	sharedredis "github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/redis"
)

func main() {
	cfg, err := config.LoadClubConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	instanceID := uuid.NewString()
	log.Printf("INFO: Starting club instance %s", instanceID)

	// Redis carries the cross-instance change channel, the session snapshot
	// and instance presence. Without it the instance still runs, scoped to
	// local-only change propagation.
	var changeBus bus.Bus
	var redisBus *bus.RedisBus
	var snapshot *session.Snapshot
	var heartbeat *presence.Heartbeat

	rdb, err := sharedredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Printf("WARN: Redis unavailable at %s, running without cross-instance propagation: %v", cfg.RedisAddr, err)
		changeBus = bus.NewLocalBus()
	} else {
		redisBus = bus.NewRedisBus(rdb, instanceID)
		changeBus = redisBus
		snapshot = session.NewSnapshot(rdb, cfg.SessionSnapshotTTL)
		heartbeat = presence.NewHeartbeat(rdb, instanceID, cfg.PresenceHeartbeat, cfg.PresenceTTL)
		heartbeat.Start()
	}

	targetVersion := cfg.SchemaVersion
	if targetVersion == 0 {
		targetVersion = store.TargetVersion
	}

	openCtx, openCancel := context.WithTimeout(context.Background(), 30*time.Second)
	engine, err := store.Open(openCtx, cfg.DBPath, targetVersion, changeBus)
	openCancel()
	if err != nil {
		if errors.Is(err, store.ErrStoreUnavailable) && rdb != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			instances, liveErr := presence.LiveInstances(ctx, rdb, cfg.PresenceTTL)
			cancel()
			if liveErr == nil {
				for _, inst := range instances {
					log.Printf("ERROR: Live instance holding the store: id=%s pid=%d", inst.ID, inst.PID)
				}
			}
			log.Fatalf("FATAL: Store at %s is held by another instance, close it and retry: %v", cfg.DBPath, err)
		}
		log.Fatalf("FATAL: Failed to open store at %s: %v", cfg.DBPath, err)
	}
	log.Printf("INFO: Store open at %s (schema version %d)", cfg.DBPath, targetVersion)

	notificationService := service.NewNotificationService(engine)
	userService := service.NewUserService(engine)
	playerService := service.NewPlayerService(engine)
	teamService := service.NewTeamService(engine, notificationService)
	invitationService := service.NewInvitationService(engine, notificationService)
	registrationService := service.NewRegistrationService(engine, playerService, notificationService)
	scoutService := service.NewScoutService(engine)
	kitService := service.NewKitService(engine, notificationService)

	refresher := service.NewRankingsRefresher(engine, teamService, changeBus, cfg.RankingsRefreshPeriod)
	refresher.Start()

	if snapshot != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if user, err := snapshot.Reconcile(ctx, engine); err != nil {
			log.Printf("WARN: Session reconcile failed: %v", err)
		} else if user != nil {
			log.Printf("INFO: Restored session for user %s", user.Username)
		}
		cancel()
	}

	handlers := &api.ClubAPIHandlers{
		Users:         userService,
		Players:       playerService,
		Teams:         teamService,
		Invitations:   invitationService,
		Registrations: registrationService,
		Notifications: notificationService,
		Scouts:        scoutService,
		Kits:          kitService,
		Session:       snapshot,
	}

	server := sharedapi.NewBaseServer(cfg.ListenAddr, log.Default())
	handlers.RegisterRoutes(server.Router)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: HTTP server exited: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("INFO: Received signal %v, shutting down...", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: HTTP server shutdown failed: %v", err)
	}
	refresher.Stop()
	if heartbeat != nil {
		heartbeat.Stop()
	}
	if redisBus != nil {
		redisBus.Close()
	}
	if err := engine.Close(); err != nil {
		log.Printf("ERROR: Closing store failed: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Printf("ERROR: Closing redis client failed: %v", err)
		}
	}
	log.Println("INFO: Shutdown complete.")
}
