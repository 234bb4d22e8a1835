// shared/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ClubConfig holds the configuration for one running instance of the club
// application. Every instance on the device loads the same keys, so two open
// instances always agree on the database path and the redis channel.
type ClubConfig struct {
	ListenAddr            string        // Address for the HTTP facade (e.g., ":8090")
	DBPath                string        // Path of the on-device sqlite database file
	SchemaVersion         int           // Target schema version; 0 means "use the catalog's current version"
	RedisAddr             string        // Redis address for the cross-instance channel (e.g., "127.0.0.1:6379")
	RedisPassword         string        // Redis password, empty for a local unauthenticated instance
	SessionSnapshotTTL    time.Duration // How long the denormalized current-user snapshot stays valid
	PresenceHeartbeat     time.Duration // How often this instance refreshes its presence entry
	PresenceTTL           time.Duration // How long an instance counts as live without a heartbeat
	RankingsRefreshPeriod time.Duration // How often the background job re-derives rankings
}

// LoadClubConfig loads configuration from environment variables, applying
// local-development defaults for anything unset.
func LoadClubConfig() (*ClubConfig, error) {
	cfg := &ClubConfig{
		ListenAddr:    os.Getenv("ELKAWERA_LISTEN_ADDR"),
		DBPath:        os.Getenv("ELKAWERA_DB_PATH"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8090"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "elkawera.db"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "127.0.0.1:6379"
	}

	var err error
	cfg.SchemaVersion, err = getInt("ELKAWERA_SCHEMA_VERSION", 0)
	if err != nil {
		return nil, err
	}
	if cfg.SchemaVersion < 0 {
		return nil, fmt.Errorf("ELKAWERA_SCHEMA_VERSION must be non-negative (got %d)", cfg.SchemaVersion)
	}

	cfg.SessionSnapshotTTL, err = getDuration("SESSION_SNAPSHOT_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.PresenceHeartbeat, err = getDuration("PRESENCE_HEARTBEAT_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.PresenceTTL, err = getDuration("PRESENCE_TTL", 15*time.Second)
	if err != nil {
		return nil, err
	}
	if cfg.PresenceTTL <= cfg.PresenceHeartbeat {
		return nil, fmt.Errorf("PRESENCE_TTL (%v) must be larger than PRESENCE_HEARTBEAT_INTERVAL (%v)", cfg.PresenceTTL, cfg.PresenceHeartbeat)
	}
	cfg.RankingsRefreshPeriod, err = getDuration("RANKINGS_REFRESH_INTERVAL", 1*time.Minute)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Helper function to parse duration from environment variable
func getDuration(envKey string, defaultVal time.Duration) (time.Duration, error) {
	valStr := os.Getenv(envKey)
	if valStr == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format for %s: %w", envKey, err)
	}
	return d, nil
}

// Helper function to parse int from environment variable
func getInt(envKey string, defaultVal int) (int, error) {
	valStr := os.Getenv(envKey)
	if valStr == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid integer format for %s: %w", envKey, err)
	}
	return i, nil
}
