// Package presence lets every open instance of the application announce
// itself. When the store cannot be opened because another instance holds an
// incompatible handle, the presence registry is what lets us tell the user
// which instances to close.
package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// InstancesKey is the redis hash holding one entry per live instance.
const InstancesKey = "elkawera:instances"

// Instance describes one live application instance on the device.
type Instance struct {
	ID        string `json:"id"`
	PID       int    `json:"pid"`
	StartedAt int64  `json:"startedAt"`
	LastSeen  int64  `json:"lastSeen"`
}

// Heartbeat keeps this instance's presence entry fresh and prunes entries of
// instances that stopped heartbeating.
type Heartbeat struct {
	rdb        *redis.Client
	instanceID string
	interval   time.Duration
	ttl        time.Duration
	stopChan   chan struct{}
	doneChan   chan struct{}
}

// NewHeartbeat creates a heartbeat for this instance.
func NewHeartbeat(rdb *redis.Client, instanceID string, interval, ttl time.Duration) *Heartbeat {
	return &Heartbeat{
		rdb:        rdb,
		instanceID: instanceID,
		interval:   interval,
		ttl:        ttl,
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}
}

// Start begins heartbeating in a goroutine.
func (hb *Heartbeat) Start() {
	log.Printf("Starting instance presence heartbeat (ID: %s)", hb.instanceID)
	go hb.run()
}

// Stop signals the heartbeat to stop, waits for it, and removes this
// instance's entry.
func (hb *Heartbeat) Stop() {
	close(hb.stopChan)
	<-hb.doneChan

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hb.rdb.HDel(ctx, InstancesKey, hb.instanceID).Err(); err != nil {
		log.Printf("ERROR: Failed to remove instance %s from presence registry on shutdown: %v", hb.instanceID, err)
	} else {
		log.Printf("INFO: Instance %s removed from presence registry.", hb.instanceID)
	}
}

func (hb *Heartbeat) run() {
	defer close(hb.doneChan)

	started := time.Now().Unix()
	ticker := time.NewTicker(hb.interval)
	defer ticker.Stop()

	hb.beat(started)
	for {
		select {
		case <-hb.stopChan:
			return
		case <-ticker.C:
			hb.beat(started)
		}
	}
}

func (hb *Heartbeat) beat(started int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	entry := Instance{
		ID:        hb.instanceID,
		PID:       os.Getpid(),
		StartedAt: started,
		LastSeen:  time.Now().Unix(),
	}
	doc, err := json.Marshal(entry)
	if err != nil {
		log.Printf("WARN: Failed to encode presence entry: %v", err)
		return
	}
	if err := hb.rdb.HSet(ctx, InstancesKey, hb.instanceID, doc).Err(); err != nil {
		log.Printf("WARN: Failed to refresh presence entry: %v", err)
		return
	}
	hb.prune(ctx)
}

// prune drops entries whose last heartbeat is older than the TTL.
func (hb *Heartbeat) prune(ctx context.Context) {
	entries, err := hb.rdb.HGetAll(ctx, InstancesKey).Result()
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-hb.ttl).Unix()
	for id, raw := range entries {
		var inst Instance
		if err := json.Unmarshal([]byte(raw), &inst); err != nil || inst.LastSeen < cutoff {
			if err := hb.rdb.HDel(ctx, InstancesKey, id).Err(); err != nil {
				log.Printf("WARN: Failed to prune stale presence entry %s: %v", id, err)
			}
		}
	}
}

// LiveInstances returns every instance with a fresh heartbeat.
func LiveInstances(ctx context.Context, rdb *redis.Client, ttl time.Duration) ([]Instance, error) {
	entries, err := rdb.HGetAll(ctx, InstancesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read presence registry: %w", err)
	}
	cutoff := time.Now().Add(-ttl).Unix()
	var live []Instance
	for _, raw := range entries {
		var inst Instance
		if err := json.Unmarshal([]byte(raw), &inst); err != nil {
			continue
		}
		if inst.LastSeen >= cutoff {
			live = append(live, inst)
		}
	}
	return live, nil
}
