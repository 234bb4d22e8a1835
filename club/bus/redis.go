package bus

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// ChangeChannel is the redis pub/sub channel every instance listens on.
const ChangeChannel = "elkawera:changes"

// RedisBus extends a LocalBus with cross-instance fan-out over redis pub/sub.
// The message payload is the publishing instance's id, used only so the
// subscribe loop can skip messages this instance published itself (the local
// dispatch already covered those). Losing redis degrades the bus to local
// delivery only, which the contract allows.
type RedisBus struct {
	local      *LocalBus
	rdb        *redis.Client
	instanceID string
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewRedisBus creates the cross-instance bus and starts its subscribe loop.
func NewRedisBus(rdb *redis.Client, instanceID string) *RedisBus {
	ctx, cancel := context.WithCancel(context.Background())
	b := &RedisBus{
		local:      NewLocalBus(),
		rdb:        rdb,
		instanceID: instanceID,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	go b.run(ctx)
	return b
}

// Publish dispatches locally, then broadcasts to the other instances.
// The redis publish is fire-and-forget: a failure is logged and dropped.
func (b *RedisBus) Publish(ctx context.Context) {
	b.local.dispatch()
	if err := b.rdb.Publish(ctx, ChangeChannel, b.instanceID).Err(); err != nil {
		log.Printf("WARN: Failed to publish change signal to redis: %v", err)
	}
}

// Subscribe registers fn with the local dispatcher; cross-instance signals
// arrive through the subscribe loop and reach the same callbacks.
func (b *RedisBus) Subscribe(fn func()) func() {
	return b.local.Subscribe(fn)
}

// Close stops the subscribe loop and waits for it to exit.
func (b *RedisBus) Close() {
	b.cancel()
	<-b.done
}

func (b *RedisBus) run(ctx context.Context) {
	defer close(b.done)

	pubsub := b.rdb.Subscribe(ctx, ChangeChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				log.Printf("WARN: Change bus subscription closed; cross-instance signals lost.")
				return
			}
			if msg.Payload == b.instanceID {
				continue // our own publish, already dispatched locally
			}
			b.local.dispatch()
		}
	}
}
