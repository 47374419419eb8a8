// Package redis exposes Redis pub/sub channels as observables, so traffic
// flowing through Redis can be instrumented like any other stream.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/ports"
	"github.com/aretw0/sonda/pkg/stream"
)

// Channel emits the payload of every message published on channel.
// Subscribe blocks until Redis confirms the subscription, so messages published
// after it returns are delivered. Messages arrive on a dedicated goroutine.
// The stream completes when ctx is cancelled or the connection closes, and
// errors if the subscription cannot be established.
func Channel(ctx context.Context, client *backend.Client, channel string) ports.Observable[string] {
	return stream.New(func(o ports.Observer[string]) ports.Subscription {
		subCtx, cancel := context.WithCancel(ctx)
		ps := client.Subscribe(subCtx, channel)

		if _, err := ps.Receive(subCtx); err != nil {
			cancel()
			_ = ps.Close()
			o.OnError(fmt.Errorf("failed to subscribe to %s: %w", channel, err))
			return stream.OnUnsubscribe(nil)
		}

		var closed atomic.Bool
		messages := ps.Channel()

		go func() {
			for {
				select {
				case <-subCtx.Done():
					_ = ps.Close()
					if !closed.Load() {
						o.OnComplete()
					}
					return
				case msg, ok := <-messages:
					if closed.Load() {
						return
					}
					if !ok {
						o.OnComplete()
						return
					}
					o.OnNext(msg.Payload)
				}
			}
		}()

		return stream.OnUnsubscribe(func() {
			closed.Store(true)
			cancel()
			_ = ps.Close()
		})
	})
}

// Snapshots decodes every message on channel as a JSON object.
// A payload that is not a JSON object terminates the stream with an error.
func Snapshots(ctx context.Context, client *backend.Client, channel string) ports.Observable[domain.Snapshot] {
	raw := Channel(ctx, client, channel)
	return stream.New(func(o ports.Observer[domain.Snapshot]) ports.Subscription {
		d := &decoder{channel: channel, out: o}
		d.attach(raw.Subscribe(d))
		return stream.OnUnsubscribe(d.cancel)
	})
}

type decoder struct {
	channel string
	out     ports.Observer[domain.Snapshot]

	mu        sync.Mutex
	sub       ports.Subscription
	failed    bool
	cancelled bool
}

func (d *decoder) OnNext(payload string) {
	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		if d.fail() {
			d.out.OnError(fmt.Errorf("failed to decode snapshot from %s: %w", d.channel, err))
			d.cancel()
		}
		return
	}
	if d.live() {
		d.out.OnNext(snap)
	}
}

func (d *decoder) OnError(err error) {
	if d.fail() {
		d.out.OnError(err)
	}
}

func (d *decoder) OnComplete() {
	if d.live() {
		d.out.OnComplete()
	}
}

func (d *decoder) live() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.failed && !d.cancelled
}

// fail marks the stream terminated and reports whether it was still live.
func (d *decoder) fail() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failed || d.cancelled {
		return false
	}
	d.failed = true
	return true
}

func (d *decoder) attach(sub ports.Subscription) {
	d.mu.Lock()
	d.sub = sub
	stop := d.failed || d.cancelled
	d.mu.Unlock()
	if stop {
		sub.Unsubscribe()
	}
}

func (d *decoder) cancel() {
	d.mu.Lock()
	d.cancelled = true
	sub := d.sub
	d.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}
