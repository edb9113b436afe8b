// Package notification turns domain events into messages for customers,
// managers, security officers and contractors. Delivery is best effort:
// failures are logged and never reach the operation that raised the event.
package notification

import (
	"context"
	"errors"
)

// ErrNoAddress is returned by a Channel when the target has no address on
// that channel, e.g. no linked Telegram chat.
var ErrNoAddress = errors.New("notification: target has no address on this channel")

// Target is a resolved recipient.
type Target struct {
	UserID uint
	Name   string
	Email  string
	ChatID *int64
	Lang   Lang
}

// Message is a rendered notification. Body is plain text with light
// Markdown (emphasis and line breaks only).
type Message struct {
	Subject string
	Body    string
}

// Channel delivers a message to a single user.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, target Target, msg Message) error
}

// Broadcaster posts to the shared contractor channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg Message) error
}

// Deduplicator suppresses repeated alerts. TryAcquire returns true when the
// key was not seen within the dedup window.
type Deduplicator interface {
	TryAcquire(ctx context.Context, key string) (bool, error)
}
