// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel draw-completed events go out on.
const Channel = "gift-draw:completed"

// Event carries the completion signal emitted after a draw commits.
// Assignments themselves are never part of the event; consumers fetch
// per-participant recipients through the API.
type Event struct {
	EventID         string    `json:"event_id"`
	GroupID         string    `json:"group_id"`
	ParticipantIDs  []string  `json:"participant_ids"`
	DrawCompletedAt time.Time `json:"draw_completed_at"`
}

// NewEvent builds a draw-completed event with a fresh event ID.
func NewEvent(groupID string, participantIDs []string, completedAt time.Time) Event {
	return Event{
		EventID:         uuid.NewString(),
		GroupID:         groupID,
		ParticipantIDs:  participantIDs,
		DrawCompletedAt: completedAt,
	}
}

// Notifier delivers draw-completed events. Delivery is fire-and-forget
// relative to the draw transaction: a failed notification is logged and
// retried by the consumer side, never rolled into the draw result.
type Notifier interface {
	DrawCompleted(ctx context.Context, ev Event) error
}

// LogNotifier is the fallback when no Redis URL is configured. It only
// records the event in the server log.
type LogNotifier struct{}

func (LogNotifier) DrawCompleted(_ context.Context, ev Event) error {
	slog.Info("draw completed",
		"event_id", ev.EventID,
		"group_id", ev.GroupID,
		"participants", len(ev.ParticipantIDs),
	)
	return nil
}

// RedisNotifier publishes draw-completed events to a Redis pub/sub
// channel for the notification service to consume.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(url string) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisNotifier{client: client}, nil
}

func (n *RedisNotifier) DrawCompleted(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	if err := n.client.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
