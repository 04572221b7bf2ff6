// Package events publishes content change events to Redis Streams so
// downstream consumers (cache invalidators, search indexers) can react
// to admin activity. Publishing is optional; a nil Publisher is a
// no-op.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gazetadovale/newsdesk/internal/logger"
)

// StreamName is the Redis stream content events are appended to.
const StreamName = "newsdesk:content-events"

// asyncPublishTimeout bounds async publish operations.
const asyncPublishTimeout = 5 * time.Second

// EventType identifies what happened to an entity.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// ContentEvent describes one admin-driven content change.
type ContentEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType EventType `json:"event_type"`
	Kind      string    `json:"kind"`
	EntityID  int       `json:"entity_id"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher appends content events to a Redis stream.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates a publisher. Returns nil if client is nil.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{client: client, log: log}
}

// Publish appends one event to the stream.
func (p *Publisher) Publish(ctx context.Context, event ContentEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{
			"event": string(payload),
		},
	})

	if publishErr := result.Err(); publishErr != nil {
		p.log.Error("Failed to publish content event",
			logger.String("event_type", string(event.EventType)),
			logger.String("kind", event.Kind),
			logger.Int("entity_id", event.EntityID),
			logger.Error(publishErr),
		)
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	p.log.Debug("Published content event",
		logger.String("event_type", string(event.EventType)),
		logger.String("kind", event.Kind),
		logger.Int("entity_id", event.EntityID),
		logger.String("stream_id", result.Val()),
	)

	return nil
}

// PublishAsync publishes without blocking the caller. Errors are logged
// and dropped.
func (p *Publisher) PublishAsync(event ContentEvent) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil {
			p.log.Error("Async publish failed",
				logger.String("event_type", string(event.EventType)),
				logger.Error(err),
			)
		}
	}()
}
