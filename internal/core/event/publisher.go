// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Publisher delivers recorded domain events to interested consumers.
type Publisher interface {

	/*
		Publish delivers a batch of events.

		Parameters:
		  - context: context.Context
		  - events: ...Event

		Returns:
		  - error: Delivery failures
	*/
	Publish(context context.Context, events ...Event) error
}

// # Redis Fan-Out

// RedisPublisher implements [Publisher] over Redis pub/sub channels.
//
// Each event fans out on "events:<name>", so consumers subscribe per event
// kind (e.g. "events:content.status_changed") or pattern-match "events:*".
type RedisPublisher struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisPublisher constructs a Redis backed event publisher.
func NewRedisPublisher(client *redis.Client, logger *slog.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, logger: logger}
}

/*
Publish serializes each event to JSON and publishes it on its channel.

Description: Delivery is best-effort fan-out. A serialization failure aborts
the batch; a missing subscriber is not an error.

Parameters:
  - context: context.Context
  - events: ...Event

Returns:
  - error: Serialization or connectivity failures
*/
func (publisher *RedisPublisher) Publish(context context.Context, events ...Event) error {
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("event_marshal_failed: %w", err)
		}

		channel := "events:" + evt.Name()
		if err := publisher.client.Publish(context, channel, payload).Err(); err != nil {
			return fmt.Errorf("event_publish_failed: %w", err)
		}

		publisher.logger.Debug("event_published",
			slog.String("event", evt.Name()),
			slog.String("channel", channel),
		)
	}

	return nil
}

// # Log-Only Fall-Back

// LogPublisher implements [Publisher] by writing events to the structured
// log. Used when Redis is not configured and in tests.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher constructs a log backed event publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs each event at INFO level.
func (publisher *LogPublisher) Publish(context context.Context, events ...Event) error {
	for _, evt := range events {
		publisher.logger.InfoContext(context, "domain_event",
			slog.String("event", evt.Name()),
			slog.Any("payload", evt),
		)
	}
	return nil
}

// # Outbox Draining

// Drain publishes an aggregate's uncommitted events and clears its outbox.
//
// Call after the aggregate has been persisted. Publish failures are logged
// and swallowed; the state change has already committed.
func Drain(context context.Context, publisher Publisher, recorder interface {
	Uncommitted() []Event
	ClearEvents()
}, logger *slog.Logger) {
	events := recorder.Uncommitted()
	if len(events) == 0 {
		return
	}

	if err := publisher.Publish(context, events...); err != nil {
		logger.WarnContext(context, "event_publish_dropped",
			slog.Int("count", len(events)),
			slog.String("error", err.Error()),
		)
	}

	recorder.ClearEvents()
}
