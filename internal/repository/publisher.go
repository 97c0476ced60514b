package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RealtimeEvent is the payload pushed to subscribers of the notification channel.
type RealtimeEvent struct {
	UserID         string      `json:"user_id"`
	Type           string      `json:"type"`
	NotificationID string      `json:"notification_id,omitempty"`
	Data           interface{} `json:"data,omitempty"`
}

// NotificationPublisher fans notification events out over Redis pub/sub.
type NotificationPublisher struct {
	client  *redis.Client
	channel string
}

// NewNotificationPublisher constructs a publisher for channel.
func NewNotificationPublisher(client *redis.Client, channel string) *NotificationPublisher {
	if channel == "" {
		channel = "notifications"
	}
	return &NotificationPublisher{client: client, channel: channel}
}

// Publish sends event to the channel; it is a no-op without a client.
func (p *NotificationPublisher) Publish(ctx context.Context, event RealtimeEvent) error {
	if p.client == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal realtime event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", p.channel, err)
	}
	return nil
}
