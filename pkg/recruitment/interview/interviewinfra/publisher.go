package interviewinfra

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/redis/go-redis/v9"
)

// RedisEventPublisher publica eventos de sesión en un canal pub/sub
type RedisEventPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisEventPublisher(client *redis.Client, channel string) *RedisEventPublisher {
	return &RedisEventPublisher{client: client, channel: channel}
}

func (p *RedisEventPublisher) Publish(ctx context.Context, event interview.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event to Redis: %w", err)
	}
	return nil
}

// LogEventPublisher only logs events. Used when Redis is disabled.
type LogEventPublisher struct{}

func (LogEventPublisher) Publish(_ context.Context, event interview.Event) error {
	logx.WithFields(logx.Fields{
		"session_id":     event.SessionID,
		"application_id": event.ApplicationID,
		"status":         event.Status,
	}).Debugf("event %s", event.Type)
	return nil
}
