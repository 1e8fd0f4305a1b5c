package events

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStreamPublisher appends events to a Redis stream and reads them back in consumer groups.
type RedisStreamPublisher struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

func NewRedisStreamPublisher(client *redis.Client, stream string, logger *zap.Logger) *RedisStreamPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStreamPublisher{client: client, stream: stream, logger: logger}
}

// Publish publishes an event to the stream
func (r *RedisStreamPublisher) Publish(ctx context.Context, event *Event) error {
	eventJSON, err := event.ToJSON()
	if err != nil {
		return errors.Wrap(err, "failed to serialize event")
	}

	args := &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{
			"event_id":   event.EventID,
			"event_type": event.EventType,
			"issue_id":   event.IssueID,
			"payload":    string(eventJSON),
			"timestamp":  event.Timestamp.Format(time.RFC3339),
		},
	}

	if _, err := r.client.XAdd(ctx, args).Result(); err != nil {
		return errors.Wrap(err, "failed to publish event")
	}

	r.logger.Debug("published event",
		zap.String("event_type", event.EventType),
		zap.String("issue_id", event.IssueID))
	return nil
}

// CreateConsumerGroup creates the group, and the stream with it, unless it already exists
func (r *RedisStreamPublisher) CreateConsumerGroup(ctx context.Context, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, r.stream, group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return errors.Wrap(err, "failed to create consumer group")
	}
	return nil
}

// Consume reads events for the group until ctx is cancelled. Messages whose handler
// fails stay pending and are not acknowledged.
func (r *RedisStreamPublisher) Consume(ctx context.Context, group, consumer string, handler func(*Event) error) error {
	if err := r.CreateConsumerGroup(ctx, group); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		streams, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    group,
			Consumer: consumer,
			Streams:  []string{r.stream, ">"},
			Count:    50,
			Block:    time.Second,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("reading event stream failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				event, err := parseMessage(message)
				if err != nil {
					r.logger.Warn("skipping malformed event", zap.String("message_id", message.ID), zap.Error(err))
					continue
				}

				if err := handler(event); err != nil {
					r.logger.Error("handling event failed", zap.String("event_id", event.EventID), zap.Error(err))
					continue
				}

				if err := r.client.XAck(ctx, r.stream, group, message.ID).Err(); err != nil {
					r.logger.Warn("acknowledging event failed", zap.String("message_id", message.ID), zap.Error(err))
				}
			}
		}
	}
}

func parseMessage(message redis.XMessage) (*Event, error) {
	payload, ok := message.Values["payload"].(string)
	if !ok {
		return nil, errors.New("invalid payload in message")
	}

	event, err := FromJSON([]byte(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal event")
	}
	return event, nil
}
