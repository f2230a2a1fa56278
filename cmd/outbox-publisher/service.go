package main

import (
	"context"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/pkg/config"
	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
)

const publishTimeout = 15 * time.Second

type outboxRepository interface {
	FetchUnpublished(limit int) ([]models.OutboxEvent, error)
	MarkPublished(id uuid.UUID) error
	MarkFailed(id uuid.UUID, err error) error
}

type publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

// topicPicker routes an event to the topic its consumers listen on.
type topicPicker func(event models.OutboxEvent) publisher

type Service struct {
	cfg    config.OutboxConfig
	logg   *logger.Logger
	repo   outboxRepository
	topics topicPicker
}

func NewService(cfg config.OutboxConfig, logg *logger.Logger, repo outboxRepository, topics topicPicker) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("outbox repository required")
	}
	if topics == nil {
		return nil, fmt.Errorf("topic picker required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.PollIntervalMS <= 0 {
		cfg.PollIntervalMS = 500
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	return &Service{cfg: cfg, logg: logg, repo: repo, topics: topics}, nil
}

// Run polls the outbox until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(s.cfg.PollIntervalMS) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.publishBatch(ctx); err != nil {
				s.logg.Error(ctx, "outbox batch failed", err)
			}
		}
	}
}

func (s *Service) publishBatch(ctx context.Context) error {
	events, err := s.repo.FetchUnpublished(s.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("fetching unpublished events: %w", err)
	}

	for _, event := range events {
		if event.AttemptCount >= s.cfg.MaxAttempts {
			lctx := s.logg.WithFields(ctx, map[string]any{
				"event_id":   event.ID.String(),
				"event_type": string(event.EventType),
				"attempts":   event.AttemptCount,
			})
			s.logg.Warn(lctx, "outbox event exhausted its attempts, skipping")
			continue
		}
		if err := s.publishOne(ctx, event); err != nil {
			if markErr := s.repo.MarkFailed(event.ID, err); markErr != nil {
				s.logg.Error(ctx, "marking outbox event failed", markErr)
			}
			continue
		}
		if err := s.repo.MarkPublished(event.ID); err != nil {
			s.logg.Error(ctx, "marking outbox event published", err)
		}
	}
	return nil
}

func (s *Service) publishOne(ctx context.Context, event models.OutboxEvent) error {
	topic := s.topics(event)
	if topic == nil {
		return fmt.Errorf("no topic for aggregate %s", event.AggregateType)
	}

	pctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	result := topic.Publish(pctx, &gcppubsub.Message{
		Data: event.Payload,
		Attributes: map[string]string{
			"event_type":     string(event.EventType),
			"aggregate_type": string(event.AggregateType),
			"aggregate_id":   event.AggregateID.String(),
		},
	})
	if _, err := result.Get(pctx); err != nil {
		return fmt.Errorf("publishing event %s: %w", event.ID, err)
	}
	return nil
}

type gcpPublisher struct {
	inner *gcppubsub.Publisher
}

func (p gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	return p.inner.Publish(ctx, msg)
}

// routeByAggregate sends pedido and entrega events to the pedidos topic;
// everything else rides the notificaciones topic.
func routeByAggregate(pedidos, notificaciones *gcppubsub.Publisher) topicPicker {
	return func(event models.OutboxEvent) publisher {
		switch event.AggregateType {
		case enums.AggregatePedido, enums.AggregateEntrega:
			if pedidos == nil {
				return nil
			}
			return gcpPublisher{inner: pedidos}
		default:
			if notificaciones == nil {
				return nil
			}
			return gcpPublisher{inner: notificaciones}
		}
	}
}
