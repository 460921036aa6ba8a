package event

import (
	"context"
	"log/slog"

	pkgkafka "github.com/paripprabhu/sneakopedia/pkg/kafka"
)

// TopicCatalogUpdated is published by the ingestion pipeline after a scrape
// run lands new or refreshed records.
const TopicCatalogUpdated = "sneakopedia.catalog.updated"

// GroupCatalogAPI is the consumer group for the catalog API instances. Every
// instance shares the group; invalidation is generation-based in Redis, so it
// only has to happen once per event.
const GroupCatalogAPI = "catalog-api"

// CacheInvalidator is the slice of the catalog service the consumer needs.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

// Consumer listens for catalog change events and drops cached query results
// so readers see fresh data within one cache TTL of a scrape run.
type Consumer struct {
	consumer *pkgkafka.Consumer
	logger   *slog.Logger
}

// NewCatalogConsumer creates a consumer for catalog update events.
func NewCatalogConsumer(brokers []string, invalidator CacheInvalidator, logger *slog.Logger) *Consumer {
	handler := func(ctx context.Context, e *pkgkafka.Event) error {
		logger.InfoContext(ctx, "catalog updated, invalidating query cache",
			slog.String("event_id", e.EventID),
			slog.String("aggregate_id", e.AggregateID),
			slog.String("source", e.Source),
		)
		invalidator.InvalidateCache(ctx)
		return nil
	}

	cfg := pkgkafka.ConsumerConfig{
		Brokers:  brokers,
		GroupID:  GroupCatalogAPI,
		Topic:    TopicCatalogUpdated,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	}

	return &Consumer{
		consumer: pkgkafka.NewConsumer(cfg, handler, logger),
		logger:   logger,
	}
}

// Start begins consuming. It blocks until the context is canceled.
func (c *Consumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}

// Close stops the consumer.
func (c *Consumer) Close() error {
	return c.consumer.Close()
}
