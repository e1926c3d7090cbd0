package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

// Publisher implements ports.EventPublisher using NATS JetStream. Catalog
// consumers (search indexers, tile renderers) replay these events to stay
// in sync without polling.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	// Ensure the catalog stream exists
	cfg := nats.StreamConfig{
		Name:      "GEO_CATALOG",
		Subjects:  []string{"geo.points.>", "geo.categories.>"},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist — try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishPointCreated announces a new point.
func (p *Publisher) PublishPointCreated(ctx context.Context, point *domain.Point) error {
	return p.publishPoint("geo.points.created", point)
}

// PublishPointUpdated announces a changed point.
func (p *Publisher) PublishPointUpdated(ctx context.Context, point *domain.Point) error {
	return p.publishPoint("geo.points.updated", point)
}

// PublishPointDeleted announces a removed point.
func (p *Publisher) PublishPointDeleted(ctx context.Context, id string) error {
	return p.publishID("geo.points.deleted", id)
}

// PublishCategoryDeleted announces a removed category; subscribers drop the
// grouping for any points they hold.
func (p *Publisher) PublishCategoryDeleted(ctx context.Context, id string) error {
	return p.publishID("geo.categories.deleted", id)
}

func (p *Publisher) publishPoint(subject string, point *domain.Point) error {
	data, err := json.Marshal(point)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(subject, data)
	return err
}

func (p *Publisher) publishID(subject, id string) error {
	data, err := json.Marshal(map[string]string{"id": id})
	if err != nil {
		return err
	}
	_, err = p.js.Publish(subject, data)
	return err
}

// IsConnected reports broker connectivity for readiness checks.
func (p *Publisher) IsConnected() bool {
	return p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}
