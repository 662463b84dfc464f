// Package events publishes frontend activity to NATS. The processing
// service consumes these to rank and refresh listings; publishing is
// best-effort and never blocks page rendering on broker errors.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/riya-n/step204-2020/internal/config"
	"github.com/riya-n/step204-2020/internal/errors"
	"github.com/riya-n/step204-2020/internal/telemetry"
)

var tracer = telemetry.GetTracer("step204/events")

const (
	SearchPerformedSubject = "frontend.search.performed"
	ListingViewedSubject   = "frontend.listing.viewed"
)

// SearchPerformed records one listings query as the user submitted it.
type SearchPerformed struct {
	EventID    string    `json:"eventId"`
	Region     string    `json:"region"`
	SortBy     string    `json:"sortBy"`
	Order      string    `json:"order"`
	MinLimit   int64     `json:"minLimit"`
	MaxLimit   int64     `json:"maxLimit"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ListingViewed records a navigation to a job's details page.
type ListingViewed struct {
	EventID    string    `json:"eventId"`
	JobID      string    `json:"jobId"`
	Page       string    `json:"page"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	PublishSearchPerformed(ctx context.Context, event SearchPerformed) error
	PublishListingViewed(ctx context.Context, event ListingViewed) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger, config *config.Config) (Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(config.NATSConnTimeout),
		nats.RetryOnFailedConnect(true),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(config.NATSURL, opts...)
	if err != nil {
		return nil, errors.Internal("connecting to NATS", err)
	}

	return &natsPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

func (p *natsPublisher) PublishSearchPerformed(ctx context.Context, event SearchPerformed) error {
	_, span := tracer.Start(ctx, "PublishSearchPerformed")
	defer span.End()

	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := p.publish(SearchPerformedSubject, event); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish search event",
			zap.String("event_id", event.EventID),
			zap.Error(err))
		return err
	}

	p.logger.Debug("published search event",
		zap.String("event_id", event.EventID),
		zap.String("region", event.Region),
		zap.String("sort_by", event.SortBy))
	return nil
}

func (p *natsPublisher) PublishListingViewed(ctx context.Context, event ListingViewed) error {
	_, span := tracer.Start(ctx, "PublishListingViewed")
	defer span.End()

	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := p.publish(ListingViewedSubject, event); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish listing view",
			zap.String("event_id", event.EventID),
			zap.String("job_id", event.JobID),
			zap.Error(err))
		return err
	}

	p.logger.Debug("published listing view",
		zap.String("event_id", event.EventID),
		zap.String("job_id", event.JobID))
	return nil
}

func (p *natsPublisher) publish(subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Internal("marshaling event", err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return errors.Internal("publishing to NATS", err)
	}
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
