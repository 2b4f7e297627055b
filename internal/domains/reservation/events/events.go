package events

import (
	"context"

	"tablebook/config"
	"tablebook/infras/kafka"
	"tablebook/infras/otel"
	"tablebook/internal/domains/reservation/model"
	"tablebook/shared/constant"
	"tablebook/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Publisher emits reservation lifecycle events. Publishing is fire and forget:
// a broker failure is logged and never surfaces to the caller.
type Publisher interface {
	StatusChanged(ctx context.Context, reservationID string, status model.Status)
}

type statusChangedEvent struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *publisherImpl) StatusChanged(ctx context.Context, reservationID string, status model.Status) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".reservation.StatusChanged")
	defer scope.End()

	if !p.cfg.Kafka.Enable {
		return
	}

	message := kafka.Message{
		Key: reservationID,
		Value: statusChangedEvent{
			ReservationID: reservationID,
			Status:        string(status),
			OccurredAt:    timezone.Format(timezone.Now(), constant.DateTimeFormat),
		},
	}

	if err := p.client.SendMessages(ctx, p.cfg.Kafka.EventTopic, message); err != nil {
		scope.TraceError(err)
		log.Error().
			Err(err).
			Str("reservation_id", reservationID).
			Str("status", string(status)).
			Msg("failed to publish reservation status event")
	}
}
