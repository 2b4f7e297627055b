package mocks

import (
	"context"

	"tablebook/internal/domains/reservation/events"
	"tablebook/internal/domains/reservation/model"
)

// publisherImpl is a drop-everything publisher for tests.
type publisherImpl struct {
}

// StatusChanged implements events.Publisher.
func (p *publisherImpl) StatusChanged(_ context.Context, _ string, _ model.Status) {
}

func NewPublisher() events.Publisher {
	return &publisherImpl{}
}
