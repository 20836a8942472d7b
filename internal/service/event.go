package service

import (
	"context"

	"proxymint/internal/domain"
)

// EventService exposes the append-only event log for read access.
type EventService struct {
	repo domain.EventRepository
}

func NewEventService(repo domain.EventRepository) *EventService {
	return &EventService{repo: repo}
}

func (s *EventService) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	return s.repo.List(ctx, filter)
}
