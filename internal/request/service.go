package request

import (
	"context"
	"fmt"
	"time"

	"github.com/ekovaleva/procurement-assist/internal/commodity"
	"github.com/ekovaleva/procurement-assist/internal/metrics"
	"github.com/ekovaleva/procurement-assist/internal/types/request"
)

const defaultUnit = "pcs"

type Service struct {
	repo    Repository
	catalog *commodity.Catalog
	metrics *metrics.Metrics
}

func NewService(repo Repository, catalog *commodity.Catalog, m *metrics.Metrics) *Service {
	return &Service{repo: repo, catalog: catalog, metrics: m}
}

// Create validates the payload and persists a new request with status Open
// and a single-entry status history. Nothing is stored when validation fails.
func (s *Service) Create(ctx context.Context, data request.Data) (*request.Request, error) {
	for i := range data.OrderLines {
		if data.OrderLines[i].Unit == "" {
			data.OrderLines[i].Unit = defaultUnit
		}
	}
	if err := data.Validate(s.catalog.Has); err != nil {
		return nil, err
	}

	count, err := s.repo.CountRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("next request id: %w", err)
	}
	now := time.Now().UTC()
	r := &request.Request{
		ID:            fmt.Sprintf("REQ-%04d", count+1),
		Data:          data,
		Status:        request.StatusOpen,
		StatusHistory: []request.StatusChange{{Status: request.StatusOpen, Timestamp: now}},
		CreatedAt:     now,
	}
	if err := s.repo.CreateRequest(ctx, r); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	s.metrics.RequestsCreated.Inc()
	return r, nil
}

func (s *Service) List(ctx context.Context) ([]request.Request, error) {
	return s.repo.ListRequests(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*request.Request, error) {
	return s.repo.GetRequest(ctx, id)
}

// UpdateStatus appends a history entry and sets the current status, then
// returns the updated request. The transition rule is delegated to
// request.CanTransition.
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*request.Request, error) {
	st, err := request.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !request.CanTransition(current.Status, st) {
		return nil, fmt.Errorf("%w: transition %s -> %s is not allowed", request.ErrValidation, current.Status, st)
	}
	if err := s.repo.AppendStatus(ctx, id, st, time.Now().UTC()); err != nil {
		return nil, err
	}
	s.metrics.StatusUpdates.WithLabelValues(string(st)).Inc()
	return s.repo.GetRequest(ctx, id)
}
