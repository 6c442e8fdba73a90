// Package service implements the campaigns application logic.
package service

import (
	"context"

	"github.com/google/uuid"

	"callcrm_backend/internal/campaigns/repository"
	"callcrm_backend/internal/campaigns/transport"
	"callcrm_backend/internal/events"
)

const defaultDailyDialTarget = 100

// Service implements campaign use cases on top of the repository.
type Service struct {
	repo repository.Repository
	bus  events.Bus
}

// New creates the campaigns service.
func New(repo repository.Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// List returns all campaigns with their aggregates.
func (s *Service) List(ctx context.Context) ([]repository.Campaign, error) {
	campaigns, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if campaigns == nil {
		campaigns = []repository.Campaign{}
	}
	return campaigns, nil
}

// Get returns one campaign with its lead count and today's call count.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Campaign, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a new campaign with the default daily dial target and
// an active status, then publishes the creation.
func (s *Service) Create(ctx context.Context, req transport.CreateCampaignRequest) (repository.Campaign, error) {
	target := defaultDailyDialTarget
	if req.DailyDialTarget != nil {
		target = *req.DailyDialTarget
	}

	campaign, err := s.repo.Create(ctx, repository.CreateParams{
		Name:            req.Name,
		Description:     req.Description,
		DailyDialTarget: target,
		Status:          "active",
	})
	if err != nil {
		return repository.Campaign{}, err
	}

	s.bus.Publish(ctx, events.CampaignCreated{
		BaseEvent:  events.NewBaseEvent(),
		CampaignID: campaign.ID,
		Campaign:   campaign,
	})
	return campaign, nil
}

// Update applies a partial update and publishes the change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateCampaignRequest) (repository.Campaign, error) {
	campaign, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		DailyDialTarget: req.DailyDialTarget,
		Status:          req.Status,
	})
	if err != nil {
		return repository.Campaign{}, err
	}

	s.bus.Publish(ctx, events.CampaignUpdated{
		BaseEvent:  events.NewBaseEvent(),
		CampaignID: campaign.ID,
		Campaign:   campaign,
	})
	return campaign, nil
}

// Delete removes a campaign and publishes the deletion.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bus.Publish(ctx, events.CampaignDeleted{
		BaseEvent:  events.NewBaseEvent(),
		CampaignID: id,
	})
	return nil
}
