package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"callcrm_backend/platform/apperr"
)

const campaignNotFoundMessage = "campaign not found"

// campaignColumns joins in the lead count and today's dialled calls so
// the dashboard can show progress against the daily target.
const campaignColumns = `
	c.id, c.name, c.description, c.daily_dial_target, c.status, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM leads l WHERE l.campaign_id = c.id) AS total_leads,
	(SELECT COUNT(*) FROM call_logs cl WHERE cl.campaign_id = c.id AND cl.called_at >= date_trunc('day', now())) AS todays_calls`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new campaigns repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a campaign with its aggregates.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Campaign, error) {
	query := `SELECT` + campaignColumns + ` FROM campaigns c WHERE c.id = $1`

	campaign, err := scanCampaign(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Campaign{}, apperr.NotFound(campaignNotFoundMessage)
		}
		return Campaign{}, fmt.Errorf("get campaign: %w", err)
	}
	return campaign, nil
}

// List retrieves all campaigns, newest first.
func (r *Repo) List(ctx context.Context) ([]Campaign, error) {
	query := `SELECT` + campaignColumns + ` FROM campaigns c ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var results []Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		results = append(results, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}
	return results, nil
}

// Create inserts a new campaign.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Campaign, error) {
	query := `
		INSERT INTO campaigns (name, description, daily_dial_target, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, daily_dial_target, status, created_at, updated_at`

	var campaign Campaign
	err := r.pool.QueryRow(ctx, query,
		params.Name, params.Description, params.DailyDialTarget, params.Status,
	).Scan(
		&campaign.ID, &campaign.Name, &campaign.Description,
		&campaign.DailyDialTarget, &campaign.Status,
		&campaign.CreatedAt, &campaign.UpdatedAt,
	)
	if err != nil {
		return Campaign{}, fmt.Errorf("create campaign: %w", err)
	}
	return campaign, nil
}

// Update applies a partial update and bumps updated_at.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Campaign, error) {
	query := `
		UPDATE campaigns SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			daily_dial_target = COALESCE($4, daily_dial_target),
			status = COALESCE($5, status),
			updated_at = now()
		WHERE id = $1
		RETURNING id, name, description, daily_dial_target, status, created_at, updated_at`

	var campaign Campaign
	err := r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Description, params.DailyDialTarget, params.Status,
	).Scan(
		&campaign.ID, &campaign.Name, &campaign.Description,
		&campaign.DailyDialTarget, &campaign.Status,
		&campaign.CreatedAt, &campaign.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Campaign{}, apperr.NotFound(campaignNotFoundMessage)
		}
		return Campaign{}, fmt.Errorf("update campaign: %w", err)
	}
	return campaign, nil
}

// Delete removes a campaign. Leads keep their rows; the foreign key
// nulls out their campaign reference.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(campaignNotFoundMessage)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row rowScanner) (Campaign, error) {
	var campaign Campaign
	err := row.Scan(
		&campaign.ID, &campaign.Name, &campaign.Description,
		&campaign.DailyDialTarget, &campaign.Status,
		&campaign.CreatedAt, &campaign.UpdatedAt,
		&campaign.TotalLeads, &campaign.TodaysCalls,
	)
	return campaign, err
}
