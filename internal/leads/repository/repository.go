package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"callcrm_backend/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

const leadColumns = `
	id, place_id, business_name, phone_number, phone_e164, address, website,
	email, rating, total_ratings, category, business_status, google_maps_url,
	opening_hours, website_text, source_query, campaign_id, status, notes,
	last_called_at, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a lead by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `SELECT` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// List retrieves leads with optional status, campaign and search filters.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	var statusParam interface{}
	if params.Status != "" {
		statusParam = params.Status
	}
	var campaignParam interface{}
	if params.CampaignID != nil {
		campaignParam = *params.CampaignID
	}
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	limit := params.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	args := []interface{}{statusParam, campaignParam, searchParam}

	countQuery := `
		SELECT COUNT(*)
		FROM leads
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::uuid IS NULL OR campaign_id = $2)
			AND ($3::text IS NULL OR business_name ILIKE $3 OR phone_number ILIKE $3)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := `
		SELECT` + leadColumns + `
		FROM leads
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::uuid IS NULL OR campaign_id = $2)
			AND ($3::text IS NULL OR business_name ILIKE $3 OR phone_number ILIKE $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`

	args = append(args, limit, params.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// StatsByStatus returns per-status lead counts plus the overall total,
// optionally scoped to one campaign.
func (r *Repo) StatsByStatus(ctx context.Context, campaignID *uuid.UUID) ([]StatusCount, int, error) {
	var campaignParam interface{}
	if campaignID != nil {
		campaignParam = *campaignID
	}

	query := `
		SELECT status, COUNT(*)
		FROM leads
		WHERE ($1::uuid IS NULL OR campaign_id = $1)
		GROUP BY status
		ORDER BY status`

	rows, err := r.pool.Query(ctx, query, campaignParam)
	if err != nil {
		return nil, 0, fmt.Errorf("lead stats: %w", err)
	}
	defer rows.Close()

	var counts []StatusCount
	total := 0
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, 0, fmt.Errorf("scan lead stats: %w", err)
		}
		counts = append(counts, sc)
		total += sc.Count
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate lead stats: %w", err)
	}

	return counts, total, nil
}

// Update applies a partial update and bumps updated_at.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Lead, error) {
	query := `
		UPDATE leads SET
			business_name = COALESCE($2, business_name),
			phone_number = COALESCE($3, phone_number),
			address = COALESCE($4, address),
			website = COALESCE($5, website),
			email = COALESCE($6, email),
			status = COALESCE($7, status),
			notes = COALESCE($8, notes),
			campaign_id = COALESCE($9, campaign_id),
			updated_at = now()
		WHERE id = $1
		RETURNING` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query,
		params.ID, params.BusinessName, params.PhoneNumber, params.Address,
		params.Website, params.Email, params.Status, params.Notes, params.CampaignID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("update lead: %w", err)
	}
	return lead, nil
}

// Delete removes a lead by ID.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// UpsertMany inserts scraped listings, updating listings already known by
// their place ID. Rows without a place ID are skipped by the caller.
func (r *Repo) UpsertMany(ctx context.Context, batch []UpsertParams) ([]Lead, error) {
	query := `
		INSERT INTO leads (
			place_id, business_name, phone_number, phone_e164, address, website,
			rating, total_ratings, category, business_status, google_maps_url,
			opening_hours, website_text, source_query, campaign_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (place_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			phone_number = EXCLUDED.phone_number,
			phone_e164 = EXCLUDED.phone_e164,
			address = EXCLUDED.address,
			website = EXCLUDED.website,
			rating = EXCLUDED.rating,
			total_ratings = EXCLUDED.total_ratings,
			business_status = EXCLUDED.business_status,
			opening_hours = EXCLUDED.opening_hours,
			updated_at = now()
		RETURNING` + leadColumns

	saved := make([]Lead, 0, len(batch))
	for _, params := range batch {
		lead, err := scanLead(r.pool.QueryRow(ctx, query,
			params.PlaceID, params.BusinessName, params.PhoneNumber, params.PhoneE164,
			params.Address, params.Website, params.Rating, params.TotalRatings,
			params.Category, params.BusinessStatus, params.GoogleMapsURL,
			params.OpeningHours, params.WebsiteText, params.SourceQuery, params.CampaignID,
		))
		if err != nil {
			return saved, fmt.Errorf("upsert lead %q: %w", params.PlaceID, err)
		}
		saved = append(saved, lead)
	}
	return saved, nil
}

// ApplyCallEffects records the side effects of a logged call on the lead:
// the last_called_at stamp is unconditional, the status change only happens
// when the outcome mapped to one.
func (r *Repo) ApplyCallEffects(ctx context.Context, id uuid.UUID, status *string, calledAt time.Time) (Lead, error) {
	query := `
		UPDATE leads SET
			status = COALESCE($2, status),
			last_called_at = $3,
			updated_at = now()
		WHERE id = $1
		RETURNING` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, status, calledAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("apply call effects: %w", err)
	}
	return lead, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.PlaceID, &lead.BusinessName, &lead.PhoneNumber,
		&lead.PhoneE164, &lead.Address, &lead.Website, &lead.Email,
		&lead.Rating, &lead.TotalRatings, &lead.Category, &lead.BusinessStatus,
		&lead.GoogleMapsURL, &lead.OpeningHours, &lead.WebsiteText,
		&lead.SourceQuery, &lead.CampaignID, &lead.Status, &lead.Notes,
		&lead.LastCalledAt, &lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}

func scanLeads(rows pgx.Rows) ([]Lead, error) {
	var results []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		results = append(results, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return results, nil
}
