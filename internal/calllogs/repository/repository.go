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

const callLogNotFoundMessage = "call log not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new call logs repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new call log entry.
func (r *Repo) Create(ctx context.Context, params CreateParams) (CallLog, error) {
	query := `
		INSERT INTO call_logs (lead_id, campaign_id, call_outcome, notes, scheduled_callback, called_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, lead_id, campaign_id, call_outcome, notes, scheduled_callback, called_at, created_at`

	var log CallLog
	err := r.pool.QueryRow(ctx, query,
		params.LeadID, params.CampaignID, params.Outcome, params.Notes,
		params.ScheduledCallback, params.CalledAt,
	).Scan(
		&log.ID, &log.LeadID, &log.CampaignID, &log.Outcome, &log.Notes,
		&log.ScheduledCallback, &log.CalledAt, &log.CreatedAt,
	)
	if err != nil {
		return CallLog{}, fmt.Errorf("create call log: %w", err)
	}
	return log, nil
}

// GetByID retrieves a call log with its joined lead fields.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (CallLog, error) {
	query := `
		SELECT cl.id, cl.lead_id, cl.campaign_id, cl.call_outcome, cl.notes,
			cl.scheduled_callback, cl.called_at, cl.created_at,
			l.business_name, l.phone_number
		FROM call_logs cl
		JOIN leads l ON l.id = cl.lead_id
		WHERE cl.id = $1`

	log, err := scanJoinedCallLog(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CallLog{}, apperr.NotFound(callLogNotFoundMessage)
		}
		return CallLog{}, fmt.Errorf("get call log: %w", err)
	}
	return log, nil
}

// List retrieves call logs with optional lead, campaign and day filters,
// newest first, joined with lead identity fields.
func (r *Repo) List(ctx context.Context, params ListParams) ([]CallLog, error) {
	var leadParam interface{}
	if params.LeadID != nil {
		leadParam = *params.LeadID
	}
	var campaignParam interface{}
	if params.CampaignID != nil {
		campaignParam = *params.CampaignID
	}
	var dayStart, dayEnd interface{}
	if params.Date != nil {
		start := time.Date(params.Date.Year(), params.Date.Month(), params.Date.Day(), 0, 0, 0, 0, params.Date.Location())
		dayStart = start
		dayEnd = start.AddDate(0, 0, 1)
	}

	limit := params.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT cl.id, cl.lead_id, cl.campaign_id, cl.call_outcome, cl.notes,
			cl.scheduled_callback, cl.called_at, cl.created_at,
			l.business_name, l.phone_number
		FROM call_logs cl
		JOIN leads l ON l.id = cl.lead_id
		WHERE ($1::uuid IS NULL OR cl.lead_id = $1)
			AND ($2::uuid IS NULL OR cl.campaign_id = $2)
			AND ($3::timestamptz IS NULL OR (cl.called_at >= $3 AND cl.called_at < $4))
		ORDER BY cl.called_at DESC
		LIMIT $5 OFFSET $6`

	rows, err := r.pool.Query(ctx, query, leadParam, campaignParam, dayStart, dayEnd, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list call logs: %w", err)
	}
	defer rows.Close()

	return scanJoinedCallLogs(rows)
}

// ListByLead retrieves every call log for one lead, newest first.
func (r *Repo) ListByLead(ctx context.Context, leadID uuid.UUID) ([]CallLog, error) {
	query := `
		SELECT id, lead_id, campaign_id, call_outcome, notes,
			scheduled_callback, called_at, created_at
		FROM call_logs
		WHERE lead_id = $1
		ORDER BY called_at DESC`

	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list call logs by lead: %w", err)
	}
	defer rows.Close()

	var results []CallLog
	for rows.Next() {
		var log CallLog
		err := rows.Scan(
			&log.ID, &log.LeadID, &log.CampaignID, &log.Outcome, &log.Notes,
			&log.ScheduledCallback, &log.CalledAt, &log.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan call log: %w", err)
		}
		results = append(results, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate call logs: %w", err)
	}
	return results, nil
}

// Stats summarises dialling activity, optionally scoped to one campaign.
func (r *Repo) Stats(ctx context.Context, campaignID *uuid.UUID) (SetStats, error) {
	var campaignParam interface{}
	if campaignID != nil {
		campaignParam = *campaignID
	}

	var stats SetStats
	summaryQuery := `
		SELECT COUNT(DISTINCT lead_id), COUNT(*)
		FROM call_logs
		WHERE ($1::uuid IS NULL OR campaign_id = $1)`

	if err := r.pool.QueryRow(ctx, summaryQuery, campaignParam).Scan(&stats.UniqueLeads, &stats.TotalCalls); err != nil {
		return SetStats{}, fmt.Errorf("call log summary stats: %w", err)
	}

	outcomeQuery := `
		SELECT call_outcome, COUNT(*)
		FROM call_logs
		WHERE ($1::uuid IS NULL OR campaign_id = $1)
		GROUP BY call_outcome
		ORDER BY call_outcome`

	rows, err := r.pool.Query(ctx, outcomeQuery, campaignParam)
	if err != nil {
		return SetStats{}, fmt.Errorf("call log outcome stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oc OutcomeCount
		if err := rows.Scan(&oc.Outcome, &oc.Count); err != nil {
			return SetStats{}, fmt.Errorf("scan outcome stats: %w", err)
		}
		stats.Outcomes = append(stats.Outcomes, oc)
	}
	if err := rows.Err(); err != nil {
		return SetStats{}, fmt.Errorf("iterate outcome stats: %w", err)
	}

	return stats, nil
}

// CallbacksDue returns logs whose scheduled callback time has passed,
// soonest first.
func (r *Repo) CallbacksDue(ctx context.Context, now time.Time) ([]CallLog, error) {
	query := `
		SELECT cl.id, cl.lead_id, cl.campaign_id, cl.call_outcome, cl.notes,
			cl.scheduled_callback, cl.called_at, cl.created_at,
			l.business_name, l.phone_number
		FROM call_logs cl
		JOIN leads l ON l.id = cl.lead_id
		WHERE cl.scheduled_callback IS NOT NULL AND cl.scheduled_callback <= $1
		ORDER BY cl.scheduled_callback ASC`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list due callbacks: %w", err)
	}
	defer rows.Close()

	return scanJoinedCallLogs(rows)
}

// Delete removes a call log entry.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM call_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete call log: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(callLogNotFoundMessage)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJoinedCallLog(row rowScanner) (CallLog, error) {
	var log CallLog
	err := row.Scan(
		&log.ID, &log.LeadID, &log.CampaignID, &log.Outcome, &log.Notes,
		&log.ScheduledCallback, &log.CalledAt, &log.CreatedAt,
		&log.BusinessName, &log.PhoneNumber,
	)
	return log, err
}

func scanJoinedCallLogs(rows pgx.Rows) ([]CallLog, error) {
	var results []CallLog
	for rows.Next() {
		log, err := scanJoinedCallLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan call log: %w", err)
		}
		results = append(results, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate call logs: %w", err)
	}
	return results, nil
}
