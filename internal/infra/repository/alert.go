package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"scenario-booking/internal/domain/alert"
	"scenario-booking/internal/infra"
	"scenario-booking/internal/pkg/pgconv"
)

const alertColumns = `id, reservation_id, kind, scheduled_at, status, channels,
	sent_at, attempt_count, last_failure_reason, created_at, updated_at`

type AlertRepository struct {
	pool *pgxpool.Pool
}

func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

func (r *AlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO alerts (id, reservation_id, kind, scheduled_at, status, channels,
	sent_at, attempt_count, last_failure_reason, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID(), a.ReservationID(), a.Kind().String(), a.ScheduledAt(), a.Status().String(),
		channelStrings(a.Channels()),
		pgconv.TimePtrToPgtype(a.SentAt()), a.AttemptCount(),
		pgconv.StringPtrToPgtype(a.LastFailureReason()),
		a.CreatedAt(), a.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create alert", err)
	}
	return nil
}

func (r *AlertRepository) Update(ctx context.Context, a *alert.Alert) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE alerts
SET status = $2, sent_at = $3, attempt_count = $4, last_failure_reason = $5, updated_at = $6
WHERE id = $1`,
		a.ID(), a.Status().String(),
		pgconv.TimePtrToPgtype(a.SentAt()), a.AttemptCount(),
		pgconv.StringPtrToPgtype(a.LastFailureReason()), a.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update alert", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("alert not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *AlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*alert.Alert, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)

	a, err := scanAlert(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("alert not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find alert by ID", err)
	}
	return a, nil
}

func (r *AlertRepository) FindDue(ctx context.Context, now time.Time) ([]*alert.Alert, error) {
	return r.queryAlerts(ctx, `
SELECT `+alertColumns+`
FROM alerts
WHERE status IN ('pending', 'scheduled') AND scheduled_at <= $1
ORDER BY scheduled_at`, now)
}

func (r *AlertRepository) FindUnsentByReservation(ctx context.Context, reservationID uuid.UUID) ([]*alert.Alert, error) {
	return r.queryAlerts(ctx, `
SELECT `+alertColumns+`
FROM alerts
WHERE reservation_id = $1 AND status IN ('pending', 'scheduled', 'failed')
ORDER BY scheduled_at`, reservationID)
}

func (r *AlertRepository) FindExpired(ctx context.Context, now time.Time) ([]*alert.Alert, error) {
	return r.queryAlerts(ctx, `
SELECT `+alertColumns+`
FROM alerts
WHERE status IN ('pending', 'scheduled') AND scheduled_at < $1
ORDER BY scheduled_at`, now)
}

func (r *AlertRepository) queryAlerts(ctx context.Context, sql string, arg any) ([]*alert.Alert, error) {
	rows, err := r.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query alerts", err)
	}
	defer rows.Close()

	var result []*alert.Alert
	for rows.Next() {
		a, scanErr := scanAlert(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan alert row", scanErr)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate alert rows", err)
	}
	return result, nil
}

func scanAlert(row pgx.Row) (*alert.Alert, error) {
	var (
		id, reservationID    uuid.UUID
		kind, status         string
		scheduledAt          time.Time
		channels             []string
		sentAt               pgtype.Timestamptz
		attemptCount         int
		lastFailureReason    pgtype.Text
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &reservationID, &kind, &scheduledAt, &status, &channels,
		&sentAt, &attemptCount, &lastFailureReason, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	chs := make([]alert.Channel, len(channels))
	for i, c := range channels {
		chs[i] = alert.Channel(c)
	}
	return alert.ReconstructAlert(
		id, reservationID, alert.Kind(kind), scheduledAt, alert.Status(status),
		chs, pgconv.TimePtrFromPgtype(sentAt), attemptCount,
		pgconv.StringPtrFromPgtype(lastFailureReason), createdAt, updatedAt,
	), nil
}

func channelStrings(channels []alert.Channel) []string {
	out := make([]string, len(channels))
	for i, c := range channels {
		out[i] = c.String()
	}
	return out
}
