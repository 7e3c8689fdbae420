package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"scenario-booking/internal/domain/reservation"
	"scenario-booking/internal/infra"
	"scenario-booking/internal/pkg/pgconv"
)

const reservationColumns = `id, scenario_id, requester_id, start_at, end_at, status,
	rejection_reason, recurrence_id, created_at, updated_at`

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO reservations (id, scenario_id, requester_id, start_at, end_at, status,
	rejection_reason, recurrence_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		res.ID(), res.ScenarioID(), res.RequesterID(),
		res.Slot().Start(), res.Slot().End(), res.Status().String(),
		pgconv.StringPtrToPgtype(res.RejectionReason()),
		pgconv.UUIDPtrToPgtype(res.RecurrenceID()),
		pgconv.TimeToPgtype(res.CreatedAt()), pgconv.TimeToPgtype(res.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE reservations
SET status = $2, rejection_reason = $3, updated_at = $4
WHERE id = $1`,
		res.ID(), res.Status().String(),
		pgconv.StringPtrToPgtype(res.RejectionReason()), pgconv.TimeToPgtype(res.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)

	res, err := scanReservation(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return res, nil
}

func (r *ReservationRepository) FindOverlapping(
	ctx context.Context,
	scenarioID uuid.UUID,
	start, end time.Time,
	statuses []reservation.Status,
) ([]*reservation.Reservation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+reservationColumns+`
FROM reservations
WHERE scenario_id = $1
  AND start_at < $3
  AND end_at > $2
  AND status = ANY($4)
ORDER BY start_at`,
		scenarioID, start, end, statusStrings(statuses),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping reservations", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		res, scanErr := scanReservation(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", scanErr)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}
	return result, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, scenarioID, requesterID uuid.UUID
		startAt, endAt              time.Time
		status                      string
		rejectionReason             pgtype.Text
		recurrenceID                pgtype.UUID
		createdAt, updatedAt        pgtype.Timestamptz
	)
	if err := row.Scan(&id, &scenarioID, &requesterID, &startAt, &endAt, &status,
		&rejectionReason, &recurrenceID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	slot, err := reservation.NewTimeSlot(startAt, endAt)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		id, scenarioID, requesterID, slot, reservation.Status(status),
		pgconv.StringPtrFromPgtype(rejectionReason),
		pgconv.UUIDPtrFromPgtype(recurrenceID),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func statusStrings(statuses []reservation.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}
