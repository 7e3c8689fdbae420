package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"scenario-booking/internal/domain/recurrence"
	"scenario-booking/internal/infra"
	"scenario-booking/internal/pkg/pgconv"
)

const definitionColumns = `id, scenario_id, requester_id, pattern, range_start, range_end,
	time_start, time_end, interval_n, weekday_bits, day_of_month, max_occurrences,
	active, created_at, updated_at`

type RecurrenceRepository struct {
	pool *pgxpool.Pool
}

func NewRecurrenceRepository(pool *pgxpool.Pool) *RecurrenceRepository {
	return &RecurrenceRepository{pool: pool}
}

func (r *RecurrenceRepository) Create(ctx context.Context, def *recurrence.Definition) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO recurrence_definitions (id, scenario_id, requester_id, pattern,
	range_start, range_end, time_start, time_end, interval_n, weekday_bits,
	day_of_month, max_occurrences, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		def.ID(), def.ScenarioID(), def.RequesterID(), def.Pattern().String(),
		def.RangeStart(), def.RangeEnd(),
		def.TimeStart().String(), def.TimeEnd().String(),
		def.Interval(), int32(def.Weekdays().Bits()), def.DayOfMonth(),
		pgconv.IntPtrToPgtype(def.MaxOccurrences()), def.Active(),
		def.CreatedAt(), def.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create recurrence definition", err)
	}
	return nil
}

func (r *RecurrenceRepository) Update(ctx context.Context, def *recurrence.Definition) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE recurrence_definitions SET active = $2, updated_at = $3 WHERE id = $1`,
		def.ID(), def.Active(), def.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update recurrence definition", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("recurrence definition not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *RecurrenceRepository) FindByID(ctx context.Context, id uuid.UUID) (*recurrence.Definition, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+definitionColumns+` FROM recurrence_definitions WHERE id = $1`, id)

	def, err := scanDefinition(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("recurrence definition not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find recurrence definition by ID", err)
	}
	return def, nil
}

func (r *RecurrenceRepository) FindActive(ctx context.Context, asOf time.Time) ([]*recurrence.Definition, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+definitionColumns+`
FROM recurrence_definitions
WHERE active AND range_end >= $1::date
ORDER BY created_at`,
		asOf,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query active definitions", err)
	}
	defer rows.Close()

	var result []*recurrence.Definition
	for rows.Next() {
		def, scanErr := scanDefinition(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan definition row", scanErr)
		}
		result = append(result, def)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate definition rows", err)
	}
	return result, nil
}

func scanDefinition(row pgx.Row) (*recurrence.Definition, error) {
	var (
		id, scenarioID, requesterID uuid.UUID
		pattern                     string
		rangeStart, rangeEnd        time.Time
		timeStart, timeEnd          string
		interval                    int
		weekdayBits                 int32
		dayOfMonth                  int
		maxOccurrences              pgtype.Int4
		active                      bool
		createdAt, updatedAt        time.Time
	)
	if err := row.Scan(&id, &scenarioID, &requesterID, &pattern, &rangeStart, &rangeEnd,
		&timeStart, &timeEnd, &interval, &weekdayBits, &dayOfMonth, &maxOccurrences,
		&active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	ts, err := recurrence.ParseTimeOfDay(timeStart)
	if err != nil {
		return nil, err
	}
	te, err := recurrence.ParseTimeOfDay(timeEnd)
	if err != nil {
		return nil, err
	}

	return recurrence.ReconstructDefinition(
		id, scenarioID, requesterID, recurrence.Pattern(pattern),
		rangeStart, rangeEnd, ts, te, interval,
		recurrence.WeekdaysFromBits(uint8(weekdayBits)), dayOfMonth,
		pgconv.IntPtrFromPgtype(maxOccurrences), active, createdAt, updatedAt,
	), nil
}
