package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scenarios (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	kind TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	capacity INT NOT NULL DEFAULT 1,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS recurrence_definitions (
	id UUID PRIMARY KEY,
	scenario_id UUID NOT NULL REFERENCES scenarios(id),
	requester_id UUID NOT NULL,
	pattern TEXT NOT NULL,
	range_start DATE NOT NULL,
	range_end DATE NOT NULL,
	time_start TEXT NOT NULL,
	time_end TEXT NOT NULL,
	interval_n INT NOT NULL DEFAULT 1,
	weekday_bits INT NOT NULL DEFAULT 0,
	day_of_month INT NOT NULL DEFAULT 0,
	max_occurrences INT,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS reservations (
	id UUID PRIMARY KEY,
	scenario_id UUID NOT NULL REFERENCES scenarios(id),
	requester_id UUID NOT NULL,
	start_at TIMESTAMPTZ NOT NULL,
	end_at TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL,
	rejection_reason TEXT,
	recurrence_id UUID REFERENCES recurrence_definitions(id),
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CHECK (start_at < end_at)
);

CREATE TABLE IF NOT EXISTS alerts (
	id UUID PRIMARY KEY,
	reservation_id UUID NOT NULL REFERENCES reservations(id),
	kind TEXT NOT NULL,
	scheduled_at TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL,
	channels TEXT[] NOT NULL DEFAULT '{}',
	sent_at TIMESTAMPTZ,
	attempt_count INT NOT NULL DEFAULT 0,
	last_failure_reason TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reservations_scenario_window
	ON reservations(scenario_id, start_at, end_at);
CREATE INDEX IF NOT EXISTS idx_reservations_recurrence
	ON reservations(recurrence_id) WHERE recurrence_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_alerts_due
	ON alerts(scheduled_at) WHERE status IN ('pending', 'scheduled');
CREATE INDEX IF NOT EXISTS idx_alerts_reservation ON alerts(reservation_id);
CREATE INDEX IF NOT EXISTS idx_definitions_active
	ON recurrence_definitions(range_end) WHERE active;
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
