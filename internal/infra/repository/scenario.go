package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"scenario-booking/internal/domain/scenario"
	"scenario-booking/internal/infra"
	"scenario-booking/internal/pkg/pgconv"
)

type ScenarioRepository struct {
	pool *pgxpool.Pool
}

func NewScenarioRepository(pool *pgxpool.Pool) *ScenarioRepository {
	return &ScenarioRepository{pool: pool}
}

func (r *ScenarioRepository) FindByID(ctx context.Context, id uuid.UUID) (*scenario.Scenario, error) {
	var (
		name, kind, location string
		capacity             int
	)
	err := r.pool.QueryRow(ctx, `
SELECT name, kind, location, capacity FROM scenarios WHERE id = $1`, id).
		Scan(&name, &kind, &location, &capacity)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("scenario not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find scenario by ID", err)
	}

	s, err := scenario.NewScenario(id, name, kind, location, capacity)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid scenario row", err)
	}
	return s, nil
}
