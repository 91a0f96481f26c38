package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/datagateway"
	"github.com/usdm-network/ledger-node/modules/token/internal/entity"
)

var _ datagateway.NodeInfoDataGateway = (*Repository)(nil)

func (r *Repository) GetLatestNodeState(ctx context.Context) (entity.NodeState, error) {
	var state entity.NodeState
	err := r.queryable().QueryRow(ctx, `
		SELECT db_version, event_hash_version, created_at FROM usdm_node_states
		ORDER BY id DESC LIMIT 1
	`).Scan(&state.DBVersion, &state.EventHashVersion, &state.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.NodeState{}, errors.WithStack(errs.NotFound)
		}
		return entity.NodeState{}, errors.Wrap(err, "error during query")
	}
	state.CreatedAt = state.CreatedAt.UTC()
	return state, nil
}

func (r *Repository) SetNodeState(ctx context.Context, state entity.NodeState) error {
	if _, err := r.queryable().Exec(ctx, `
		INSERT INTO usdm_node_states (db_version, event_hash_version) VALUES ($1, $2)
	`, state.DBVersion, state.EventHashVersion); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}
