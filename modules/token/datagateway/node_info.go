package datagateway

import (
	"context"

	"github.com/usdm-network/ledger-node/modules/token/internal/entity"
)

type NodeInfoDataGateway interface {
	// GetLatestNodeState returns the most recent node state record. Returns errs.NotFound if the node never ran against this database.
	GetLatestNodeState(ctx context.Context) (entity.NodeState, error)
	SetNodeState(ctx context.Context, state entity.NodeState) error
}
