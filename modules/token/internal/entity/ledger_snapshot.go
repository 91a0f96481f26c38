package entity

import (
	"time"

	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

// LedgerSnapshot is a persisted full-state snapshot. Recovery restores
// the latest snapshot and applies the journal tail after its sequence.
type LedgerSnapshot struct {
	Sequence  uint64
	CreatedAt time.Time
	// CumulativeEventHash is the journal hash chain value as of Sequence,
	// hex encoded. Restart resumes the chain from here.
	CumulativeEventHash string
	State               ledger.Snapshot
}
