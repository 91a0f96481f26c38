package entity

import (
	"time"

	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

// JournalEntry is one persisted ledger event. Sequence numbers are
// assigned by the ledger and are gapless from 1.
type JournalEntry struct {
	Sequence  uint64
	Timestamp time.Time
	EventType ledger.EventType
	Event     ledger.Event
}

// Envelope converts the entry back to the ledger's in-memory form.
func (e *JournalEntry) Envelope() ledger.Envelope {
	return ledger.Envelope{
		Sequence:  e.Sequence,
		Timestamp: e.Timestamp,
		Event:     e.Event,
	}
}
