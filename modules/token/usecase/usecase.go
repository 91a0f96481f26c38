package usecase

import (
	"github.com/usdm-network/ledger-node/modules/token/datagateway"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

// Usecase exposes ledger operations and journal queries to transports.
// All state mutations go through the in-memory ledger; the journal
// processor persists the resulting events asynchronously.
type Usecase struct {
	ledger    *ledger.Ledger
	journalDg datagateway.JournalDataGateway
}

func New(l *ledger.Ledger, journalDg datagateway.JournalDataGateway) *Usecase {
	return &Usecase{
		ledger:    l,
		journalDg: journalDg,
	}
}
