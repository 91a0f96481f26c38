package ledger

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/usdm-network/ledger-node/common/errs"
)

// EventType identifies a kind of ledger event.
type EventType string

const (
	EventTypeTransfer                     EventType = "TRANSFER"
	EventTypeApproval                     EventType = "APPROVAL"
	EventTypeMint                         EventType = "MINT"
	EventTypeBurn                         EventType = "BURN"
	EventTypeBlacklisted                  EventType = "BLACKLISTED"
	EventTypeUnBlacklisted                EventType = "UNBLACKLISTED"
	EventTypePaused                       EventType = "PAUSED"
	EventTypeUnpaused                     EventType = "UNPAUSED"
	EventTypeMaxMintPerTransactionUpdated EventType = "MAX_MINT_PER_TRANSACTION_UPDATED"
	EventTypeMaxTotalSupplyUpdated        EventType = "MAX_TOTAL_SUPPLY_UPDATED"
	EventTypeReservesUpdated              EventType = "RESERVES_UPDATED"
	EventTypeReservesAdded                EventType = "RESERVES_ADDED"
	EventTypeReservesRemoved              EventType = "RESERVES_REMOVED"
	EventTypeRoleGranted                  EventType = "ROLE_GRANTED"
	EventTypeRoleRevoked                  EventType = "ROLE_REVOKED"
)

var allEventTypes = map[EventType]struct{}{
	EventTypeTransfer:                     {},
	EventTypeApproval:                     {},
	EventTypeMint:                         {},
	EventTypeBurn:                         {},
	EventTypeBlacklisted:                  {},
	EventTypeUnBlacklisted:                {},
	EventTypePaused:                       {},
	EventTypeUnpaused:                     {},
	EventTypeMaxMintPerTransactionUpdated: {},
	EventTypeMaxTotalSupplyUpdated:        {},
	EventTypeReservesUpdated:              {},
	EventTypeReservesAdded:                {},
	EventTypeReservesRemoved:              {},
	EventTypeRoleGranted:                  {},
	EventTypeRoleRevoked:                  {},
}

// NewEventTypeFromString parses an event type identifier. Returns
// errs.Unsupported for unknown identifiers.
func NewEventTypeFromString(s string) (EventType, error) {
	eventType := EventType(s)
	if _, ok := allEventTypes[eventType]; !ok {
		return "", errors.Wrapf(errs.Unsupported, "unknown event type %q", s)
	}
	return eventType, nil
}

// Event is a single ledger state transition record.
type Event interface {
	Type() EventType
}

// Envelope wraps an event with the node-assigned sequence number and the
// ledger clock reading at emission time. Sequence numbers are assigned
// under the ledger write lock, so the envelope stream totally orders all
// state changes.
type Envelope struct {
	Sequence  uint64
	Timestamp time.Time
	Event     Event
}

// EventSink receives every event emitted by the ledger, in sequence
// order, while the ledger write lock is held. Implementations must not
// call back into the ledger.
type EventSink interface {
	Publish(envelope Envelope)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Publish(Envelope) {}

type EventTransfer struct {
	From   Address         `json:"from"`
	To     Address         `json:"to"`
	Amount uint128.Uint128 `json:"amount"`
}

func (EventTransfer) Type() EventType { return EventTypeTransfer }

type EventApproval struct {
	Owner   Address         `json:"owner"`
	Spender Address         `json:"spender"`
	Amount  uint128.Uint128 `json:"amount"`
}

func (EventApproval) Type() EventType { return EventTypeApproval }

type EventMint struct {
	Minter Address         `json:"minter"`
	To     Address         `json:"to"`
	Amount uint128.Uint128 `json:"amount"`
}

func (EventMint) Type() EventType { return EventTypeMint }

type EventBurn struct {
	Burner Address         `json:"burner"`
	From   Address         `json:"from"`
	Amount uint128.Uint128 `json:"amount"`
}

func (EventBurn) Type() EventType { return EventTypeBurn }

type EventBlacklisted struct {
	Blacklister Address `json:"blacklister"`
	Account     Address `json:"account"`
	Reason      string  `json:"reason"`
}

func (EventBlacklisted) Type() EventType { return EventTypeBlacklisted }

type EventUnBlacklisted struct {
	Blacklister Address `json:"blacklister"`
	Account     Address `json:"account"`
}

func (EventUnBlacklisted) Type() EventType { return EventTypeUnBlacklisted }

type EventPaused struct {
	Pauser Address `json:"pauser"`
}

func (EventPaused) Type() EventType { return EventTypePaused }

type EventUnpaused struct {
	Pauser Address `json:"pauser"`
}

func (EventUnpaused) Type() EventType { return EventTypeUnpaused }

type EventMaxMintPerTransactionUpdated struct {
	Admin    Address         `json:"admin"`
	OldLimit uint128.Uint128 `json:"oldLimit"`
	NewLimit uint128.Uint128 `json:"newLimit"`
}

func (EventMaxMintPerTransactionUpdated) Type() EventType {
	return EventTypeMaxMintPerTransactionUpdated
}

type EventMaxTotalSupplyUpdated struct {
	Admin    Address         `json:"admin"`
	OldLimit uint128.Uint128 `json:"oldLimit"`
	NewLimit uint128.Uint128 `json:"newLimit"`
}

func (EventMaxTotalSupplyUpdated) Type() EventType { return EventTypeMaxTotalSupplyUpdated }

// EventReservesUpdated is the general transparency event fired on every
// reserve attestation write. Ratio is the collateralization ratio in
// basis points computed at emission time.
type EventReservesUpdated struct {
	Manager       Address         `json:"manager"`
	TotalReserves uint128.Uint128 `json:"totalReserves"`
	TotalSupply   uint128.Uint128 `json:"totalSupply"`
	Ratio         uint128.Uint128 `json:"ratio"`
}

func (EventReservesUpdated) Type() EventType { return EventTypeReservesUpdated }

type EventReservesAdded struct {
	Manager     Address         `json:"manager"`
	Amount      uint128.Uint128 `json:"amount"`
	ReserveType string          `json:"reserveType"`
}

func (EventReservesAdded) Type() EventType { return EventTypeReservesAdded }

type EventReservesRemoved struct {
	Manager Address         `json:"manager"`
	Amount  uint128.Uint128 `json:"amount"`
	Reason  string          `json:"reason"`
}

func (EventReservesRemoved) Type() EventType { return EventTypeReservesRemoved }

type EventRoleGranted struct {
	Admin   Address `json:"admin"`
	Role    Role    `json:"role"`
	Account Address `json:"account"`
}

func (EventRoleGranted) Type() EventType { return EventTypeRoleGranted }

type EventRoleRevoked struct {
	Admin   Address `json:"admin"`
	Role    Role    `json:"role"`
	Account Address `json:"account"`
}

func (EventRoleRevoked) Type() EventType { return EventTypeRoleRevoked }
