package ledger

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/usdm-network/ledger-node/common/errs"
)

// MarshalEventJSON encodes an event payload for journal storage. Amounts
// are encoded as decimal strings and addresses as 0x-prefixed hex, so the
// payloads stay readable in the database.
func MarshalEventJSON(event Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal %s event", event.Type())
	}
	return payload, nil
}

// UnmarshalEventJSON decodes a journal payload back into its typed event.
// Returns errs.Unsupported for unknown event types.
func UnmarshalEventJSON(eventType EventType, payload []byte) (Event, error) {
	var event Event
	switch eventType {
	case EventTypeTransfer:
		event = &EventTransfer{}
	case EventTypeApproval:
		event = &EventApproval{}
	case EventTypeMint:
		event = &EventMint{}
	case EventTypeBurn:
		event = &EventBurn{}
	case EventTypeBlacklisted:
		event = &EventBlacklisted{}
	case EventTypeUnBlacklisted:
		event = &EventUnBlacklisted{}
	case EventTypePaused:
		event = &EventPaused{}
	case EventTypeUnpaused:
		event = &EventUnpaused{}
	case EventTypeMaxMintPerTransactionUpdated:
		event = &EventMaxMintPerTransactionUpdated{}
	case EventTypeMaxTotalSupplyUpdated:
		event = &EventMaxTotalSupplyUpdated{}
	case EventTypeReservesUpdated:
		event = &EventReservesUpdated{}
	case EventTypeReservesAdded:
		event = &EventReservesAdded{}
	case EventTypeReservesRemoved:
		event = &EventReservesRemoved{}
	case EventTypeRoleGranted:
		event = &EventRoleGranted{}
	case EventTypeRoleRevoked:
		event = &EventRoleRevoked{}
	default:
		return nil, errors.Wrapf(errs.Unsupported, "unknown event type %q", eventType)
	}
	if err := json.Unmarshal(payload, event); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal %s event", eventType)
	}
	return derefEvent(event), nil
}

// derefEvent returns the value form of a decoded event pointer so that
// type switches over Event see the same concrete types the ledger emits.
func derefEvent(event Event) Event {
	switch e := event.(type) {
	case *EventTransfer:
		return *e
	case *EventApproval:
		return *e
	case *EventMint:
		return *e
	case *EventBurn:
		return *e
	case *EventBlacklisted:
		return *e
	case *EventUnBlacklisted:
		return *e
	case *EventPaused:
		return *e
	case *EventUnpaused:
		return *e
	case *EventMaxMintPerTransactionUpdated:
		return *e
	case *EventMaxTotalSupplyUpdated:
		return *e
	case *EventReservesUpdated:
		return *e
	case *EventReservesRemoved:
		return *e
	case *EventReservesAdded:
		return *e
	case *EventRoleGranted:
		return *e
	case *EventRoleRevoked:
		return *e
	default:
		return event
	}
}
