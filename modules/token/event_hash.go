package token

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

// EventHashVersion is bumped whenever the hash payload format changes.
// Nodes refuse to run against a journal written with a different
// version.
const EventHashVersion = 1

// EventHash is a double-SHA256 digest over a journal entry. The
// cumulative hash chains entries so two nodes can compare whole journal
// prefixes with a single value.
type EventHash [sha256.Size]byte

func (h EventHash) String() string {
	return hex.EncodeToString(h[:])
}

func (h EventHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *EventHash) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return errors.Wrap(err, "failed to decode event hash")
	}
	if len(b) != sha256.Size {
		return errors.Errorf("invalid event hash length %d", len(b))
	}
	copy(h[:], b)
	return nil
}

func calculateEventHash(envelope ledger.Envelope) (EventHash, error) {
	payload, err := ledger.MarshalEventJSON(envelope.Event)
	if err != nil {
		return EventHash{}, errors.Wrap(err, "failed to get hash payload")
	}

	var buf bytes.Buffer
	buf.WriteString("payload:v" + strconv.Itoa(EventHashVersion) + ":")
	_ = binary.Write(&buf, binary.BigEndian, envelope.Sequence)
	_ = binary.Write(&buf, binary.BigEndian, envelope.Timestamp.UTC().UnixNano())
	buf.WriteString(string(envelope.Event.Type()))
	buf.Write(payload)
	return doubleHash(buf.Bytes()), nil
}

func chainEventHash(prev, eventHash EventHash) EventHash {
	var buf [2 * sha256.Size]byte
	copy(buf[:sha256.Size], prev[:])
	copy(buf[sha256.Size:], eventHash[:])
	return doubleHash(buf[:])
}

func doubleHash(b []byte) EventHash {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}
