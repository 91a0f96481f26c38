package token

import (
	"testing"
	"time"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

func testEnvelope(sequence uint64) ledger.Envelope {
	var from, to ledger.Address
	from[ledger.AddressLength-1] = 1
	to[ledger.AddressLength-1] = 2
	return ledger.Envelope{
		Sequence:  sequence,
		Timestamp: time.Unix(1700000000, 0).UTC(),
		Event:     ledger.EventTransfer{From: from, To: to, Amount: uint128.From64(100)},
	}
}

func TestCalculateEventHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		first, err := calculateEventHash(testEnvelope(1))
		require.NoError(t, err)
		second, err := calculateEventHash(testEnvelope(1))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("sequence changes the hash", func(t *testing.T) {
		first, err := calculateEventHash(testEnvelope(1))
		require.NoError(t, err)
		second, err := calculateEventHash(testEnvelope(2))
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("payload changes the hash", func(t *testing.T) {
		envelope := testEnvelope(1)
		other := envelope
		other.Event = ledger.EventTransfer{
			From:   envelope.Event.(ledger.EventTransfer).From,
			To:     envelope.Event.(ledger.EventTransfer).To,
			Amount: uint128.From64(101),
		}

		first, err := calculateEventHash(envelope)
		require.NoError(t, err)
		second, err := calculateEventHash(other)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestChainEventHash(t *testing.T) {
	a, err := calculateEventHash(testEnvelope(1))
	require.NoError(t, err)
	b, err := calculateEventHash(testEnvelope(2))
	require.NoError(t, err)

	// chaining is order sensitive
	assert.NotEqual(t, chainEventHash(a, b), chainEventHash(b, a))
	// and not idempotent
	assert.NotEqual(t, chainEventHash(a, b), chainEventHash(chainEventHash(a, b), b))
}

func TestEventHashText(t *testing.T) {
	hash, err := calculateEventHash(testEnvelope(1))
	require.NoError(t, err)

	text, err := hash.MarshalText()
	require.NoError(t, err)

	var decoded EventHash
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, hash, decoded)

	assert.Error(t, decoded.UnmarshalText([]byte("zz")))
	assert.Error(t, decoded.UnmarshalText([]byte("abcd")))
}
