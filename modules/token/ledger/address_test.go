package ledger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usdm-network/ledger-node/common/errs"
)

func TestNewAddressFromString(t *testing.T) {
	type testcase struct {
		name      string
		input     string
		assertErr error
	}
	testcases := []testcase{
		{
			name:  "valid lowercase",
			input: "0x00000000000000000000000000000000000000ff",
		},
		{
			name:  "valid mixed case",
			input: "0x52908400098527886E0F7030069857D2E4169EE7",
		},
		{
			name:      "missing prefix",
			input:     "00000000000000000000000000000000000000ff",
			assertErr: ErrInvalidAddress,
		},
		{
			name:      "too short",
			input:     "0xff",
			assertErr: ErrInvalidAddress,
		},
		{
			name:      "too long",
			input:     "0x0000000000000000000000000000000000000000ff",
			assertErr: ErrInvalidAddress,
		},
		{
			name:      "not hex",
			input:     "0x00000000000000000000000000000000000000zz",
			assertErr: ErrInvalidAddress,
		},
		{
			name:      "empty",
			input:     "",
			assertErr: ErrInvalidAddress,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := NewAddressFromString(tc.input)
			if tc.assertErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.assertErr)
				return
			}
			require.NoError(t, err)

			// String round trips through the parser
			parsed, err := NewAddressFromString(addr.String())
			require.NoError(t, err)
			assert.Equal(t, addr, parsed)
		})
	}
}

func TestAddressText(t *testing.T) {
	addr := testAddress(0xab)

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"0x00000000000000000000000000000000000000ab"`, string(raw))

	var decoded Address
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, ZeroAddress.IsZero())
	assert.False(t, testAddress(1).IsZero())
}

func TestNewRoleFromString(t *testing.T) {
	for _, name := range []string{"DEFAULT_ADMIN", "ADMIN", "MINTER", "BLACKLISTER", "PAUSER", "RESERVE_MANAGER"} {
		role, err := NewRoleFromString(name)
		require.NoError(t, err)
		assert.Equal(t, name, role.String())
		assert.True(t, role.IsValid())
	}

	_, err := NewRoleFromString("OWNER")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Unsupported)

	_, err = NewRoleFromString("minter")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.Unsupported)
}
