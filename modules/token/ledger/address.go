package ledger

import (
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/usdm-network/ledger-node/common/errs"
)

// AddressLength is the length of an account address in bytes.
const AddressLength = 20

// Address is a 20-byte account identifier. The zero value is the null
// address sentinel used to mark mint credits and burn debits.
type Address [AddressLength]byte

// ZeroAddress is the null address sentinel.
var ZeroAddress = Address{}

var ErrInvalidAddress = errs.ErrorKind("invalid address: must be 0x-prefixed hex of 20 bytes")

// NewAddressFromString parses a 0x-prefixed, 40-hex-digit address string.
func NewAddressFromString(s string) (Address, error) {
	raw, ok := strings.CutPrefix(s, "0x")
	if !ok {
		raw, ok = strings.CutPrefix(s, "0X")
	}
	if !ok {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "missing 0x prefix in %q", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "non-hex characters in %q", s)
	}
	if len(b) != AddressLength {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "got %d bytes in %q", len(b), s)
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero reports whether a is the null address sentinel.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := NewAddressFromString(string(text))
	if err != nil {
		return errors.WithStack(err)
	}
	*a = addr
	return nil
}
