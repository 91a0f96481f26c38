package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
	"github.com/usdm-network/ledger-node/modules/token/usecase"
	"github.com/usdm-network/ledger-node/pkg/decimals"
)

type HttpHandler struct {
	usecase *usecase.Usecase
}

func New(usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
	}
}

type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Result *T      `json:"result,omitempty"`
}

// amount renders a token quantity both in base units and as a display
// string with the implied decimal point.
type amount struct {
	BaseUnits uint128.Uint128 `json:"baseUnits"`
	Display   string          `json:"display"`
}

func newAmount(value uint128.Uint128) amount {
	return amount{
		BaseUnits: value,
		Display:   decimals.ToDecimal(value, ledger.Decimals).StringFixed(ledger.Decimals),
	}
}

func parseAddress(field, raw string) (ledger.Address, error) {
	if raw == "" {
		return ledger.Address{}, errors.Errorf("'%s' is required", field)
	}
	address, err := ledger.NewAddressFromString(raw)
	if err != nil {
		return ledger.Address{}, errors.Errorf("'%s' is not a valid address", field)
	}
	return address, nil
}

// parseAmount accepts a decimal string in nominal units, e.g. "100.5"
// for 100.5 USDM, and converts it to base units.
func parseAmount(field, raw string) (uint128.Uint128, error) {
	if raw == "" {
		return uint128.Zero, errors.Errorf("'%s' is required", field)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return uint128.Zero, errors.Errorf("'%s' is not a valid amount", field)
	}
	baseUnits, err := decimals.ToUint128(value, ledger.Decimals)
	if err != nil {
		return uint128.Zero, errors.Errorf("'%s' is not a valid amount: %s", field, err)
	}
	return baseUnits, nil
}

// parseInfiniteAmount is parseAmount plus the "max" sentinel used to
// set an unlimited allowance.
func parseInfiniteAmount(field, raw string) (uint128.Uint128, error) {
	if raw == "max" {
		return uint128.Max, nil
	}
	return parseAmount(field, raw)
}
