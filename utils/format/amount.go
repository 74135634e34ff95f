// Package format converts between human readable NEAR amounts and
// on-chain yoctoNEAR balances.
package format

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// NearNominationExp is the number of decimal places in 1 NEAR
const NearNominationExp = 24

var (
	// ErrInvalidAmount amount text is not a number
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount amounts on chain are unsigned
	ErrNegativeAmount = errors.New("amount can not be negative")
	// ErrTooPrecise more fractional digits than yoctoNEAR can hold
	ErrTooPrecise = errors.New("amount has more than 24 decimal places")
)

// ParseNearAmount converts "1.5" NEAR into its yoctoNEAR string.
// An empty amount stays empty.
func ParseNearAmount(amount string) (string, error) {
	amount = strings.TrimSpace(strings.ReplaceAll(amount, ",", ""))
	if amount == "" {
		return "", nil
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if d.Sign() < 0 {
		return "", fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	if d.Exponent() < -NearNominationExp {
		return "", fmt.Errorf("%w: %s", ErrTooPrecise, amount)
	}
	return d.Shift(NearNominationExp).StringFixed(0), nil
}

// ParseNearAmountBig is ParseNearAmount returning a big.Int, empty amount is zero
func ParseNearAmountBig(amount string) (*big.Int, error) {
	yocto, err := ParseNearAmount(amount)
	if err != nil {
		return nil, err
	}
	if yocto == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(yocto, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	return v, nil
}

// FormatNearAmount converts a yoctoNEAR balance into NEAR, trailing zeros trimmed
func FormatNearAmount(yocto string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(yocto))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidAmount, yocto)
	}
	return d.Shift(-NearNominationExp).String(), nil
}
