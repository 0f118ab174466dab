package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/holiman/uint256"
)

// Coin is the wire form of a native coin. Amount is the decimal encoding of an
// unsigned 128-bit integer.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// NewCoin returns a Coin for amount of denom.
func NewCoin(denom string, amount uint64) Coin {
	return Coin{Denom: denom, Amount: fmt.Sprintf("%d", amount)}
}

func (c Coin) String() string {
	return c.Amount + c.Denom
}

// parseUint128 returns the canonical decimal form of s, rejecting anything that
// does not fit in 128 bits.
func parseUint128(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty amount")
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return "", fmt.Errorf("amount %q: %w", s, err)
	}
	if v.BitLen() > 128 {
		return "", fmt.Errorf("amount %q overflows uint128", s)
	}
	return v.Dec(), nil
}

// normalizeCoins validates the wire coins and returns them in canonical form,
// keeping their order. A nil list stays nil and an empty one stays empty.
func normalizeCoins(coins []Coin) ([]Coin, error) {
	if coins == nil {
		return nil, nil
	}
	out := make([]Coin, len(coins))
	for i, c := range coins {
		if err := sdk.ValidateDenom(c.Denom); err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidAction, "coin %d: %s", i, err)
		}
		amount, err := parseUint128(c.Amount)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidAction, "coin %d: %s", i, err)
		}
		out[i] = Coin{Denom: c.Denom, Amount: amount}
	}
	return out, nil
}

// checkCanonicalCoins fails unless every coin is valid and its amount is
// already in canonical decimal form, e.g. "10" rather than "010".
func checkCanonicalCoins(coins []Coin) error {
	normalized, err := normalizeCoins(coins)
	if err != nil {
		return err
	}
	for i, c := range normalized {
		if c.Amount != coins[i].Amount {
			return errorsmod.Wrapf(ErrInvalidAction, "coin %d: amount %q is not canonical, use %q", i, coins[i].Amount, c.Amount)
		}
	}
	return nil
}

// ToSdkCoins converts wire coins into sorted, validated sdk.Coins. Zero amounts
// are dropped.
func ToSdkCoins(coins []Coin) (sdk.Coins, error) {
	out := sdk.Coins{}
	for i, c := range coins {
		if err := sdk.ValidateDenom(c.Denom); err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidAction, "coin %d: %s", i, err)
		}
		amount, ok := sdkmath.NewIntFromString(c.Amount)
		if !ok {
			return nil, errorsmod.Wrapf(ErrInvalidAction, "coin %d: invalid amount %q", i, c.Amount)
		}
		if amount.IsNegative() {
			return nil, errorsmod.Wrapf(ErrInvalidAction, "coin %d: negative amount", i)
		}
		if amount.IsZero() {
			continue
		}
		out = out.Add(sdk.NewCoin(c.Denom, amount))
	}
	if err := out.Validate(); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidAction, err.Error())
	}
	return out, nil
}

// FromSdkCoins converts sdk.Coins into their wire form.
func FromSdkCoins(coins sdk.Coins) []Coin {
	if len(coins) == 0 {
		return nil
	}
	out := make([]Coin, len(coins))
	for i, c := range coins {
		out[i] = Coin{Denom: c.Denom, Amount: c.Amount.String()}
	}
	return out
}
