package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	ModuleName = "proxy"
	StoreKey   = ModuleName

	// MaxSaltSize bounds the salt used to derive a proxy address.
	MaxSaltSize = 64
)

var ProxyAccountPrefix = []byte{0x01}

// ProxyAccountKey returns the store key of the admin record for a proxy account.
func ProxyAccountKey(proxy sdk.AccAddress) []byte {
	return append(append([]byte{}, ProxyAccountPrefix...), address.MustLengthPrefix(proxy)...)
}

// ProxyAddress derives the predictable address of the proxy created by admin with salt.
func ProxyAddress(admin sdk.AccAddress, salt []byte) sdk.AccAddress {
	key := append(address.MustLengthPrefix(admin), salt...)
	return address.Module(ModuleName, key)
}
