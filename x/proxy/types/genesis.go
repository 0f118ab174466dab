package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ProxyAccount is a registered proxy and the address allowed to call it directly.
type ProxyAccount struct {
	Address string `json:"address"`
	Admin   string `json:"admin"`
}

// GenesisState is the proxy module state exported and imported as JSON.
type GenesisState struct {
	Proxies []ProxyAccount `json:"proxies"`
}

func DefaultGenesis() *GenesisState {
	return &GenesisState{Proxies: []ProxyAccount{}}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	seen := make(map[string]struct{}, len(gs.Proxies))
	for i, p := range gs.Proxies {
		proxy, err := sdk.AccAddressFromBech32(p.Address)
		if err != nil {
			return errorsmod.Wrapf(ErrInvalidGenesis, "proxy %d address: %s", i, err)
		}
		if _, err := sdk.AccAddressFromBech32(p.Admin); err != nil {
			return errorsmod.Wrapf(ErrInvalidGenesis, "proxy %d admin: %s", i, err)
		}
		key := proxy.String()
		if _, ok := seen[key]; ok {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate proxy %s", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
