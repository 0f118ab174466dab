package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

// InitGenesis registers the proxies of genState. The state must have been
// validated.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) {
	for _, p := range genState.Proxies {
		proxy := sdk.MustAccAddressFromBech32(p.Address)
		k.ensureAccount(ctx, proxy)
		k.setProxy(ctx, proxy, sdk.MustAccAddressFromBech32(p.Admin))
	}
}

// ExportGenesis returns the registered proxies.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	genesis := types.DefaultGenesis()
	k.IterateProxyAccounts(ctx, func(proxy, admin sdk.AccAddress) bool {
		genesis.Proxies = append(genesis.Proxies, types.ProxyAccount{
			Address: proxy.String(),
			Admin:   admin.String(),
		})
		return false
	})
	return genesis
}
