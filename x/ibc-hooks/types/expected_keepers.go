package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	proxytypes "github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

// ProxyKeeper runs the directives carried by inbound transfers.
type ProxyKeeper interface {
	Execute(ctx sdk.Context, proxy, caller sdk.AccAddress, actions []proxytypes.Action, provenance proxytypes.Provenance) ([]proxytypes.ActionOutcome, error)
}
