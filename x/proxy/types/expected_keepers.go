package types

import (
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"github.com/cosmos/cosmos-sdk/baseapp"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

type AccountKeeper interface {
	HasAccount(ctx sdk.Context, addr sdk.AccAddress) bool
	NewAccount(ctx sdk.Context, acc authtypes.AccountI) authtypes.AccountI
	SetAccount(ctx sdk.Context, acc authtypes.AccountI)
}

type BankKeeper interface {
	SendCoins(ctx sdk.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	IsSendEnabledCoins(ctx sdk.Context, coins ...sdk.Coin) error
	BlockedAddr(addr sdk.AccAddress) bool
}

// ContractKeeper runs contract calls on behalf of a proxy. It is the subset of
// wasmd's permissioned keeper the executor needs.
type ContractKeeper interface {
	Execute(ctx sdk.Context, contractAddress, caller sdk.AccAddress, msg []byte, coins sdk.Coins) ([]byte, error)
}

var _ ContractKeeper = (wasmtypes.ContractOpsKeeper)(nil)

// MessageRouter resolves the handler of a raw protocol message.
type MessageRouter interface {
	Handler(msg sdk.Msg) baseapp.MsgServiceHandler
}

var _ MessageRouter = (*baseapp.MsgServiceRouter)(nil)
