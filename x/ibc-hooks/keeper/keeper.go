package keeper

import (
	"encoding/json"
	"fmt"

	"github.com/cometbft/cometbft/libs/log"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/oraichain/cw1-ibc-hooks/x/ibc-hooks/types"
)

type (
	Keeper struct {
		storeKey storetypes.StoreKey
	}
)

// NewKeeper returns a new instance of the x/ibchooks keeper
func NewKeeper(
	storeKey storetypes.StoreKey,
) Keeper {
	return Keeper{
		storeKey: storeKey,
	}
}

// Logger returns a logger for the x/ibchooks module
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

func GetPacketKey(channel string, packetSequence uint64) []byte {
	return []byte(fmt.Sprintf("%s::%d", channel, packetSequence))
}

// StoreHookResult records the outcome of the directive carried by a received packet
func (k Keeper) StoreHookResult(ctx sdk.Context, channel string, packetSequence uint64, result types.HookResult) {
	bz, err := json.Marshal(result)
	if err != nil {
		panic(err)
	}
	store := ctx.KVStore(k.storeKey)
	store.Set(GetPacketKey(channel, packetSequence), bz)
}

// GetHookResult returns the outcome recorded for a received packet
func (k Keeper) GetHookResult(ctx sdk.Context, channel string, packetSequence uint64) (types.HookResult, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(GetPacketKey(channel, packetSequence))
	if bz == nil {
		return types.HookResult{}, false
	}
	var result types.HookResult
	if err := json.Unmarshal(bz, &result); err != nil {
		return types.HookResult{}, false
	}
	return result, true
}

// DeleteHookResult prunes the outcome recorded for a received packet
func (k Keeper) DeleteHookResult(ctx sdk.Context, channel string, packetSequence uint64) {
	store := ctx.KVStore(k.storeKey)
	store.Delete(GetPacketKey(channel, packetSequence))
}
