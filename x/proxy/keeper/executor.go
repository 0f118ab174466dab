package keeper

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

// Execute runs actions in order on behalf of proxy. Direct calls must come from
// the proxy's admin; hook triggered calls carry their own authorization, the
// proxy being the receiver of the packet that asked for them.
//
// The batch is atomic: state changes are only written when every action
// succeeds. A failing action yields an *types.ExecutionError and the outcomes
// gathered up to and including the failure.
func (k Keeper) Execute(ctx sdk.Context, proxy, caller sdk.AccAddress, actions []types.Action, provenance types.Provenance) ([]types.ActionOutcome, error) {
	if err := k.authorize(ctx, proxy, caller, provenance); err != nil {
		return nil, err
	}
	return k.executeBatch(ctx, proxy, caller, actions, provenance)
}

// ExecuteDirect is the admin entry point. funds are moved from caller to the
// proxy before the batch runs, inside the same atomic scope.
func (k Keeper) ExecuteDirect(ctx sdk.Context, proxy, caller sdk.AccAddress, msg types.ExecuteMsg, funds sdk.Coins) ([]types.ActionOutcome, error) {
	if err := k.authorize(ctx, proxy, caller, types.ProvenanceDirect); err != nil {
		return nil, err
	}
	actions, err := msg.Actions()
	if err != nil {
		return nil, err
	}

	cacheCtx, writeCache := ctx.CacheContext()
	if !funds.IsZero() {
		if err := k.bankKeeper.SendCoins(cacheCtx, caller, proxy, funds); err != nil {
			return nil, mapBankError(err)
		}
	}
	outcomes, err := k.executeBatch(cacheCtx, proxy, caller, actions, types.ProvenanceDirect)
	if err != nil {
		return outcomes, err
	}
	writeCache()
	return outcomes, nil
}

func (k Keeper) authorize(ctx sdk.Context, proxy, caller sdk.AccAddress, provenance types.Provenance) error {
	admin, found := k.getAdmin(ctx, proxy)
	if !found {
		return errorsmod.Wrap(types.ErrProxyNotFound, proxy.String())
	}
	switch provenance {
	case types.ProvenanceDirect:
		if !admin.Equals(caller) {
			return errorsmod.Wrapf(types.ErrUnauthorized, "%s is not the admin of %s", caller, proxy)
		}
		return nil
	case types.ProvenanceHookTriggered:
		return nil
	default:
		return errorsmod.Wrapf(types.ErrUnauthorized, "unknown provenance %s", provenance)
	}
}

// executeBatch runs the actions on a child gas meter capped at what ctx has
// left, so running out of gas inside an action is reported like any other
// action failure. The gas used is charged to ctx either way.
func (k Keeper) executeBatch(ctx sdk.Context, proxy, caller sdk.AccAddress, actions []types.Action, provenance types.Provenance) ([]types.ActionOutcome, error) {
	if limit := k.config.MaxActions; limit > 0 && len(actions) > limit {
		return nil, errorsmod.Wrapf(types.ErrInvalidAction, "batch of %d actions exceeds the limit of %d", len(actions), limit)
	}

	gasMeter := storetypes.NewGasMeter(ctx.GasMeter().GasRemaining())
	defer func() {
		ctx.GasMeter().ConsumeGas(gasMeter.GasConsumedToLimit(), "proxy batch")
	}()

	cacheCtx, writeCache := ctx.WithGasMeter(gasMeter).CacheContext()
	outcomes := make([]types.ActionOutcome, 0, len(actions))
	for i, action := range actions {
		actionCtx := cacheCtx.WithEventManager(sdk.NewEventManager())
		data, err := k.safeDispatch(actionCtx, proxy, action)

		outcome := types.ActionOutcome{Index: i, Kind: action.Kind(), Data: data}
		if err != nil {
			outcome.Error = err.Error()
			outcomes = append(outcomes, outcome)
			k.metrics.observeBatch(outcomes, false)

			k.Logger(ctx).Debug("proxy batch reverted",
				"proxy", proxy.String(),
				"provenance", provenance.String(),
				"index", i,
				"kind", string(action.Kind()),
				"error", err,
			)
			return outcomes, &types.ExecutionError{Index: i, Kind: action.Kind(), Err: err}
		}

		outcome.Events = actionCtx.EventManager().Events()
		cacheCtx.EventManager().EmitEvents(outcome.Events)
		outcomes = append(outcomes, outcome)
	}

	writeCache()
	k.metrics.observeBatch(outcomes, true)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeProxyExecute,
		sdk.NewAttribute(types.AttributeKeyProxy, proxy.String()),
		sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
		sdk.NewAttribute(types.AttributeKeyProvenance, provenance.String()),
		sdk.NewAttribute(types.AttributeKeyActions, strconv.Itoa(len(actions))),
	))
	k.Logger(ctx).Debug("proxy batch executed", "proxy", proxy.String(), "provenance", provenance.String(), "actions", len(actions))

	return outcomes, nil
}

// safeDispatch turns a panic raised while running action, out of gas included,
// into an error.
func (k Keeper) safeDispatch(ctx sdk.Context, proxy sdk.AccAddress, action types.Action) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, types.RecoveredError(r)
		}
	}()
	return k.dispatch(ctx, proxy, action)
}
