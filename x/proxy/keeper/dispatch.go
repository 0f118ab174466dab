package keeper

import (
	errorsmod "cosmossdk.io/errors"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

// dispatch runs a single action with proxy as sender and returns the data it
// produced.
func (k Keeper) dispatch(ctx sdk.Context, proxy sdk.AccAddress, action types.Action) ([]byte, error) {
	switch a := action.(type) {
	case types.NativeSend:
		return nil, k.sendNative(ctx, proxy, a)
	case types.ContractExec:
		return k.executeContract(ctx, proxy, a)
	case types.RawProtocolMessage:
		return k.handleRawMessage(ctx, proxy, a)
	default:
		return nil, errorsmod.Wrapf(types.ErrUnsupportedActionKind, "%T", action)
	}
}

func (k Keeper) sendNative(ctx sdk.Context, proxy sdk.AccAddress, send types.NativeSend) error {
	to, err := sdk.AccAddressFromBech32(send.ToAddress)
	if err != nil {
		return errorsmod.Wrapf(types.ErrInvalidAction, "to_address: %s", err)
	}
	coins, err := types.ToSdkCoins(send.Amount)
	if err != nil {
		return err
	}
	if err := k.bankKeeper.IsSendEnabledCoins(ctx, coins...); err != nil {
		return errorsmod.Wrap(types.ErrMessageExecutionFailed, err.Error())
	}
	if k.bankKeeper.BlockedAddr(to) {
		return errorsmod.Wrapf(types.ErrUnauthorized, "%s is not allowed to receive funds", send.ToAddress)
	}
	if err := k.bankKeeper.SendCoins(ctx, proxy, to, coins); err != nil {
		return mapBankError(err)
	}
	return nil
}

func (k Keeper) executeContract(ctx sdk.Context, proxy sdk.AccAddress, exec types.ContractExec) ([]byte, error) {
	contract, err := sdk.AccAddressFromBech32(exec.ContractAddress)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidAction, "contract_addr: %s", err)
	}
	funds, err := types.ToSdkCoins(exec.Funds)
	if err != nil {
		return nil, err
	}
	if !k.setContract {
		return nil, errorsmod.Wrapf(types.ErrContractExecutionFailed, "contract %s: contract keeper is not set", exec.ContractAddress)
	}

	msg := []byte(exec.Msg)
	if len(msg) == 0 {
		msg = []byte("{}")
	}
	data, err := k.contractKeeper.Execute(ctx, contract, proxy, msg, funds)
	if err != nil {
		if errorsmod.IsOf(err, sdkerrors.ErrInsufficientFunds) {
			return nil, errorsmod.Wrapf(types.ErrInsufficientFunds, "contract %s: %s", exec.ContractAddress, err)
		}
		return nil, errorsmod.Wrapf(types.ErrContractExecutionFailed, "contract %s: %s", exec.ContractAddress, err)
	}
	return data, nil
}

func (k Keeper) handleRawMessage(ctx sdk.Context, proxy sdk.AccAddress, raw types.RawProtocolMessage) ([]byte, error) {
	if !k.config.TypeURLAllowed(raw.TypeURL) {
		return nil, errorsmod.Wrapf(types.ErrUnroutableMessage, "%s is not allowed", raw.TypeURL)
	}

	var msg sdk.Msg
	if err := k.unpacker.UnpackAny(&codectypes.Any{TypeUrl: raw.TypeURL, Value: raw.Value}, &msg); err != nil {
		return nil, errorsmod.Wrapf(types.ErrUnroutableMessage, "%s: %s", raw.TypeURL, err)
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidAction, "%s: %s", raw.TypeURL, err)
	}
	for _, signer := range msg.GetSigners() {
		if !signer.Equals(proxy) {
			return nil, errorsmod.Wrapf(types.ErrUnauthorized, "%s must be signed by the proxy, not %s", raw.TypeURL, signer)
		}
	}

	handler := k.router.Handler(msg)
	if handler == nil {
		return nil, errorsmod.Wrap(types.ErrUnroutableMessage, raw.TypeURL)
	}
	res, err := handler(ctx, msg)
	if err != nil {
		if errorsmod.IsOf(err, sdkerrors.ErrInsufficientFunds) {
			return nil, mapBankError(err)
		}
		return nil, errorsmod.Wrapf(types.ErrMessageExecutionFailed, "%s: %s", raw.TypeURL, err)
	}

	events := make(sdk.Events, len(res.Events))
	for i := range res.Events {
		events[i] = sdk.Event(res.Events[i])
	}
	ctx.EventManager().EmitEvents(events)
	return res.Data, nil
}

func mapBankError(err error) error {
	if errorsmod.IsOf(err, sdkerrors.ErrInsufficientFunds) {
		return errorsmod.Wrap(types.ErrInsufficientFunds, err.Error())
	}
	return errorsmod.Wrap(types.ErrMessageExecutionFailed, err.Error())
}
