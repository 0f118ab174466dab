package types

import (
	errorsmod "cosmossdk.io/errors"
	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
)

// ToCosmosMsg returns the CosmWasm message equivalent to a.
func ToCosmosMsg(a Action) (wasmvmtypes.CosmosMsg, error) {
	switch action := a.(type) {
	case NativeSend:
		return wasmvmtypes.CosmosMsg{Bank: &wasmvmtypes.BankMsg{Send: &wasmvmtypes.SendMsg{
			ToAddress: action.ToAddress,
			Amount:    toWasmCoins(action.Amount),
		}}}, nil
	case ContractExec:
		return wasmvmtypes.CosmosMsg{Wasm: &wasmvmtypes.WasmMsg{Execute: &wasmvmtypes.ExecuteMsg{
			ContractAddr: action.ContractAddress,
			Msg:          []byte(action.Msg),
			Funds:        toWasmCoins(action.Funds),
		}}}, nil
	case RawProtocolMessage:
		return wasmvmtypes.CosmosMsg{Stargate: &wasmvmtypes.StargateMsg{
			TypeURL: action.TypeURL,
			Value:   action.Value,
		}}, nil
	default:
		return wasmvmtypes.CosmosMsg{}, errorsmod.Wrapf(ErrUnsupportedActionKind, "%T", a)
	}
}

// ActionFromCosmosMsg converts a CosmWasm message into an Action. Only bank
// sends, contract executions and stargate messages have an equivalent.
func ActionFromCosmosMsg(msg wasmvmtypes.CosmosMsg) (Action, error) {
	switch {
	case msg.Bank != nil:
		if msg.Bank.Send == nil {
			return nil, errorsmod.Wrap(ErrUnsupportedActionKind, "bank: only send is supported")
		}
		amount, err := normalizeCoins(fromWasmCoins(msg.Bank.Send.Amount))
		if err != nil {
			return nil, err
		}
		return NativeSend{ToAddress: msg.Bank.Send.ToAddress, Amount: amount}, nil
	case msg.Wasm != nil:
		if msg.Wasm.Execute == nil {
			return nil, errorsmod.Wrap(ErrUnsupportedActionKind, "wasm: only execute is supported")
		}
		exec := msg.Wasm.Execute
		return NewContractExec(exec.ContractAddr, exec.Msg, fromWasmCoins(exec.Funds)...)
	case msg.Stargate != nil:
		if msg.Stargate.TypeURL == "" {
			return nil, errorsmod.Wrap(ErrInvalidAction, "stargate: missing type_url")
		}
		return RawProtocolMessage{TypeURL: msg.Stargate.TypeURL, Value: msg.Stargate.Value}, nil
	default:
		return nil, errorsmod.Wrap(ErrUnsupportedActionKind, "cosmos msg")
	}
}

func toWasmCoins(coins []Coin) wasmvmtypes.Coins {
	out := make(wasmvmtypes.Coins, len(coins))
	for i, c := range coins {
		out[i] = wasmvmtypes.Coin{Denom: c.Denom, Amount: c.Amount}
	}
	return out
}

func fromWasmCoins(coins wasmvmtypes.Coins) []Coin {
	if len(coins) == 0 {
		return nil
	}
	out := make([]Coin, len(coins))
	for i, c := range coins {
		out[i] = Coin{Denom: c.Denom, Amount: c.Amount}
	}
	return out
}
