package bindings

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	wasmkeeper "github.com/CosmWasm/wasmd/x/wasm/keeper"
	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	bindingstypes "github.com/oraichain/cw1-ibc-hooks/x/proxy/bindings/types"
	proxykeeper "github.com/oraichain/cw1-ibc-hooks/x/proxy/keeper"
	proxytypes "github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

// CustomMessageDecorator returns decorator for custom CosmWasm bindings messages
func CustomMessageDecorator(proxy *proxykeeper.Keeper) func(wasmkeeper.Messenger) wasmkeeper.Messenger {
	return func(old wasmkeeper.Messenger) wasmkeeper.Messenger {
		return &CustomMessenger{
			wrapped: old,
			proxy:   proxy,
		}
	}
}

type CustomMessenger struct {
	wrapped wasmkeeper.Messenger
	proxy   *proxykeeper.Keeper
}

var _ wasmkeeper.Messenger = (*CustomMessenger)(nil)

// DispatchMsg executes on the contractMsg.
func (m *CustomMessenger) DispatchMsg(ctx sdk.Context, contractAddr sdk.AccAddress, contractIBCPortID string, msg wasmvmtypes.CosmosMsg) ([]sdk.Event, [][]byte, error) {
	if msg.Custom != nil {
		var contractMsg bindingstypes.ProxyMsg
		if err := json.Unmarshal(msg.Custom, &contractMsg); err != nil {
			return nil, nil, errorsmod.Wrap(err, "proxy msg")
		}
		// custom messages of other modules are left to the wrapped messenger
		if contractMsg.Proxy != nil {
			proxyMsg := contractMsg.Proxy
			if proxyMsg.Create != nil {
				return m.createProxy(ctx, contractAddr, proxyMsg.Create)
			}
			if proxyMsg.Execute != nil {
				return m.executeProxy(ctx, contractAddr, proxyMsg.Execute)
			}
			if proxyMsg.UpdateAdmin != nil {
				return m.updateAdmin(ctx, contractAddr, proxyMsg.UpdateAdmin)
			}
			return nil, nil, errorsmod.Wrap(sdkerrors.ErrUnknownRequest, "empty proxy msg")
		}
	}
	return m.wrapped.DispatchMsg(ctx, contractAddr, contractIBCPortID, msg)
}

// createProxy registers a proxy administered by the calling contract.
func (m *CustomMessenger) createProxy(ctx sdk.Context, contractAddr sdk.AccAddress, create *bindingstypes.CreateProxy) ([]sdk.Event, [][]byte, error) {
	proxy, err := m.proxy.CreateProxyAccount(ctx, contractAddr, []byte(create.Salt))
	if err != nil {
		return nil, nil, errorsmod.Wrap(err, "create proxy")
	}
	bz, err := json.Marshal(bindingstypes.CreateProxyResponse{Proxy: proxy.String()})
	if err != nil {
		return nil, nil, err
	}
	return nil, [][]byte{bz}, nil
}

// executeProxy runs a batch through a proxy administered by the calling contract.
func (m *CustomMessenger) executeProxy(ctx sdk.Context, contractAddr sdk.AccAddress, execute *bindingstypes.ExecuteProxy) ([]sdk.Event, [][]byte, error) {
	proxy, msg, funds, err := PrepareExecute(execute)
	if err != nil {
		return nil, nil, err
	}
	outcomes, err := m.proxy.ExecuteDirect(ctx, proxy, contractAddr, msg, funds)
	if err != nil {
		return nil, nil, errorsmod.Wrap(err, "execute proxy")
	}
	bz, err := json.Marshal(outcomes)
	if err != nil {
		return nil, nil, err
	}
	return nil, [][]byte{bz}, nil
}

// PrepareExecute validates an execute binding and converts it to the keeper's
// arguments.
func PrepareExecute(execute *bindingstypes.ExecuteProxy) (sdk.AccAddress, proxytypes.ExecuteMsg, sdk.Coins, error) {
	if execute == nil {
		return nil, proxytypes.ExecuteMsg{}, nil, wasmvmtypes.InvalidRequest{Err: "execute proxy null execute"}
	}
	proxy, err := parseAddress(execute.Proxy)
	if err != nil {
		return nil, proxytypes.ExecuteMsg{}, nil, err
	}

	msg := proxytypes.ExecuteMsg{ExecuteMsgs: execute.ExecuteMsgs, Msg: execute.Msg}
	if len(execute.CosmosMsgs) > 0 {
		if len(msg.ExecuteMsgs) > 0 || len(msg.Msg) > 0 {
			return nil, proxytypes.ExecuteMsg{}, nil, wasmvmtypes.InvalidRequest{Err: "cosmos_msgs cannot be combined with execute_msgs or msg"}
		}
		actions := make([]proxytypes.Action, len(execute.CosmosMsgs))
		for i, cosmosMsg := range execute.CosmosMsgs {
			action, err := proxytypes.ActionFromCosmosMsg(cosmosMsg)
			if err != nil {
				return nil, proxytypes.ExecuteMsg{}, nil, errorsmod.Wrapf(err, "cosmos_msgs %d", i)
			}
			actions[i] = action
		}
		if msg, err = proxytypes.NewExecuteMsg(actions...); err != nil {
			return nil, proxytypes.ExecuteMsg{}, nil, err
		}
	}

	funds, err := wasmkeeper.ConvertWasmCoinsToSdkCoins(execute.Funds)
	if err != nil {
		return nil, proxytypes.ExecuteMsg{}, nil, wasmvmtypes.InvalidRequest{Err: "execute proxy funds: " + err.Error()}
	}
	return proxy, msg, funds, nil
}

// updateAdmin hands a proxy administered by the calling contract to a new admin.
func (m *CustomMessenger) updateAdmin(ctx sdk.Context, contractAddr sdk.AccAddress, update *bindingstypes.UpdateAdmin) ([]sdk.Event, [][]byte, error) {
	proxy, err := parseAddress(update.Proxy)
	if err != nil {
		return nil, nil, err
	}
	newAdmin, err := parseAddress(update.NewAdmin)
	if err != nil {
		return nil, nil, err
	}
	if err := m.proxy.UpdateAdmin(ctx, proxy, contractAddr, newAdmin); err != nil {
		return nil, nil, errorsmod.Wrap(err, "update proxy admin")
	}
	return nil, nil, nil
}

// parseAddress parses address from bech32 string and verifies its format.
func parseAddress(addr string) (sdk.AccAddress, error) {
	parsed, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		return nil, wasmvmtypes.InvalidRequest{Err: "address from bech32: " + err.Error()}
	}
	if err := sdk.VerifyAddressFormat(parsed); err != nil {
		return nil, wasmvmtypes.InvalidRequest{Err: "verify address format: " + err.Error()}
	}
	return parsed, nil
}
