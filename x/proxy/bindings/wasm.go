package bindings

import (
	wasmkeeper "github.com/CosmWasm/wasmd/x/wasm/keeper"

	proxykeeper "github.com/oraichain/cw1-ibc-hooks/x/proxy/keeper"
)

func RegisterCustomPlugins(proxy *proxykeeper.Keeper) []wasmkeeper.Option {
	messengerDecoratorOpt := wasmkeeper.WithMessageHandlerDecorator(
		CustomMessageDecorator(proxy),
	)

	return []wasmkeeper.Option{
		messengerDecoratorOpt,
	}
}
