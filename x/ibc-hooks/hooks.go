package ibc_hooks

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	channeltypes "github.com/cosmos/ibc-go/v7/modules/core/04-channel/types"
	ibcexported "github.com/cosmos/ibc-go/v7/modules/core/exported"
)

// Hooks is whatever the middleware was built with. It opts into a stage of
// packet receipt by implementing the matching interface below. ProxyHooks only
// overrides; the before and after stages are for apps that stack other
// observers (e.g. accounting or rate limiting) on the same middleware and never
// change the acknowledgement.
type Hooks interface{}

// OnRecvPacketOverrideHooks replaces the receive entirely, including the call
// into the wrapped app. When implemented, the before and after stages are
// skipped.
type OnRecvPacketOverrideHooks interface {
	OnRecvPacketOverride(im IBCMiddleware, ctx sdk.Context, packet channeltypes.Packet, relayer sdk.AccAddress) ibcexported.Acknowledgement
}

// OnRecvPacketBeforeHooks runs ahead of the wrapped app.
type OnRecvPacketBeforeHooks interface {
	OnRecvPacketBeforeHook(ctx sdk.Context, packet channeltypes.Packet, relayer sdk.AccAddress)
}

// OnRecvPacketAfterHooks sees the acknowledgement the wrapped app produced.
type OnRecvPacketAfterHooks interface {
	OnRecvPacketAfterHook(ctx sdk.Context, packet channeltypes.Packet, relayer sdk.AccAddress, ack ibcexported.Acknowledgement)
}
