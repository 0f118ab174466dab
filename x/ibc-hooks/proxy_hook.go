package ibc_hooks

import (
	"errors"
	"strconv"

	sdkmath "cosmossdk.io/math"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	transfertypes "github.com/cosmos/ibc-go/v7/modules/apps/transfer/types"
	channeltypes "github.com/cosmos/ibc-go/v7/modules/core/04-channel/types"
	ibcexported "github.com/cosmos/ibc-go/v7/modules/core/exported"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oraichain/cw1-ibc-hooks/x/ibc-hooks/keeper"
	"github.com/oraichain/cw1-ibc-hooks/x/ibc-hooks/types"
	proxytypes "github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

const (
	EventTypeDirectiveDropped = "ibc-hook-directive-dropped"
	EventTypeExecution        = "ibc-hook-execution"
	EventTypeExecutionError   = "ibc-hook-execution-error"

	AttributeKeyReceiver = "receiver"
	AttributeKeyChannel  = "channel"
	AttributeKeySequence = "sequence"
	AttributeKeyLegacy   = "legacy"
	AttributeKeyActions  = "actions"
	AttributeKeyIndex    = "index"
	AttributeKeyError    = "error"
)

// ProxyHooks runs the directive carried in the memo of an inbound transfer on
// behalf of the receiving proxy account, once the transfer has been credited.
type ProxyHooks struct {
	proxyKeeper    types.ProxyKeeper
	ibcHooksKeeper *keeper.Keeper
	config         types.Config
	metrics        *Metrics
}

func NewProxyHooks(ibcHooksKeeper *keeper.Keeper, proxyKeeper types.ProxyKeeper, config types.Config, registerer prometheus.Registerer) ProxyHooks {
	return ProxyHooks{
		proxyKeeper:    proxyKeeper,
		ibcHooksKeeper: ibcHooksKeeper,
		config:         config,
		metrics:        NewMetrics(registerer),
	}
}

func (h ProxyHooks) ProperlyConfigured() bool {
	return h.proxyKeeper != nil && h.ibcHooksKeeper != nil
}

func (h ProxyHooks) Metrics() *Metrics {
	return h.metrics
}

// OnRecvPacketOverride credits the transfer first and only then looks at the
// memo. Whatever the directive does, the transfer itself is never rejected: a
// failed directive is reported inside a success acknowledgement.
func (h ProxyHooks) OnRecvPacketOverride(im IBCMiddleware, ctx sdk.Context, packet channeltypes.Packet, relayer sdk.AccAddress) ibcexported.Acknowledgement {
	if !h.config.Enabled || !h.ProperlyConfigured() {
		// Not configured
		return im.App.OnRecvPacket(ctx, packet, relayer)
	}
	isIcs20, data := isIcs20Packet(packet)
	if !isIcs20 {
		return im.App.OnRecvPacket(ctx, packet, relayer)
	}

	// Execute the receive
	ack := im.App.OnRecvPacket(ctx, packet, relayer)
	if ack == nil || !ack.Success() {
		return ack
	}

	directive, err := types.ParseMemo(data.GetMemo(), data.Receiver)
	switch {
	case errors.Is(err, proxytypes.ErrUnsupportedActionKind):
		result := types.HookResult{Proxy: data.Receiver, Received: receivedCoin(packet, data)}
		return h.fail(ctx, packet, ack, result, err)
	case err != nil:
		h.drop(ctx, packet, data.Receiver, err)
		return ack
	case directive == nil:
		h.metrics.observe(outcomeNone)
		return ack
	}

	result := types.HookResult{
		Proxy:    data.Receiver,
		Actions:  len(directive.Actions),
		Received: receivedCoin(packet, data),
	}
	proxy, err := sdk.AccAddressFromBech32(data.Receiver)
	if err != nil {
		// The transfer app already accepted the receiver, so this should never happen
		h.drop(ctx, packet, data.Receiver, err)
		return ack
	}

	if err := h.execute(ctx, proxy, directive.Actions); err != nil {
		return h.fail(ctx, packet, ack, result, err)
	}

	result.Success = true
	h.ibcHooksKeeper.StoreHookResult(ctx, packet.GetDestChannel(), packet.GetSequence(), result)
	h.metrics.observe(outcomeExecuted)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeExecution,
		sdk.NewAttribute(AttributeKeyReceiver, data.Receiver),
		sdk.NewAttribute(AttributeKeyChannel, packet.GetDestChannel()),
		sdk.NewAttribute(AttributeKeySequence, strconv.FormatUint(packet.GetSequence(), 10)),
		sdk.NewAttribute(AttributeKeyLegacy, strconv.FormatBool(directive.Legacy)),
		sdk.NewAttribute(AttributeKeyActions, strconv.Itoa(len(directive.Actions))),
	))
	h.ibcHooksKeeper.Logger(ctx).Debug("executed transfer directive",
		"proxy", data.Receiver,
		"channel", packet.GetDestChannel(),
		"sequence", packet.GetSequence(),
		"actions", len(directive.Actions),
	)
	return ack
}

// execute runs the directive on its own gas meter, bounded by the configured
// limit and by what the packet has left, and charges the gas used to ctx. A
// panic never leaves here: the credit has to outlive the directive.
func (h ProxyHooks) execute(ctx sdk.Context, proxy sdk.AccAddress, actions []proxytypes.Action) (err error) {
	limit := ctx.GasMeter().GasRemaining()
	if h.config.GasLimit > 0 && h.config.GasLimit < limit {
		limit = h.config.GasLimit
	}
	gasMeter := storetypes.NewGasMeter(limit)
	defer func() {
		if r := recover(); r != nil {
			err = proxytypes.RecoveredError(r)
		}
		ctx.GasMeter().ConsumeGas(gasMeter.GasConsumedToLimit(), "ibc hook directive")
	}()

	_, err = h.proxyKeeper.Execute(ctx.WithGasMeter(gasMeter), proxy, proxy, actions, proxytypes.ProvenanceHookTriggered)
	return err
}

// drop records a directive that could not be understood. The transfer goes
// through as if the memo carried nothing.
func (h ProxyHooks) drop(ctx sdk.Context, packet channeltypes.Packet, receiver string, err error) {
	h.metrics.observe(outcomeDropped)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeDirectiveDropped,
		sdk.NewAttribute(AttributeKeyReceiver, receiver),
		sdk.NewAttribute(AttributeKeyChannel, packet.GetDestChannel()),
		sdk.NewAttribute(AttributeKeySequence, strconv.FormatUint(packet.GetSequence(), 10)),
		sdk.NewAttribute(AttributeKeyError, err.Error()),
	))
	h.ibcHooksKeeper.Logger(ctx).Info("dropped transfer directive",
		"receiver", receiver,
		"channel", packet.GetDestChannel(),
		"sequence", packet.GetSequence(),
		"error", err,
	)
}

// fail keeps the credit and wraps the transfer acknowledgement with the
// deterministic description of err.
func (h ProxyHooks) fail(ctx sdk.Context, packet channeltypes.Packet, ack ibcexported.Acknowledgement, result types.HookResult, err error) ibcexported.Acknowledgement {
	index, kind := -1, proxytypes.ActionKind("")
	var execErr *proxytypes.ExecutionError
	if errors.As(err, &execErr) {
		index, kind = execErr.Index, execErr.Kind
	}
	hookError := types.HookError(err, index, string(kind))

	result.Success = false
	result.Error = hookError
	h.ibcHooksKeeper.StoreHookResult(ctx, packet.GetDestChannel(), packet.GetSequence(), result)
	h.metrics.observe(outcomeFailed)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeExecutionError,
		sdk.NewAttribute(AttributeKeyReceiver, result.Proxy),
		sdk.NewAttribute(AttributeKeyChannel, packet.GetDestChannel()),
		sdk.NewAttribute(AttributeKeySequence, strconv.FormatUint(packet.GetSequence(), 10)),
		sdk.NewAttribute(AttributeKeyIndex, strconv.Itoa(index)),
		sdk.NewAttribute(AttributeKeyError, err.Error()),
	))
	h.ibcHooksKeeper.Logger(ctx).Error("transfer directive failed",
		"proxy", result.Proxy,
		"channel", packet.GetDestChannel(),
		"sequence", packet.GetSequence(),
		"error", err,
	)

	annotated, err := types.NewHookAcknowledgement(ack.Acknowledgement(), hookError)
	if err != nil {
		return ack
	}
	return annotated
}

func isIcs20Packet(packet channeltypes.Packet) (isIcs20 bool, ics20data transfertypes.FungibleTokenPacketData) {
	var data transfertypes.FungibleTokenPacketData
	if err := transfertypes.ModuleCdc.UnmarshalJSON(packet.GetData(), &data); err != nil {
		return false, data
	}
	return true, data
}

func receivedCoin(packet channeltypes.Packet, data transfertypes.FungibleTokenPacketData) string {
	amount, ok := sdkmath.NewIntFromString(data.Amount)
	if !ok {
		return ""
	}
	return sdk.NewCoin(ExtractDenomFromPacketOnRecv(packet, data), amount).String()
}
