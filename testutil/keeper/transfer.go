package keeper

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	capabilitytypes "github.com/cosmos/cosmos-sdk/x/capability/types"
	transfertypes "github.com/cosmos/ibc-go/v7/modules/apps/transfer/types"
	clienttypes "github.com/cosmos/ibc-go/v7/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v7/modules/core/04-channel/types"
	porttypes "github.com/cosmos/ibc-go/v7/modules/core/05-port/types"
	ibcexported "github.com/cosmos/ibc-go/v7/modules/core/exported"
)

var _ porttypes.IBCModule = (*TransferApp)(nil)

// TransferApp is the receiving half of ICS-20: it mints the voucher denom of
// each inbound packet to its receiver through the transfer module account.
type TransferApp struct {
	bank bankkeeper.Keeper
}

func NewTransferApp(bank bankkeeper.Keeper) *TransferApp {
	return &TransferApp{bank: bank}
}

// VoucherDenom is the local denom credited for a packet carrying denom.
func VoucherDenom(packet channeltypes.Packet, denom string) string {
	if transfertypes.ReceiverChainIsSource(packet.GetSourcePort(), packet.GetSourceChannel(), denom) {
		unprefixed := denom[len(transfertypes.GetDenomPrefix(packet.GetSourcePort(), packet.GetSourceChannel())):]
		return transfertypes.ParseDenomTrace(unprefixed).IBCDenom()
	}
	prefixed := transfertypes.GetDenomPrefix(packet.GetDestPort(), packet.GetDestChannel()) + denom
	return transfertypes.ParseDenomTrace(prefixed).IBCDenom()
}

func (a *TransferApp) OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet, _ sdk.AccAddress) ibcexported.Acknowledgement {
	var data transfertypes.FungibleTokenPacketData
	if err := transfertypes.ModuleCdc.UnmarshalJSON(packet.GetData(), &data); err != nil {
		return channeltypes.NewErrorAcknowledgement(errorsmod.Wrap(sdkerrors.ErrInvalidType, "cannot unmarshal ICS-20 transfer packet data"))
	}
	receiver, err := sdk.AccAddressFromBech32(data.Receiver)
	if err != nil {
		return channeltypes.NewErrorAcknowledgement(err)
	}
	amount, ok := sdkmath.NewIntFromString(data.Amount)
	if !ok || !amount.IsPositive() {
		return channeltypes.NewErrorAcknowledgement(fmt.Errorf("invalid amount %q", data.Amount))
	}

	voucher := sdk.NewCoins(sdk.NewCoin(VoucherDenom(packet, data.Denom), amount))
	if err := a.bank.MintCoins(ctx, transfertypes.ModuleName, voucher); err != nil {
		return channeltypes.NewErrorAcknowledgement(err)
	}
	if err := a.bank.SendCoinsFromModuleToAccount(ctx, transfertypes.ModuleName, receiver, voucher); err != nil {
		return channeltypes.NewErrorAcknowledgement(err)
	}
	return channeltypes.NewResultAcknowledgement([]byte{byte(1)})
}

func (a *TransferApp) OnChanOpenInit(_ sdk.Context, _ channeltypes.Order, _ []string, _, _ string, _ *capabilitytypes.Capability, _ channeltypes.Counterparty, version string) (string, error) {
	return version, nil
}

func (a *TransferApp) OnChanOpenTry(_ sdk.Context, _ channeltypes.Order, _ []string, _, _ string, _ *capabilitytypes.Capability, _ channeltypes.Counterparty, counterpartyVersion string) (string, error) {
	return counterpartyVersion, nil
}

func (a *TransferApp) OnChanOpenAck(sdk.Context, string, string, string, string) error {
	return nil
}

func (a *TransferApp) OnChanOpenConfirm(sdk.Context, string, string) error {
	return nil
}

func (a *TransferApp) OnChanCloseInit(sdk.Context, string, string) error {
	return nil
}

func (a *TransferApp) OnChanCloseConfirm(sdk.Context, string, string) error {
	return nil
}

func (a *TransferApp) OnAcknowledgementPacket(sdk.Context, channeltypes.Packet, []byte, sdk.AccAddress) error {
	return nil
}

func (a *TransferApp) OnTimeoutPacket(sdk.Context, channeltypes.Packet, sdk.AccAddress) error {
	return nil
}

var _ porttypes.ICS4Wrapper = (*ICS4Wrapper)(nil)

// ICS4Wrapper stands in for the channel keeper and remembers written acks.
type ICS4Wrapper struct {
	Sent []SentPacket
	Acks []ibcexported.Acknowledgement
}

type SentPacket struct {
	SourcePort    string
	SourceChannel string
	Data          []byte
}

func (w *ICS4Wrapper) SendPacket(_ sdk.Context, _ *capabilitytypes.Capability, sourcePort, sourceChannel string, _ clienttypes.Height, _ uint64, data []byte) (uint64, error) {
	w.Sent = append(w.Sent, SentPacket{SourcePort: sourcePort, SourceChannel: sourceChannel, Data: data})
	return uint64(len(w.Sent)), nil
}

func (w *ICS4Wrapper) WriteAcknowledgement(_ sdk.Context, _ *capabilitytypes.Capability, _ ibcexported.PacketI, ack ibcexported.Acknowledgement) error {
	w.Acks = append(w.Acks, ack)
	return nil
}

func (w *ICS4Wrapper) GetAppVersion(sdk.Context, string, string) (string, bool) {
	return transfertypes.Version, true
}
