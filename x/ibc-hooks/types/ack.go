package types

import (
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	channeltypes "github.com/cosmos/ibc-go/v7/modules/core/04-channel/types"
)

// HookAck is the result payload of an acknowledgement whose transfer succeeded
// but whose directive did not. IbcAck holds the acknowledgement of the
// transfer itself.
type HookAck struct {
	IbcAck    []byte `json:"ibc_ack"`
	HookError string `json:"hook_error"`
}

// NewHookAcknowledgement returns a success acknowledgement wrapping ibcAck and
// annotated with hookError.
func NewHookAcknowledgement(ibcAck []byte, hookError string) (channeltypes.Acknowledgement, error) {
	bz, err := json.Marshal(HookAck{IbcAck: ibcAck, HookError: hookError})
	if err != nil {
		return channeltypes.Acknowledgement{}, errorsmod.Wrap(ErrBadResponse, err.Error())
	}
	return channeltypes.NewResultAcknowledgement(bz), nil
}

// ParseHookAck extracts the hook annotation from raw acknowledgement bytes. It
// reports false for error acknowledgements and for plain transfer results.
func ParseHookAck(acknowledgement []byte) (HookAck, bool) {
	var ack channeltypes.Acknowledgement
	if err := channeltypes.SubModuleCdc.UnmarshalJSON(acknowledgement, &ack); err != nil || !ack.Success() {
		return HookAck{}, false
	}
	var hookAck HookAck
	if err := json.Unmarshal(ack.GetResult(), &hookAck); err != nil || hookAck.HookError == "" {
		return HookAck{}, false
	}
	return hookAck, true
}

// HookError renders err without its free-form messages: only the failing
// action, the codespace and the code, all of which are deterministic.
func HookError(err error, index int, kind string) string {
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	if kind == "" {
		return fmt.Sprintf("hook execution failed: codespace %s, code %d", codespace, code)
	}
	return fmt.Sprintf("hook execution failed at action %d (%s): codespace %s, code %d", index, kind, codespace, code)
}
