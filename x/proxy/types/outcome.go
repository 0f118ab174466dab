package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Provenance tells the executor how an execution request reached it.
type Provenance int

const (
	// ProvenanceDirect is a call made by an account or contract; the caller
	// must be the proxy's admin.
	ProvenanceDirect Provenance = iota + 1
	// ProvenanceHookTriggered is an execution requested by an inbound transfer
	// packet addressed to the proxy.
	ProvenanceHookTriggered
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceDirect:
		return "direct"
	case ProvenanceHookTriggered:
		return "hook"
	default:
		return fmt.Sprintf("provenance(%d)", int(p))
	}
}

// ActionOutcome reports the result of one action of a batch.
type ActionOutcome struct {
	Index  int        `json:"index"`
	Kind   ActionKind `json:"kind"`
	Data   []byte     `json:"data,omitempty"`
	Events sdk.Events `json:"-"`
	Error  string     `json:"error,omitempty"`
}

// Succeeded reports whether the action ran without error.
func (o ActionOutcome) Succeeded() bool {
	return o.Error == ""
}

// ExecutionError is returned when an action of a batch fails. It unwraps to the
// registered error describing the failure.
type ExecutionError struct {
	Index int
	Kind  ActionKind
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("action %d (%s): %s", e.Index, e.Kind, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Cause lets cosmossdk.io/errors resolve the ABCI code of the underlying error.
func (e *ExecutionError) Cause() error {
	return e.Err
}

// RecoveredError describes a recovered panic value as a registered error.
func RecoveredError(r interface{}) error {
	switch v := r.(type) {
	case storetypes.ErrorOutOfGas:
		return errorsmod.Wrapf(sdkerrors.ErrOutOfGas, "out of gas in location: %s", v.Descriptor)
	case storetypes.ErrorGasOverflow:
		return errorsmod.Wrapf(sdkerrors.ErrOutOfGas, "gas overflow in location: %s", v.Descriptor)
	case error:
		return errorsmod.Wrap(sdkerrors.ErrPanic, v.Error())
	default:
		return errorsmod.Wrapf(sdkerrors.ErrPanic, "%v", v)
	}
}
