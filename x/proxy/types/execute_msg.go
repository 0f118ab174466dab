package types

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
)

// ExecuteMsg is the direct (non-hook) entry point of a proxy account. Exactly
// one of ExecuteMsgs and Msg is set: ExecuteMsgs carries the action list inline
// or as a Binary, Msg is the legacy form holding the base64 of the list.
type ExecuteMsg struct {
	ExecuteMsgs json.RawMessage `json:"execute_msgs,omitempty"`
	Msg         []byte          `json:"msg,omitempty"`
}

// NewExecuteMsg encodes actions into the execute_msgs form.
func NewExecuteMsg(actions ...Action) (ExecuteMsg, error) {
	bz, err := EncodeActions(actions)
	if err != nil {
		return ExecuteMsg{}, err
	}
	return ExecuteMsg{ExecuteMsgs: bz}, nil
}

// Actions decodes the action list carried by m.
func (m ExecuteMsg) Actions() ([]Action, error) {
	hasList := len(m.ExecuteMsgs) > 0 && string(m.ExecuteMsgs) != "null"
	switch {
	case hasList && len(m.Msg) > 0:
		return nil, errorsmod.Wrap(ErrInvalidAction, "execute_msgs and msg are mutually exclusive")
	case hasList:
		return DecodeActions(m.ExecuteMsgs)
	case len(m.Msg) > 0:
		return DecodeActions(m.Msg)
	default:
		return nil, errorsmod.Wrap(ErrInvalidAction, "one of execute_msgs or msg is required")
	}
}
