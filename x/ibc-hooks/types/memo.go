package types

import (
	"encoding/json"
	"errors"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	proxytypes "github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

// ExecutionDirective is the ordered action list a memo asks the receiver to run.
type ExecutionDirective struct {
	// Target is the proxy named by a batch memo or the contract named by a
	// legacy memo.
	Target  string
	Legacy  bool
	Actions []proxytypes.Action
}

type wasmMetadata struct {
	Contract *string         `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
	Execute  json.RawMessage `json:"execute"`
}

type batchExecute struct {
	ContractAddr string          `json:"contract_addr"`
	Msg          json.RawMessage `json:"msg"`
}

type batchMsg struct {
	ExecuteMsgs json.RawMessage `json:"execute_msgs"`
}

// ParseMemo extracts the execution directive of a transfer memo addressed to
// receiver. A memo that is empty, not a JSON object or without a wasm key
// carries no directive and yields nil without error.
//
// Two shapes are recognised. The batch shape
//
//	{"wasm":{"execute":{"contract_addr":"<receiver>","msg":{"execute_msgs":[...]}}}}
//
// decodes to the listed actions and must name the receiver. The legacy shape
//
//	{"wasm":{"contract":"<addr>","msg":{...}}}
//
// decodes to one contract call without funds. When both are present the batch
// shape wins.
func ParseMemo(memo, receiver string) (*ExecutionDirective, error) {
	found, metadata := jsonStringHasKey(memo, WasmMemoKey)
	if !found {
		return nil, nil
	}

	var wasm wasmMetadata
	if err := json.Unmarshal(metadata[WasmMemoKey], &wasm); err != nil {
		return nil, errorsmod.Wrap(ErrMalformedDirective, "wasm metadata is not a valid JSON map object")
	}
	if len(wasm.Execute) > 0 && string(wasm.Execute) != "null" {
		return parseBatch(wasm.Execute, receiver)
	}
	return parseLegacy(wasm)
}

func parseBatch(raw json.RawMessage, receiver string) (*ExecutionDirective, error) {
	var execute batchExecute
	if err := json.Unmarshal(raw, &execute); err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedDirective, `wasm["execute"]: %s`, err)
	}
	if execute.ContractAddr == "" {
		return nil, errorsmod.Wrap(ErrMalformedDirective, `could not find key wasm["execute"]["contract_addr"]`)
	}
	target, err := sdk.AccAddressFromBech32(execute.ContractAddr)
	if err != nil {
		return nil, errorsmod.Wrap(ErrMalformedDirective, `wasm["execute"]["contract_addr"] is not a valid bech32 address`)
	}
	receiverAddr, err := sdk.AccAddressFromBech32(receiver)
	if err != nil || !target.Equals(receiverAddr) {
		return nil, errorsmod.Wrapf(ErrRecipientMismatch, "directive targets %s, packet receiver is %s", execute.ContractAddr, receiver)
	}

	if len(execute.Msg) == 0 {
		return nil, errorsmod.Wrap(ErrMalformedDirective, `could not find key wasm["execute"]["msg"]`)
	}
	msgBytes, err := proxytypes.DecodeBinaryOrJSON(execute.Msg)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedDirective, `wasm["execute"]["msg"]: %s`, err)
	}
	var msg batchMsg
	if err := json.Unmarshal(msgBytes, &msg); err != nil {
		return nil, errorsmod.Wrap(ErrMalformedDirective, `wasm["execute"]["msg"] is not a map object`)
	}
	if len(msg.ExecuteMsgs) == 0 {
		return nil, errorsmod.Wrap(ErrMalformedDirective, `could not find key wasm["execute"]["msg"]["execute_msgs"]`)
	}

	actions, err := proxytypes.DecodeActions(msg.ExecuteMsgs)
	if err != nil {
		if errors.Is(err, proxytypes.ErrUnsupportedActionKind) {
			return nil, err
		}
		return nil, errorsmod.Wrap(ErrMalformedDirective, err.Error())
	}
	return &ExecutionDirective{Target: execute.ContractAddr, Actions: actions}, nil
}

func parseLegacy(wasm wasmMetadata) (*ExecutionDirective, error) {
	if wasm.Contract == nil {
		return nil, errorsmod.Wrap(ErrMalformedDirective, `could not find key wasm["contract"]`)
	}
	if _, err := sdk.AccAddressFromBech32(*wasm.Contract); err != nil {
		return nil, errorsmod.Wrap(ErrMalformedDirective, `wasm["contract"] is not a valid bech32 address`)
	}
	if len(wasm.Msg) == 0 || string(wasm.Msg) == "null" {
		return nil, errorsmod.Wrap(ErrMalformedDirective, `could not find key wasm["msg"]`)
	}
	var msg map[string]json.RawMessage
	if err := json.Unmarshal(wasm.Msg, &msg); err != nil {
		return nil, errorsmod.Wrap(ErrMalformedDirective, `wasm["msg"] is not a map object`)
	}

	exec, err := proxytypes.NewContractExec(*wasm.Contract, wasm.Msg)
	if err != nil {
		return nil, errorsmod.Wrap(ErrMalformedDirective, err.Error())
	}
	return &ExecutionDirective{Target: *wasm.Contract, Legacy: true, Actions: []proxytypes.Action{exec}}, nil
}

// jsonStringHasKey parses the memo as a json object and checks if it contains the key.
func jsonStringHasKey(memo, key string) (found bool, jsonObject map[string]json.RawMessage) {
	jsonObject = make(map[string]json.RawMessage)

	// If there is no memo, the packet was either sent with an earlier version of IBC, or the memo was
	// intentionally left blank. Nothing to do here.
	if len(memo) == 0 {
		return false, jsonObject
	}

	// the jsonObject must be a valid JSON object
	if err := json.Unmarshal([]byte(memo), &jsonObject); err != nil {
		return false, jsonObject
	}

	_, ok := jsonObject[key]
	return ok, jsonObject
}

// NewLegacyMemo returns the memo asking the receiver to call contract with msg.
func NewLegacyMemo(contract string, msg json.RawMessage) (string, error) {
	bz, err := json.Marshal(map[string]interface{}{
		WasmMemoKey: map[string]interface{}{
			"contract": contract,
			"msg":      msg,
		},
	})
	if err != nil {
		return "", err
	}
	return string(bz), nil
}

// NewBatchMemo returns the memo asking proxy to run actions once it receives
// the transfer.
func NewBatchMemo(proxy string, actions []proxytypes.Action) (string, error) {
	list, err := proxytypes.EncodeActions(actions)
	if err != nil {
		return "", err
	}
	bz, err := json.Marshal(map[string]interface{}{
		WasmMemoKey: map[string]interface{}{
			"execute": map[string]interface{}{
				"contract_addr": proxy,
				"msg": map[string]json.RawMessage{
					"execute_msgs": list,
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return string(bz), nil
}
