package types

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"

	errorsmod "cosmossdk.io/errors"
)

// ActionKind is the discriminant key of an encoded Action.
type ActionKind string

const (
	KindBank     ActionKind = "bank"
	KindWasm     ActionKind = "wasm"
	KindStargate ActionKind = "stargate"
)

// Action is one self-contained message a proxy account can dispatch. The set of
// implementations is closed: NativeSend, ContractExec and RawProtocolMessage.
type Action interface {
	Kind() ActionKind
	isAction()
}

// NativeSend moves native coins from the proxy to ToAddress.
type NativeSend struct {
	ToAddress string
	Amount    []Coin
}

// ContractExec invokes a contract with the proxy as sender. Msg holds the JSON
// delivered to the contract, byte for byte as the sender wrote it.
type ContractExec struct {
	ContractAddress string
	Msg             json.RawMessage
	Funds           []Coin
}

// RawProtocolMessage is a protobuf message packed as TypeURL/Value. Value is
// never interpreted here.
type RawProtocolMessage struct {
	TypeURL string
	Value   []byte
}

func (NativeSend) Kind() ActionKind         { return KindBank }
func (ContractExec) Kind() ActionKind       { return KindWasm }
func (RawProtocolMessage) Kind() ActionKind { return KindStargate }

func (NativeSend) isAction()         {}
func (ContractExec) isAction()       {}
func (RawProtocolMessage) isAction() {}

// NewContractExec builds a ContractExec with its funds in canonical form.
func NewContractExec(contract string, msg []byte, funds ...Coin) (ContractExec, error) {
	if !json.Valid(msg) {
		return ContractExec{}, errorsmod.Wrap(ErrInvalidAction, "contract msg: invalid JSON")
	}
	normalized, err := normalizeCoins(funds)
	if err != nil {
		return ContractExec{}, err
	}
	return ContractExec{ContractAddress: contract, Msg: append(json.RawMessage{}, msg...), Funds: normalized}, nil
}

// wire forms
//
// A nil coin list is left out of the encoding and an empty one is written as
// [], so the decoder can tell them apart.

type bankMsg struct {
	Send *sendMsg `json:"send,omitempty"`
}

type sendMsg struct {
	ToAddress string `json:"to_address"`
	Amount    []Coin `json:"amount"`
}

type encodedSendMsg struct {
	ToAddress string  `json:"to_address"`
	Amount    *[]Coin `json:"amount,omitempty"`
}

type wasmMsg struct {
	Execute *executeMsg `json:"execute,omitempty"`
}

type executeMsg struct {
	ContractAddr string          `json:"contract_addr"`
	Msg          json.RawMessage `json:"msg"`
	Funds        []Coin          `json:"funds"`
}

// encodedExecuteMsg carries the contract msg as a Binary (base64), which is how
// CosmWasm serializes WasmMsg::Execute.
type encodedExecuteMsg struct {
	ContractAddr string  `json:"contract_addr"`
	Msg          []byte  `json:"msg"`
	Funds        *[]Coin `json:"funds,omitempty"`
}

type stargateMsg struct {
	TypeURL string `json:"type_url"`
	Value   []byte `json:"value"`
}

// EncodeAction returns the JSON encoding of a. It refuses anything DecodeAction
// would refuse or change: required addresses and type urls must be set, coin
// amounts must be in canonical decimal form and a contract msg must be valid
// JSON.
func EncodeAction(a Action) ([]byte, error) {
	var (
		key  ActionKind
		body interface{}
	)
	switch action := a.(type) {
	case NativeSend:
		if action.ToAddress == "" {
			return nil, errorsmod.Wrap(ErrInvalidAction, "bank.send: missing to_address")
		}
		if err := checkCanonicalCoins(action.Amount); err != nil {
			return nil, errorsmod.Wrap(err, "bank.send")
		}
		key = KindBank
		body = map[string]encodedSendMsg{"send": {ToAddress: action.ToAddress, Amount: optionalCoins(action.Amount)}}
	case ContractExec:
		if action.ContractAddress == "" {
			return nil, errorsmod.Wrap(ErrInvalidAction, "wasm.execute: missing contract_addr")
		}
		if !json.Valid(action.Msg) {
			return nil, errorsmod.Wrap(ErrInvalidAction, "wasm.execute.msg: invalid JSON")
		}
		if err := checkCanonicalCoins(action.Funds); err != nil {
			return nil, errorsmod.Wrap(err, "wasm.execute")
		}
		key = KindWasm
		body = map[string]encodedExecuteMsg{"execute": {
			ContractAddr: action.ContractAddress,
			Msg:          action.Msg,
			Funds:        optionalCoins(action.Funds),
		}}
	case RawProtocolMessage:
		if action.TypeURL == "" {
			return nil, errorsmod.Wrap(ErrInvalidAction, "stargate: missing type_url")
		}
		key = KindStargate
		body = stargateMsg{TypeURL: action.TypeURL, Value: action.Value}
	default:
		return nil, errorsmod.Wrapf(ErrUnsupportedActionKind, "%T", a)
	}
	return json.Marshal(map[ActionKind]interface{}{key: body})
}

// DecodeAction decodes a single action. The input must be a JSON object with
// exactly one discriminant key.
func DecodeAction(bz []byte) (Action, error) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(bz, &tagged); err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidAction, "action is not a JSON object: %s", err)
	}
	if len(tagged) != 1 {
		return nil, errorsmod.Wrapf(ErrUnsupportedActionKind, "expected exactly one action kind, got %d", len(tagged))
	}

	for key, raw := range tagged {
		switch ActionKind(key) {
		case KindBank:
			return decodeBank(raw)
		case KindWasm:
			return decodeWasm(raw)
		case KindStargate:
			return decodeStargate(raw)
		default:
			return nil, errorsmod.Wrapf(ErrUnsupportedActionKind, "%q", key)
		}
	}
	return nil, ErrUnsupportedActionKind // unreachable
}

func decodeBank(raw json.RawMessage) (Action, error) {
	if err := onlyKeys(raw, "send"); err != nil {
		return nil, errorsmod.Wrapf(err, "bank")
	}
	var msg bankMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidAction, "bank: %s", err)
	}
	if msg.Send == nil {
		return nil, errorsmod.Wrap(ErrInvalidAction, "bank: missing send")
	}
	if msg.Send.ToAddress == "" {
		return nil, errorsmod.Wrap(ErrInvalidAction, "bank.send: missing to_address")
	}
	amount, err := normalizeCoins(msg.Send.Amount)
	if err != nil {
		return nil, errorsmod.Wrap(err, "bank.send")
	}
	return NativeSend{ToAddress: msg.Send.ToAddress, Amount: amount}, nil
}

func decodeWasm(raw json.RawMessage) (Action, error) {
	if err := onlyKeys(raw, "execute"); err != nil {
		return nil, errorsmod.Wrapf(err, "wasm")
	}
	var msg wasmMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidAction, "wasm: %s", err)
	}
	if msg.Execute == nil {
		return nil, errorsmod.Wrap(ErrInvalidAction, "wasm: missing execute")
	}
	if msg.Execute.ContractAddr == "" {
		return nil, errorsmod.Wrap(ErrInvalidAction, "wasm.execute: missing contract_addr")
	}
	payload, err := DecodeBinaryOrJSON(msg.Execute.Msg)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidAction, "wasm.execute.msg: %s", err)
	}
	funds, err := normalizeCoins(msg.Execute.Funds)
	if err != nil {
		return nil, errorsmod.Wrap(err, "wasm.execute")
	}
	return ContractExec{ContractAddress: msg.Execute.ContractAddr, Msg: payload, Funds: funds}, nil
}

func decodeStargate(raw json.RawMessage) (Action, error) {
	var msg stargateMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidAction, "stargate: %s", err)
	}
	if msg.TypeURL == "" {
		return nil, errorsmod.Wrap(ErrInvalidAction, "stargate: missing type_url")
	}
	return RawProtocolMessage{TypeURL: msg.TypeURL, Value: msg.Value}, nil
}

// EncodeActions returns the JSON array encoding of actions.
func EncodeActions(actions []Action) ([]byte, error) {
	items := make([]json.RawMessage, len(actions))
	for i, a := range actions {
		bz, err := EncodeAction(a)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "action %d", i)
		}
		items[i] = bz
	}
	return json.Marshal(items)
}

// DecodeActions decodes a list of actions given either as a JSON array or as a
// JSON string holding the base64 encoding of that array.
func DecodeActions(bz []byte) ([]Action, error) {
	list, err := DecodeBinaryOrJSON(bz)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidAction, err.Error())
	}
	var items []json.RawMessage
	if err := json.Unmarshal(list, &items); err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidAction, "actions are not a JSON array: %s", err)
	}
	actions := make([]Action, len(items))
	for i, item := range items {
		action, err := DecodeAction(item)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "action %d", i)
		}
		actions[i] = action
	}
	return actions, nil
}

// DecodeBinaryOrJSON accepts either inline JSON or a JSON string carrying the
// base64 of a JSON document (a CosmWasm Binary) and returns the JSON bytes
// unchanged.
func DecodeBinaryOrJSON(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("missing value")
	}
	doc := []byte(trimmed)
	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return nil, err
		}
		decoded, err := decodeBase64(encoded)
		if err != nil {
			return nil, fmt.Errorf("invalid base64: %w", err)
		}
		doc = decoded
	}
	if !json.Valid(doc) {
		return nil, fmt.Errorf("invalid JSON")
	}
	return append(json.RawMessage{}, doc...), nil
}

// decodeBase64 accepts padded and unpadded standard encodings.
func decodeBase64(s string) ([]byte, error) {
	if bz, err := base64.StdEncoding.DecodeString(s); err == nil {
		return bz, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}

// onlyKeys fails with ErrUnsupportedActionKind when the object carries a
// sub-kind other than allowed, e.g. bank.burn. The first offending key in sort
// order is reported so the error text is deterministic.
func onlyKeys(raw json.RawMessage, allowed string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return errorsmod.Wrapf(ErrInvalidAction, "not a JSON object: %s", err)
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		if key != allowed {
			keys = append(keys, key)
		}
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		return errorsmod.Wrapf(ErrUnsupportedActionKind, "%q", keys[0])
	}
	return nil
}

func optionalCoins(coins []Coin) *[]Coin {
	if coins == nil {
		return nil
	}
	return &coins
}
