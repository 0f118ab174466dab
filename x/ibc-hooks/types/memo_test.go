package types_test

import (
	"encoding/base64"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/oraichain/cw1-ibc-hooks/x/ibc-hooks/types"
	proxytypes "github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

var (
	receiver = sdk.AccAddress([]byte("receiver____________")).String()
	other    = sdk.AccAddress([]byte("other_______________")).String()
	contract = sdk.AccAddress([]byte("contract____________")).String()
)

const sendList = `[{"bank":{"send":{"to_address":"cosmos1qyqszqgpqyqszqgpqyqszqgpqyqszqgpjnp7du","amount":[{"denom":"uatom","amount":"123456"}]}}}]`

func TestParseMemo(t *testing.T) {
	send := proxytypes.NativeSend{
		ToAddress: "cosmos1qyqszqgpqyqszqgpqyqszqgpqyqszqgpjnp7du",
		Amount:    []proxytypes.Coin{proxytypes.NewCoin("uatom", 123456)},
	}
	increment, err := proxytypes.NewContractExec(contract, []byte(`{"increment":{}}`))
	require.NoError(t, err)
	spacedIncrement, err := proxytypes.NewContractExec(contract, []byte(`{ "increment": {} }`))
	require.NoError(t, err)

	for _, tc := range []struct {
		testName  string
		memo      string
		directive *types.ExecutionDirective
		err       error
	}{
		{testName: "empty memo"},
		{testName: "plain text memo", memo: "thanks for the coffee"},
		{testName: "json array memo", memo: `[1,2,3]`},
		{testName: "memo without wasm key", memo: `{"forward":{"receiver":"x"}}`},
		{
			testName:  "batch memo",
			memo:      `{"wasm":{"execute":{"contract_addr":"` + receiver + `","msg":{"execute_msgs":` + sendList + `}}}}`,
			directive: &types.ExecutionDirective{Target: receiver, Actions: []proxytypes.Action{send}},
		},
		{
			testName:  "batch memo with binary execute_msgs",
			memo:      `{"wasm":{"execute":{"contract_addr":"` + receiver + `","msg":{"execute_msgs":"` + base64.StdEncoding.EncodeToString([]byte(sendList)) + `"}}}}`,
			directive: &types.ExecutionDirective{Target: receiver, Actions: []proxytypes.Action{send}},
		},
		{
			testName:  "batch memo with empty list",
			memo:      `{"wasm":{"execute":{"contract_addr":"` + receiver + `","msg":{"execute_msgs":[]}}}}`,
			directive: &types.ExecutionDirective{Target: receiver, Actions: []proxytypes.Action{}},
		},
		{
			testName:  "legacy memo",
			memo:      `{"wasm":{"contract":"` + contract + `","msg":{ "increment": {} }}}`,
			directive: &types.ExecutionDirective{Target: contract, Legacy: true, Actions: []proxytypes.Action{spacedIncrement}},
		},
		{
			testName:  "compact legacy memo",
			memo:      `{"wasm":{"contract":"` + contract + `","msg":{"increment":{}}}}`,
			directive: &types.ExecutionDirective{Target: contract, Legacy: true, Actions: []proxytypes.Action{increment}},
		},
		{
			testName:  "batch shape takes precedence",
			memo:      `{"wasm":{"contract":"` + contract + `","msg":{"increment":{}},"execute":{"contract_addr":"` + receiver + `","msg":{"execute_msgs":` + sendList + `}}}}`,
			directive: &types.ExecutionDirective{Target: receiver, Actions: []proxytypes.Action{send}},
		},
		{
			testName: "batch memo for another account",
			memo:     `{"wasm":{"execute":{"contract_addr":"` + other + `","msg":{"execute_msgs":` + sendList + `}}}}`,
			err:      types.ErrRecipientMismatch,
		},
		{
			testName: "wasm is not an object",
			memo:     `{"wasm":"call me"}`,
			err:      types.ErrMalformedDirective,
		},
		{
			testName: "batch memo without contract_addr",
			memo:     `{"wasm":{"execute":{"msg":{"execute_msgs":[]}}}}`,
			err:      types.ErrMalformedDirective,
		},
		{
			testName: "batch memo with invalid contract_addr",
			memo:     `{"wasm":{"execute":{"contract_addr":"receiver","msg":{"execute_msgs":[]}}}}`,
			err:      types.ErrMalformedDirective,
		},
		{
			testName: "batch memo without execute_msgs",
			memo:     `{"wasm":{"execute":{"contract_addr":"` + receiver + `","msg":{}}}}`,
			err:      types.ErrMalformedDirective,
		},
		{
			testName: "batch memo with execute_msgs of the wrong type",
			memo:     `{"wasm":{"execute":{"contract_addr":"` + receiver + `","msg":{"execute_msgs":{"bank":{}}}}}}`,
			err:      types.ErrMalformedDirective,
		},
		{
			testName: "batch memo with a broken action",
			memo:     `{"wasm":{"execute":{"contract_addr":"` + receiver + `","msg":{"execute_msgs":[{"bank":{"send":{"amount":[]}}}]}}}}`,
			err:      types.ErrMalformedDirective,
		},
		{
			testName: "batch memo with an unsupported action",
			memo:     `{"wasm":{"execute":{"contract_addr":"` + receiver + `","msg":{"execute_msgs":[{"gov":{"vote":{}}}]}}}}`,
			err:      proxytypes.ErrUnsupportedActionKind,
		},
		{
			testName: "legacy memo without contract",
			memo:     `{"wasm":{"msg":{"increment":{}}}}`,
			err:      types.ErrMalformedDirective,
		},
		{
			testName: "legacy memo without msg",
			memo:     `{"wasm":{"contract":"` + contract + `"}}`,
			err:      types.ErrMalformedDirective,
		},
		{
			testName: "legacy memo with a string msg",
			memo:     `{"wasm":{"contract":"` + contract + `","msg":"increment"}}`,
			err:      types.ErrMalformedDirective,
		},
	} {
		t.Run(tc.testName, func(t *testing.T) {
			directive, err := types.ParseMemo(tc.memo, receiver)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.Nil(t, directive)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.directive, directive)
		})
	}
}

func TestMemoBuilders(t *testing.T) {
	send := proxytypes.NativeSend{ToAddress: other, Amount: []proxytypes.Coin{proxytypes.NewCoin("uatom", 1)}}

	memo, err := types.NewBatchMemo(receiver, []proxytypes.Action{send})
	require.NoError(t, err)
	directive, err := types.ParseMemo(memo, receiver)
	require.NoError(t, err)
	require.Equal(t, []proxytypes.Action{send}, directive.Actions)

	memo, err = types.NewLegacyMemo(contract, []byte(`{"increment":{}}`))
	require.NoError(t, err)
	directive, err = types.ParseMemo(memo, receiver)
	require.NoError(t, err)
	require.True(t, directive.Legacy)
	require.Equal(t, contract, directive.Target)
}

func TestHookAck(t *testing.T) {
	ack, err := types.NewHookAcknowledgement([]byte{1}, "hook execution failed")
	require.NoError(t, err)
	require.True(t, ack.Success())

	hookAck, ok := types.ParseHookAck(ack.Acknowledgement())
	require.True(t, ok)
	require.Equal(t, []byte{1}, hookAck.IbcAck)
	require.Equal(t, "hook execution failed", hookAck.HookError)

	_, ok = types.ParseHookAck([]byte(`{"result":"AQ=="}`))
	require.False(t, ok)
	_, ok = types.ParseHookAck([]byte(`{"error":"ABCI code: 1: error handling packet"}`))
	require.False(t, ok)
}

func TestHookError(t *testing.T) {
	err := &proxytypes.ExecutionError{Index: 1, Kind: proxytypes.KindWasm, Err: proxytypes.ErrContractExecutionFailed.Wrap("contract said no")}
	require.Equal(t,
		"hook execution failed at action 1 (wasm): codespace proxy, code 6",
		types.HookError(err, 1, string(proxytypes.KindWasm)),
	)
	require.Equal(t,
		"hook execution failed: codespace proxy, code 9",
		types.HookError(proxytypes.ErrProxyNotFound.Wrap("x"), 0, ""),
	)
}
