package keeper_test

import (
	"errors"
	"testing"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	keepertest "github.com/oraichain/cw1-ibc-hooks/testutil/keeper"
	"github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

func fundedProxy(t *testing.T, f *keepertest.Fixture, coins ...sdk.Coin) sdk.AccAddress {
	proxy := f.CreateProxy(t, admin, "1")
	f.FundAccount(t, proxy, sdk.NewCoins(coins...))
	return proxy
}

func send(to sdk.AccAddress, denom string, amount uint64) types.NativeSend {
	return types.NativeSend{ToAddress: to.String(), Amount: []types.Coin{types.NewCoin(denom, amount)}}
}

func rawMsg(t *testing.T, msg sdk.Msg) types.RawProtocolMessage {
	packed, err := codectypes.NewAnyWithValue(msg)
	require.NoError(t, err)
	return types.RawProtocolMessage{TypeURL: packed.TypeUrl, Value: packed.Value}
}

func TestExecuteRunsActionsInOrder(t *testing.T) {
	f := keepertest.NewFixture(t, types.DefaultConfig())
	proxy := fundedProxy(t, f, sdk.NewInt64Coin("uatom", 1000))
	counter := f.RegisterContract("counter", keepertest.AcceptContract)

	exec, err := types.NewContractExec(counter.String(), []byte(`{"increment":{}}`), types.NewCoin("uatom", 10))
	require.NoError(t, err)

	outcomes, err := f.ProxyKeeper.Execute(f.Ctx, proxy, admin, []types.Action{
		send(addrB, "uatom", 100),
		exec,
		rawMsg(t, banktypes.NewMsgSend(proxy, addrB, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1)))),
	}, types.ProvenanceDirect)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	for i, outcome := range outcomes {
		require.Equal(t, i, outcome.Index)
		require.True(t, outcome.Succeeded())
	}
	require.Equal(t, types.KindBank, outcomes[0].Kind)
	require.Equal(t, []byte(`{"increment":{}}`), outcomes[1].Data)
	require.Equal(t, types.KindStargate, outcomes[2].Kind)
	require.NotEmpty(t, outcomes[2].Events)

	require.Equal(t, int64(101), f.Balance(addrB, "uatom"))
	require.Equal(t, int64(10), f.Balance(counter, "uatom"))
	require.Equal(t, int64(889), f.Balance(proxy, "uatom"))

	invocations := f.Contracts.Invocations(f.Ctx, counter)
	require.Len(t, invocations, 1)
	require.Equal(t, proxy.String(), invocations[0].Caller)
	require.Equal(t, "10uatom", invocations[0].Funds)

	var executed bool
	for _, event := range f.Ctx.EventManager().Events() {
		if event.Type == types.EventTypeProxyExecute {
			executed = true
		}
	}
	require.True(t, executed)
}

func TestExecuteIsAtomic(t *testing.T) {
	f := keepertest.NewFixture(t, types.DefaultConfig())
	proxy := fundedProxy(t, f, sdk.NewInt64Coin("uatom", 1000))
	counter := f.RegisterContract("counter", keepertest.AcceptContract)

	exec, err := types.NewContractExec(counter.String(), []byte(`{"increment":{}}`))
	require.NoError(t, err)

	outcomes, err := f.ProxyKeeper.Execute(f.Ctx, proxy, admin, []types.Action{
		send(addrB, "uatom", 100),
		exec,
		send(addrB, "uatom", 5000),
		send(addrB, "uatom", 1),
	}, types.ProvenanceDirect)
	require.ErrorIs(t, err, types.ErrInsufficientFunds)

	var execErr *types.ExecutionError
	require.True(t, errors.As(err, &execErr))
	require.Equal(t, 2, execErr.Index)
	require.Equal(t, types.KindBank, execErr.Kind)

	require.Len(t, outcomes, 3)
	require.False(t, outcomes[2].Succeeded())

	// nothing of the batch persisted
	require.True(t, f.BankKeeper.GetBalance(f.Ctx, addrB, "uatom").IsZero())
	require.Equal(t, int64(1000), f.Balance(proxy, "uatom"))
	require.Empty(t, f.Contracts.Invocations(f.Ctx, counter))
	for _, event := range f.Ctx.EventManager().Events() {
		require.NotEqual(t, types.EventTypeProxyExecute, event.Type)
	}
}

func TestExecuteFailures(t *testing.T) {
	for _, tc := range []struct {
		testName string
		config   func(*types.Config)
		actions  func(f *keepertest.Fixture, proxy sdk.AccAddress) []types.Action
		err      error
	}{
		{
			testName: "contract rejects the message",
			actions: func(f *keepertest.Fixture, _ sdk.AccAddress) []types.Action {
				contract := f.RegisterContract("broken", keepertest.FailingContract("boom"))
				exec, _ := types.NewContractExec(contract.String(), []byte(`{}`))
				return []types.Action{exec}
			},
			err: types.ErrContractExecutionFailed,
		},
		{
			testName: "contract does not exist",
			actions: func(f *keepertest.Fixture, _ sdk.AccAddress) []types.Action {
				exec, _ := types.NewContractExec(addrB.String(), []byte(`{}`))
				return []types.Action{exec}
			},
			err: types.ErrContractExecutionFailed,
		},
		{
			testName: "contract funds exceed balance",
			actions: func(f *keepertest.Fixture, _ sdk.AccAddress) []types.Action {
				contract := f.RegisterContract("counter", keepertest.AcceptContract)
				exec, _ := types.NewContractExec(contract.String(), []byte(`{}`), types.NewCoin("uatom", 1001))
				return []types.Action{exec}
			},
			err: types.ErrInsufficientFunds,
		},
		{
			testName: "recipient is not an address",
			actions: func(*keepertest.Fixture, sdk.AccAddress) []types.Action {
				return []types.Action{types.NativeSend{ToAddress: "bob", Amount: []types.Coin{types.NewCoin("uatom", 1)}}}
			},
			err: types.ErrInvalidAction,
		},
		{
			testName: "blocked recipient",
			actions: func(*keepertest.Fixture, sdk.AccAddress) []types.Action {
				return []types.Action{send(keepertest.BlockedAddr(), "uatom", 1)}
			},
			err: types.ErrUnauthorized,
		},
		{
			testName: "send disabled",
			actions: func(f *keepertest.Fixture, _ sdk.AccAddress) []types.Action {
				f.BankKeeper.SetSendEnabled(f.Ctx, "uatom", false)
				return []types.Action{send(addrB, "uatom", 1)}
			},
			err: types.ErrMessageExecutionFailed,
		},
		{
			testName: "raw message signed by someone else",
			actions: func(*keepertest.Fixture, sdk.AccAddress) []types.Action {
				msg := banktypes.NewMsgSend(admin, addrB, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1)))
				packed, _ := codectypes.NewAnyWithValue(msg)
				return []types.Action{types.RawProtocolMessage{TypeURL: packed.TypeUrl, Value: packed.Value}}
			},
			err: types.ErrUnauthorized,
		},
		{
			testName: "raw message of an unknown type",
			actions: func(*keepertest.Fixture, sdk.AccAddress) []types.Action {
				return []types.Action{types.RawProtocolMessage{TypeURL: "/cosmos.gov.v1.MsgVote", Value: []byte{}}}
			},
			err: types.ErrUnroutableMessage,
		},
		{
			testName: "raw message without a handler",
			actions: func(_ *keepertest.Fixture, proxy sdk.AccAddress) []types.Action {
				msg := distrtypes.NewMsgSetWithdrawAddress(proxy, addrB)
				packed, _ := codectypes.NewAnyWithValue(msg)
				return []types.Action{types.RawProtocolMessage{TypeURL: packed.TypeUrl, Value: packed.Value}}
			},
			err: types.ErrUnroutableMessage,
		},
		{
			testName: "raw message to a blocked recipient",
			actions: func(_ *keepertest.Fixture, proxy sdk.AccAddress) []types.Action {
				msg := banktypes.NewMsgSend(proxy, keepertest.BlockedAddr(), sdk.NewCoins(sdk.NewInt64Coin("uatom", 1)))
				packed, _ := codectypes.NewAnyWithValue(msg)
				return []types.Action{types.RawProtocolMessage{TypeURL: packed.TypeUrl, Value: packed.Value}}
			},
			err: types.ErrMessageExecutionFailed,
		},
		{
			testName: "raw message outside the allow list",
			config: func(c *types.Config) {
				c.AllowedTypeURLs = []string{"/cosmos.bank.v1beta1.MsgMultiSend"}
			},
			actions: func(_ *keepertest.Fixture, proxy sdk.AccAddress) []types.Action {
				msg := banktypes.NewMsgSend(proxy, addrB, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1)))
				packed, _ := codectypes.NewAnyWithValue(msg)
				return []types.Action{types.RawProtocolMessage{TypeURL: packed.TypeUrl, Value: packed.Value}}
			},
			err: types.ErrUnroutableMessage,
		},
		{
			testName: "raw message failing in its handler",
			actions: func(_ *keepertest.Fixture, proxy sdk.AccAddress) []types.Action {
				msg := banktypes.NewMsgSend(proxy, addrB, sdk.NewCoins(sdk.NewInt64Coin("uatom", 5000)))
				packed, _ := codectypes.NewAnyWithValue(msg)
				return []types.Action{types.RawProtocolMessage{TypeURL: packed.TypeUrl, Value: packed.Value}}
			},
			err: types.ErrInsufficientFunds,
		},
		{
			testName: "batch longer than the limit",
			config: func(c *types.Config) {
				c.MaxActions = 1
			},
			actions: func(*keepertest.Fixture, sdk.AccAddress) []types.Action {
				return []types.Action{send(addrB, "uatom", 1), send(addrB, "uatom", 1)}
			},
			err: types.ErrInvalidAction,
		},
	} {
		t.Run(tc.testName, func(t *testing.T) {
			config := types.DefaultConfig()
			if tc.config != nil {
				tc.config(&config)
			}
			f := keepertest.NewFixture(t, config)
			proxy := fundedProxy(t, f, sdk.NewInt64Coin("uatom", 1000))

			_, err := f.ProxyKeeper.Execute(f.Ctx, proxy, admin, tc.actions(f, proxy), types.ProvenanceHookTriggered)
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, int64(1000), f.Balance(proxy, "uatom"))
		})
	}
}

func TestExecuteAuthorization(t *testing.T) {
	f := keepertest.NewFixture(t, types.DefaultConfig())
	proxy := fundedProxy(t, f, sdk.NewInt64Coin("uatom", 1000))
	actions := []types.Action{send(addrB, "uatom", 100)}

	_, err := f.ProxyKeeper.Execute(f.Ctx, proxy, stranger, actions, types.ProvenanceDirect)
	require.ErrorIs(t, err, types.ErrUnauthorized)
	require.True(t, f.BankKeeper.GetBalance(f.Ctx, addrB, "uatom").IsZero())

	_, err = f.ProxyKeeper.Execute(f.Ctx, proxy, stranger, actions, types.Provenance(0))
	require.ErrorIs(t, err, types.ErrUnauthorized)

	// the receiver of a packet needs no signer
	_, err = f.ProxyKeeper.Execute(f.Ctx, proxy, proxy, actions, types.ProvenanceHookTriggered)
	require.NoError(t, err)
	require.Equal(t, int64(100), f.Balance(addrB, "uatom"))

	_, err = f.ProxyKeeper.Execute(f.Ctx, addrB, addrB, actions, types.ProvenanceHookTriggered)
	require.ErrorIs(t, err, types.ErrProxyNotFound)
}

func TestExecuteDirect(t *testing.T) {
	f := keepertest.NewFixture(t, types.DefaultConfig())
	proxy := f.CreateProxy(t, admin, "1")
	f.FundAccount(t, admin, sdk.NewCoins(sdk.NewInt64Coin("uatom", 500)))
	funds := sdk.NewCoins(sdk.NewInt64Coin("uatom", 200))

	msg, err := types.NewExecuteMsg(send(addrB, "uatom", 150))
	require.NoError(t, err)

	_, err = f.ProxyKeeper.ExecuteDirect(f.Ctx, proxy, stranger, msg, nil)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	// a failing batch also returns the attached funds
	failing, err := types.NewExecuteMsg(send(addrB, "uatom", 250))
	require.NoError(t, err)
	_, err = f.ProxyKeeper.ExecuteDirect(f.Ctx, proxy, admin, failing, funds)
	require.ErrorIs(t, err, types.ErrInsufficientFunds)
	require.Equal(t, int64(500), f.Balance(admin, "uatom"))
	require.True(t, f.BankKeeper.GetBalance(f.Ctx, proxy, "uatom").IsZero())

	_, err = f.ProxyKeeper.ExecuteDirect(f.Ctx, proxy, admin, msg, funds)
	require.NoError(t, err)
	require.Equal(t, int64(300), f.Balance(admin, "uatom"))
	require.Equal(t, int64(50), f.Balance(proxy, "uatom"))
	require.Equal(t, int64(150), f.Balance(addrB, "uatom"))

	// legacy form carries the same list as a binary
	legacy := types.ExecuteMsg{Msg: msg.ExecuteMsgs}
	_, err = f.ProxyKeeper.ExecuteDirect(f.Ctx, proxy, admin, legacy, nil)
	require.ErrorIs(t, err, types.ErrInsufficientFunds)

	_, err = f.ProxyKeeper.ExecuteDirect(f.Ctx, proxy, admin, types.ExecuteMsg{}, nil)
	require.ErrorIs(t, err, types.ErrInvalidAction)
}

func TestExecuteMetrics(t *testing.T) {
	f := keepertest.NewFixture(t, types.DefaultConfig())
	proxy := fundedProxy(t, f, sdk.NewInt64Coin("uatom", 10))

	_, err := f.ProxyKeeper.Execute(f.Ctx, proxy, admin, []types.Action{send(addrB, "uatom", 1)}, types.ProvenanceDirect)
	require.NoError(t, err)
	// the first send succeeds but is rolled back with the second
	_, err = f.ProxyKeeper.Execute(f.Ctx, proxy, admin, []types.Action{send(addrB, "uatom", 1), send(addrB, "uatom", 100)}, types.ProvenanceDirect)
	require.Error(t, err)

	counter := f.ProxyKeeper.Metrics().ActionsExecuted
	require.Equal(t, float64(1), promtestutil.ToFloat64(counter.WithLabelValues("bank", "ok")))
	require.Equal(t, float64(1), promtestutil.ToFloat64(counter.WithLabelValues("bank", "reverted")))
	require.Equal(t, float64(1), promtestutil.ToFloat64(counter.WithLabelValues("bank", "error")))
}

func TestExecuteRecoversFromPanics(t *testing.T) {
	for _, tc := range []struct {
		testName string
		handler  keepertest.ContractHandler
		err      error
	}{
		{testName: "contract runs out of gas", handler: keepertest.GreedyContract(10_000_000), err: sdkerrors.ErrOutOfGas},
		{testName: "contract panics", handler: keepertest.PanickingContract("boom"), err: sdkerrors.ErrPanic},
	} {
		t.Run(tc.testName, func(t *testing.T) {
			f := keepertest.NewFixture(t, types.DefaultConfig())
			proxy := fundedProxy(t, f, sdk.NewInt64Coin("uatom", 1000))
			contract := f.RegisterContract("contract", tc.handler)
			exec, err := types.NewContractExec(contract.String(), []byte(`{}`))
			require.NoError(t, err)

			gasMeter := storetypes.NewGasMeter(2_000_000)
			ctx := f.Ctx.WithGasMeter(gasMeter)
			outcomes, err := f.ProxyKeeper.Execute(ctx, proxy, admin, []types.Action{send(addrB, "uatom", 100), exec}, types.ProvenanceDirect)
			require.ErrorIs(t, err, tc.err)

			var execErr *types.ExecutionError
			require.True(t, errors.As(err, &execErr))
			require.Equal(t, 1, execErr.Index)
			require.Equal(t, types.KindWasm, execErr.Kind)
			require.Len(t, outcomes, 2)
			require.False(t, outcomes[1].Succeeded())

			// the caller's meter is charged but never pushed past its limit
			require.NotZero(t, gasMeter.GasConsumed())
			require.False(t, gasMeter.IsPastLimit())

			require.True(t, f.BankKeeper.GetBalance(f.Ctx, addrB, "uatom").IsZero())
			require.Equal(t, int64(1000), f.Balance(proxy, "uatom"))
			require.Empty(t, f.Contracts.Invocations(f.Ctx, contract))
		})
	}
}
