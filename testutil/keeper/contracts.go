package keeper

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
)

var (
	invocationPrefix   = []byte{0x01}
	tokenBalancePrefix = []byte{0x02}
)

// ContractHandler plays the part of a contract's execute entry point.
type ContractHandler func(ctx sdk.Context, contract, caller sdk.AccAddress, msg []byte, funds sdk.Coins) ([]byte, error)

// Invocation is a recorded contract call.
type Invocation struct {
	Caller string          `json:"caller"`
	Msg    json.RawMessage `json:"msg"`
	Funds  string          `json:"funds"`
}

// ContractKeeper stands in for wasmd's permissioned keeper. Calls, funds and
// contract state are kept in the store so failed batches leave no trace.
type ContractKeeper struct {
	storeKey storetypes.StoreKey
	bank     bankkeeper.Keeper
	handlers map[string]ContractHandler
}

func NewContractKeeper(storeKey storetypes.StoreKey, bank bankkeeper.Keeper) *ContractKeeper {
	return &ContractKeeper{
		storeKey: storeKey,
		bank:     bank,
		handlers: map[string]ContractHandler{},
	}
}

func (k *ContractKeeper) Register(contract sdk.AccAddress, handler ContractHandler) {
	k.handlers[contract.String()] = handler
}

func (k *ContractKeeper) Execute(ctx sdk.Context, contractAddress, caller sdk.AccAddress, msg []byte, coins sdk.Coins) ([]byte, error) {
	handler, found := k.handlers[contractAddress.String()]
	if !found {
		return nil, errorsmod.Wrap(wasmtypes.ErrNotFound, "contract")
	}
	if !coins.IsZero() {
		if err := k.bank.SendCoins(ctx, caller, contractAddress, coins); err != nil {
			return nil, err
		}
	}

	store := k.invocationStore(ctx, contractAddress)
	bz, err := json.Marshal(Invocation{Caller: caller.String(), Msg: msg, Funds: coins.String()})
	if err != nil {
		return nil, err
	}
	store.Set(sdk.Uint64ToBigEndian(k.countInvocations(store)), bz)

	return handler(ctx, contractAddress, caller, msg, coins)
}

// Invocations returns the calls made to contract in order.
func (k *ContractKeeper) Invocations(ctx sdk.Context, contract sdk.AccAddress) []Invocation {
	iterator := k.invocationStore(ctx, contract).Iterator(nil, nil)
	defer iterator.Close()

	var invocations []Invocation
	for ; iterator.Valid(); iterator.Next() {
		var inv Invocation
		if err := json.Unmarshal(iterator.Value(), &inv); err != nil {
			panic(err)
		}
		invocations = append(invocations, inv)
	}
	return invocations
}

func (k *ContractKeeper) countInvocations(store prefix.Store) uint64 {
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	var n uint64
	for ; iterator.Valid(); iterator.Next() {
		n++
	}
	return n
}

func (k *ContractKeeper) invocationStore(ctx sdk.Context, contract sdk.AccAddress) prefix.Store {
	return prefix.NewStore(ctx.KVStore(k.storeKey), append(append([]byte{}, invocationPrefix...), address.MustLengthPrefix(contract)...))
}

// AcceptContract succeeds on every message and returns it as data.
func AcceptContract(_ sdk.Context, _, _ sdk.AccAddress, msg []byte, _ sdk.Coins) ([]byte, error) {
	return msg, nil
}

// FailingContract rejects every message with reason.
func FailingContract(reason string) ContractHandler {
	return func(sdk.Context, sdk.AccAddress, sdk.AccAddress, []byte, sdk.Coins) ([]byte, error) {
		return nil, errorsmod.Wrap(wasmtypes.ErrExecuteFailed, reason)
	}
}

// GreedyContract burns gas on every call, as a contract stuck in a loop would.
func GreedyContract(gas uint64) ContractHandler {
	return func(ctx sdk.Context, _, _ sdk.AccAddress, _ []byte, _ sdk.Coins) ([]byte, error) {
		ctx.GasMeter().ConsumeGas(gas, "loop")
		return nil, nil
	}
}

// PanickingContract panics with reason, like a contract hitting a VM bug.
func PanickingContract(reason string) ContractHandler {
	return func(sdk.Context, sdk.AccAddress, sdk.AccAddress, []byte, sdk.Coins) ([]byte, error) {
		panic(reason)
	}
}

type tokenAmountMsg struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

type tokenMsg struct {
	Transfer *tokenAmountMsg `json:"transfer,omitempty"`
	Mint     *tokenAmountMsg `json:"mint,omitempty"`
}

// TokenContract is a minimal fungible token: mint credits the recipient,
// transfer moves tokens from the caller to the recipient.
func (k *ContractKeeper) TokenContract() ContractHandler {
	return func(ctx sdk.Context, contract, caller sdk.AccAddress, msg []byte, _ sdk.Coins) ([]byte, error) {
		var tm tokenMsg
		if err := json.Unmarshal(msg, &tm); err != nil {
			return nil, errorsmod.Wrap(wasmtypes.ErrExecuteFailed, err.Error())
		}

		switch {
		case tm.Mint != nil:
			recipient, amount, err := parseTokenAmount(tm.Mint)
			if err != nil {
				return nil, err
			}
			k.setTokenBalance(ctx, contract, recipient, k.TokenBalance(ctx, contract, recipient).Add(amount))
		case tm.Transfer != nil:
			recipient, amount, err := parseTokenAmount(tm.Transfer)
			if err != nil {
				return nil, err
			}
			balance := k.TokenBalance(ctx, contract, caller)
			if balance.LT(amount) {
				return nil, errorsmod.Wrapf(wasmtypes.ErrExecuteFailed, "Cannot Sub with %s and %s", balance, amount)
			}
			k.setTokenBalance(ctx, contract, caller, balance.Sub(amount))
			k.setTokenBalance(ctx, contract, recipient, k.TokenBalance(ctx, contract, recipient).Add(amount))
		default:
			return nil, errorsmod.Wrap(wasmtypes.ErrExecuteFailed, "unknown variant")
		}
		return nil, nil
	}
}

// TokenBalance returns holder's balance in the token contract.
func (k *ContractKeeper) TokenBalance(ctx sdk.Context, contract, holder sdk.AccAddress) sdkmath.Int {
	bz := k.tokenStore(ctx, contract).Get(holder)
	if bz == nil {
		return sdkmath.ZeroInt()
	}
	amount, _ := sdkmath.NewIntFromString(string(bz))
	return amount
}

func (k *ContractKeeper) setTokenBalance(ctx sdk.Context, contract, holder sdk.AccAddress, amount sdkmath.Int) {
	k.tokenStore(ctx, contract).Set(holder, []byte(amount.String()))
}

func (k *ContractKeeper) tokenStore(ctx sdk.Context, contract sdk.AccAddress) prefix.Store {
	return prefix.NewStore(ctx.KVStore(k.storeKey), append(append([]byte{}, tokenBalancePrefix...), address.MustLengthPrefix(contract)...))
}

func parseTokenAmount(msg *tokenAmountMsg) (sdk.AccAddress, sdkmath.Int, error) {
	recipient, err := sdk.AccAddressFromBech32(msg.Recipient)
	if err != nil {
		return nil, sdkmath.Int{}, errorsmod.Wrap(wasmtypes.ErrExecuteFailed, err.Error())
	}
	amount, ok := sdkmath.NewIntFromString(msg.Amount)
	if !ok || amount.IsNegative() {
		return nil, sdkmath.Int{}, errorsmod.Wrapf(wasmtypes.ErrExecuteFailed, "invalid amount %q", msg.Amount)
	}
	return recipient, amount, nil
}
