package keeper

import (
	"testing"
	"time"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"
	tmproto "github.com/cometbft/cometbft/proto/tendermint/types"
	"github.com/cosmos/cosmos-sdk/baseapp"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/std"
	"github.com/cosmos/cosmos-sdk/store"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktestutil "github.com/cosmos/cosmos-sdk/x/bank/testutil"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	minttypes "github.com/cosmos/cosmos-sdk/x/mint/types"
	transfertypes "github.com/cosmos/ibc-go/v7/modules/apps/transfer/types"
	"github.com/stretchr/testify/require"

	hookskeeper "github.com/oraichain/cw1-ibc-hooks/x/ibc-hooks/keeper"
	hookstypes "github.com/oraichain/cw1-ibc-hooks/x/ibc-hooks/types"
	proxykeeper "github.com/oraichain/cw1-ibc-hooks/x/proxy/keeper"
	proxytypes "github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

// module accounts of the fixture; their addresses are blocked from receiving
// funds like in a real app
var maccPerms = map[string][]string{
	minttypes.ModuleName:     {authtypes.Minter},
	transfertypes.ModuleName: {authtypes.Minter, authtypes.Burner},
}

// Fixture bundles the proxy and hooks keepers with the SDK auth and bank
// keepers and a message router serving bank messages, all on one in-memory
// multistore. Only the contract runtime and the transfer app are stand-ins.
type Fixture struct {
	Ctx sdk.Context

	ProxyKeeper *proxykeeper.Keeper
	HooksKeeper *hookskeeper.Keeper

	AccountKeeper authkeeper.AccountKeeper
	BankKeeper    bankkeeper.BaseKeeper
	Router        *baseapp.MsgServiceRouter
	Registry      codectypes.InterfaceRegistry

	Contracts *ContractKeeper
	Transfer  *TransferApp
	ICS4      *ICS4Wrapper
}

func ProxyKeeper(t testing.TB) (*proxykeeper.Keeper, sdk.Context) {
	f := NewFixture(t, proxytypes.DefaultConfig())
	return f.ProxyKeeper, f.Ctx
}

func NewFixture(t testing.TB, config proxytypes.Config) *Fixture {
	keys := sdk.NewKVStoreKeys(
		authtypes.StoreKey,
		banktypes.StoreKey,
		proxytypes.StoreKey,
		hookstypes.StoreKey,
		"fakewasm",
	)

	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db)
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	require.NoError(t, cms.LoadLatestVersion())

	ctx := sdk.NewContext(cms, tmproto.Header{
		ChainID: "proxy-test",
		Height:  1,
		Time:    time.Now(),
	}, false, log.NewNopLogger())

	registry := codectypes.NewInterfaceRegistry()
	std.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	// known to the codec but not routed
	distrtypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)

	authority := authtypes.NewModuleAddress("gov").String()
	blocked := make(map[string]bool, len(maccPerms))
	for name := range maccPerms {
		blocked[authtypes.NewModuleAddress(name).String()] = true
	}

	accountKeeper := authkeeper.NewAccountKeeper(
		cdc,
		keys[authtypes.StoreKey],
		authtypes.ProtoBaseAccount,
		maccPerms,
		sdk.Bech32MainPrefix,
		authority,
	)
	require.NoError(t, accountKeeper.SetParams(ctx, authtypes.DefaultParams()))

	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc,
		keys[banktypes.StoreKey],
		accountKeeper,
		blocked,
		authority,
	)
	require.NoError(t, bankKeeper.SetParams(ctx, banktypes.DefaultParams()))

	router := baseapp.NewMsgServiceRouter()
	router.SetInterfaceRegistry(registry)
	banktypes.RegisterMsgServer(router, bankkeeper.NewMsgServerImpl(bankKeeper))

	contracts := NewContractKeeper(keys["fakewasm"], bankKeeper)
	proxyKeeper := proxykeeper.NewKeeper(keys[proxytypes.StoreKey], accountKeeper, bankKeeper, router, registry, config, nil)
	proxyKeeper.SetContractKeeper(contracts)
	hooksKeeper := hookskeeper.NewKeeper(keys[hookstypes.StoreKey])

	return &Fixture{
		Ctx: ctx,

		ProxyKeeper: proxyKeeper,
		HooksKeeper: &hooksKeeper,

		AccountKeeper: accountKeeper,
		BankKeeper:    bankKeeper,
		Router:        router,
		Registry:      registry,

		Contracts: contracts,
		Transfer:  NewTransferApp(bankKeeper),
		ICS4:      &ICS4Wrapper{},
	}
}

// CreateProxy registers a proxy for admin and fails the test on error.
func (f *Fixture) CreateProxy(t testing.TB, admin sdk.AccAddress, salt string) sdk.AccAddress {
	proxy, err := f.ProxyKeeper.CreateProxyAccount(f.Ctx, admin, []byte(salt))
	require.NoError(t, err)
	return proxy
}

// FundAccount mints coins to addr through the mint module account.
func (f *Fixture) FundAccount(t testing.TB, addr sdk.AccAddress, coins sdk.Coins) {
	require.NoError(t, banktestutil.FundAccount(f.BankKeeper, f.Ctx, addr, coins))
}

// Balance returns addr's balance of denom as an int64.
func (f *Fixture) Balance(addr sdk.AccAddress, denom string) int64 {
	return f.BankKeeper.GetBalance(f.Ctx, addr, denom).Amount.Int64()
}

// BlockedAddr returns a module account address the bank refuses to credit.
func BlockedAddr() sdk.AccAddress {
	return authtypes.NewModuleAddress(minttypes.ModuleName)
}

// RegisterContract installs handler at an address derived from label.
func (f *Fixture) RegisterContract(label string, handler ContractHandler) sdk.AccAddress {
	contract := sdk.AccAddress(address.Module("wasm", []byte(label)))
	f.Contracts.Register(contract, handler)
	return contract
}
