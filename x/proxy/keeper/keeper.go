package keeper

import (
	"fmt"

	"github.com/cometbft/cometbft/libs/log"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

type (
	Keeper struct {
		storeKey storetypes.StoreKey

		accountKeeper  types.AccountKeeper
		bankKeeper     types.BankKeeper
		contractKeeper types.ContractKeeper
		router         types.MessageRouter
		unpacker       codectypes.AnyUnpacker

		config  types.Config
		metrics *Metrics

		setContract bool
	}
)

// NewKeeper returns a new instance of the x/proxy keeper. A nil registerer
// keeps the metrics in a private registry.
func NewKeeper(
	storeKey storetypes.StoreKey,
	accountKeeper types.AccountKeeper,
	bankKeeper types.BankKeeper,
	router types.MessageRouter,
	unpacker codectypes.AnyUnpacker,
	config types.Config,
	registerer prometheus.Registerer,
) *Keeper {
	return &Keeper{
		storeKey: storeKey,

		accountKeeper: accountKeeper,
		bankKeeper:    bankKeeper,
		router:        router,
		unpacker:      unpacker,

		config:  config,
		metrics: NewMetrics(registerer),
	}
}

// wasmd depends on the message router the app builds after this keeper, so the
// contract keeper is set late in app construction. Contract actions fail until
// it is set.
func (k *Keeper) SetContractKeeper(keeper types.ContractKeeper) {
	k.contractKeeper = keeper
	k.setContract = true
}

// Logger returns a logger for the x/proxy module
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

func (k Keeper) Config() types.Config {
	return k.config
}

func (k Keeper) Metrics() *Metrics {
	return k.metrics
}
