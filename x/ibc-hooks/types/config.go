package types

import (
	"fmt"

	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	"github.com/spf13/cast"
)

const (
	// DefaultGasLimit caps the gas a single directive may use.
	DefaultGasLimit uint64 = 1_000_000

	FlagEnabled  = "ibc-hooks.enabled"
	FlagGasLimit = "ibc-hooks.gas-limit"
)

// Config switches packet triggered execution on and off and bounds its gas.
type Config struct {
	Enabled bool
	// GasLimit is the most gas a directive may consume out of the packet's own
	// meter. Zero leaves only the packet's remaining gas as the bound.
	GasLimit uint64
}

func DefaultConfig() Config {
	return Config{Enabled: true, GasLimit: DefaultGasLimit}
}

// ConfigFromAppOptions reads the hook settings from app.toml.
func ConfigFromAppOptions(appOpts servertypes.AppOptions) (Config, error) {
	cfg := DefaultConfig()
	if v := appOpts.Get(FlagEnabled); v != nil {
		enabled, err := cast.ToBoolE(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", FlagEnabled, err)
		}
		cfg.Enabled = enabled
	}
	if v := appOpts.Get(FlagGasLimit); v != nil {
		limit, err := cast.ToUint64E(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", FlagGasLimit, err)
		}
		cfg.GasLimit = limit
	}
	return cfg, nil
}
