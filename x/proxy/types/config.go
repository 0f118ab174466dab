package types

import (
	"fmt"
	"strings"

	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	"github.com/spf13/cast"
)

const (
	// DefaultMaxActions bounds the length of a single batch.
	DefaultMaxActions = 32

	FlagMaxActions      = "proxy.max-actions"
	FlagAllowedTypeURLs = "proxy.allowed-type-urls"
)

// Config holds the executor settings chosen by the node operator.
type Config struct {
	// MaxActions is the largest batch the executor accepts. Zero disables the limit.
	MaxActions int
	// AllowedTypeURLs restricts raw protocol messages to these type URLs. An
	// empty list allows every routable message.
	AllowedTypeURLs []string
}

func DefaultConfig() Config {
	return Config{MaxActions: DefaultMaxActions}
}

// ConfigFromAppOptions reads the executor settings from app.toml, falling back
// to the defaults for unset keys.
func ConfigFromAppOptions(appOpts servertypes.AppOptions) (Config, error) {
	cfg := DefaultConfig()
	if v := appOpts.Get(FlagMaxActions); v != nil {
		n, err := cast.ToIntE(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", FlagMaxActions, err)
		}
		cfg.MaxActions = n
	}
	if v := appOpts.Get(FlagAllowedTypeURLs); v != nil {
		urls, err := cast.ToStringSliceE(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", FlagAllowedTypeURLs, err)
		}
		for _, url := range urls {
			if url = strings.TrimSpace(url); url != "" {
				cfg.AllowedTypeURLs = append(cfg.AllowedTypeURLs, url)
			}
		}
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.MaxActions < 0 {
		return fmt.Errorf("max actions must not be negative, got %d", c.MaxActions)
	}
	for _, url := range c.AllowedTypeURLs {
		if !strings.HasPrefix(url, "/") {
			return fmt.Errorf("type url %q must start with '/'", url)
		}
	}
	return nil
}

// TypeURLAllowed reports whether a raw protocol message of typeURL may run.
func (c Config) TypeURLAllowed(typeURL string) bool {
	if len(c.AllowedTypeURLs) == 0 {
		return true
	}
	for _, url := range c.AllowedTypeURLs {
		if url == typeURL {
			return true
		}
	}
	return false
}
