package main

import (
	"os"
	"path/filepath"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/spf13/cobra"

	ibc_hooks "github.com/oraichain/cw1-ibc-hooks/x/ibc-hooks"
	hookscli "github.com/oraichain/cw1-ibc-hooks/x/ibc-hooks/client/cli"
	"github.com/oraichain/cw1-ibc-hooks/x/proxy"
	proxycli "github.com/oraichain/cw1-ibc-hooks/x/proxy/client/cli"
)

const flagBech32Prefix = "bech32-prefix"

// DefaultNodeHome is the client home used when --home is not given.
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHomeDir, ".proxyhooks")
}

var ModuleBasics = module.NewBasicManager(
	proxy.AppModuleBasic{},
	ibc_hooks.AppModuleBasic{},
)

// NewRootCmd creates the proxyhooks command: offline memo and address tooling
// plus queries against a node running the proxy and ibc-hooks modules.
func NewRootCmd() *cobra.Command {
	registry := codectypes.NewInterfaceRegistry()
	std.RegisterInterfaces(registry)

	initClientCtx := client.Context{}.
		WithCodec(codec.NewProtoCodec(registry)).
		WithInterfaceRegistry(registry).
		WithInput(os.Stdin).
		WithHomeDir(DefaultNodeHome).
		WithViper("PROXYHOOKS")

	var prefix string
	rootCmd := &cobra.Command{
		Use:   "proxyhooks",
		Short: "Build transfer memos for proxy accounts and inspect their outcome",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			setAddressPrefixes(prefix)

			initClientCtx, err := client.ReadPersistentCommandFlags(initClientCtx, cmd.Flags())
			if err != nil {
				return err
			}
			return client.SetCmdClientContextHandler(initClientCtx, cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&prefix, flagBech32Prefix, sdk.Bech32MainPrefix, "Bech32 prefix of account addresses")

	rootCmd.AddCommand(
		hookscli.GetMemoCmd(),
		hookscli.GetCmdInspectAck(),
		proxycli.GetCmdProxyAddress(),
		queryCommand(),
	)

	return rootCmd
}

func setAddressPrefixes(prefix string) {
	config := sdk.GetConfig()
	config.SetBech32PrefixForAccount(prefix, prefix+sdk.PrefixPublic)
}

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	ModuleBasics.AddQueryCommands(cmd)
	cmd.PersistentFlags().String(flags.FlagChainID, "", "The network chain ID")

	return cmd
}
