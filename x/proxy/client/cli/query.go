package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/version"
	"github.com/spf13/cobra"

	"github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

func indexRunCmd(cmd *cobra.Command, args []string) error {
	usageTemplate := `Usage:{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}
  
{{if .HasAvailableSubCommands}}Available Commands:{{range .Commands}}{{if .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
	cmd.SetUsageTemplate(usageTemplate)
	return cmd.Help()
}

// GetQueryCmd returns the cli query commands for this module.
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      fmt.Sprintf("Querying commands for the %s module", types.ModuleName),
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       indexRunCmd,
	}

	cmd.AddCommand(
		GetCmdProxyAddress(),
		GetCmdShowProxy(),
	)
	return cmd
}

// GetCmdProxyAddress derives the address of the proxy an admin creates with a salt.
func GetCmdProxyAddress() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proxy-address <admin> <salt>",
		Short: "Derive the address of the proxy created by an admin with a salt",
		Long: strings.TrimSpace(
			fmt.Sprintf(`Derive the address of the proxy created by an admin with a salt.
Example:
$ %s query %s proxy-address wasm14hj2tavq8fpesdwxxcu44rty3hh90vhujrvcmstl4zr3txmfvw9s0phg4d vault
`,
				version.AppName, types.ModuleName,
			),
		),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return err
			}
			if len(args[1]) == 0 || len(args[1]) > types.MaxSaltSize {
				return fmt.Errorf("salt must be between 1 and %d bytes", types.MaxSaltSize)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), types.ProxyAddress(admin, []byte(args[1])).String())
			return err
		},
	}

	return cmd
}

// GetCmdShowProxy shows the admin of a registered proxy.
func GetCmdShowProxy() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <proxy>",
		Short: "Show a registered proxy account and its admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			proxy, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return err
			}

			bz, _, err := clientCtx.QueryStore(types.ProxyAccountKey(proxy), types.StoreKey)
			if err != nil {
				return err
			}
			if len(bz) == 0 {
				return fmt.Errorf("%s is not a proxy account", args[0])
			}
			out, err := json.MarshalIndent(types.ProxyAccount{Address: proxy.String(), Admin: sdk.AccAddress(bz).String()}, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	flags.AddQueryFlagsToCmd(cmd)

	return cmd
}
