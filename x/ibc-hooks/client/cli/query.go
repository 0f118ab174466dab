package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/version"
	"github.com/spf13/cobra"

	"github.com/oraichain/cw1-ibc-hooks/x/ibc-hooks/keeper"
	"github.com/oraichain/cw1-ibc-hooks/x/ibc-hooks/types"
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
		GetCmdHookResult(),
	)
	return cmd
}

// GetCmdHookResult queries the recorded outcome of the directive carried by a
// received packet.
func GetCmdHookResult() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook-result <channelID> <sequence>",
		Short: "Show the outcome of the memo directive of a received transfer",
		Long: strings.TrimSpace(
			fmt.Sprintf(`Show the outcome of the memo directive of a received transfer.
Example:
$ %s query %s hook-result channel-42 7
`,
				version.AppName, types.ModuleName,
			),
		),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			sequence, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sequence %q: %w", args[1], err)
			}

			bz, _, err := clientCtx.QueryStore(keeper.GetPacketKey(args[0], sequence), types.StoreKey)
			if err != nil {
				return err
			}
			if len(bz) == 0 {
				return fmt.Errorf("no hook result for %s/%d", args[0], sequence)
			}
			var result types.HookResult
			if err := json.Unmarshal(bz, &result); err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)

	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
