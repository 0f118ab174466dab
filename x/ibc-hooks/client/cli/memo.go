package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/version"
	"github.com/spf13/cobra"

	"github.com/oraichain/cw1-ibc-hooks/x/ibc-hooks/types"
	proxytypes "github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

// GetMemoCmd returns the offline commands that build and inspect transfer
// memos.
func GetMemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "memo",
		Short:                      "Build and inspect ICS-20 memos carrying proxy directives",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       indexRunCmd,
	}

	cmd.AddCommand(
		GetCmdLegacyMemo(),
		GetCmdBatchMemo(),
		GetCmdInspectMemo(),
	)
	return cmd
}

func GetCmdLegacyMemo() *cobra.Command {
	return &cobra.Command{
		Use:   "legacy <contract> <msg-json>",
		Short: "Build a memo asking the receiver to call a contract",
		Long: strings.TrimSpace(
			fmt.Sprintf(`Build a memo asking the receiver to call a contract without funds.
Example:
$ %s memo legacy wasm1... '{"increment":{}}'
`,
				version.AppName,
			),
		),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(args[1])) {
				return fmt.Errorf("msg is not valid JSON")
			}
			memo, err := types.NewLegacyMemo(args[0], json.RawMessage(args[1]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), memo)
			return err
		},
	}
}

func GetCmdBatchMemo() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <proxy> <actions-json>",
		Short: "Build a memo asking a proxy to run a list of actions",
		Long: strings.TrimSpace(
			fmt.Sprintf(`Build a memo asking the receiving proxy to run a list of actions once the
transfer is credited. The actions are checked before the memo is printed.
Example:
$ %s memo batch wasm1... '[{"bank":{"send":{"to_address":"wasm1...","amount":[{"denom":"uatom","amount":"5"}]}}}]'
`,
				version.AppName,
			),
		),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := proxytypes.DecodeActions([]byte(args[1]))
			if err != nil {
				return err
			}
			memo, err := types.NewBatchMemo(args[0], actions)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), memo)
			return err
		},
	}
}

type inspectedMemo struct {
	Target  string          `json:"target"`
	Legacy  bool            `json:"legacy"`
	Actions json.RawMessage `json:"actions"`
}

func GetCmdInspectMemo() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <memo> <receiver>",
		Short: "Show the directive a memo carries for a given receiver",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			directive, err := types.ParseMemo(args[0], args[1])
			if err != nil {
				return err
			}
			if directive == nil {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "memo carries no directive")
				return err
			}
			actions, err := proxytypes.EncodeActions(directive.Actions)
			if err != nil {
				return err
			}
			return printJSON(cmd, inspectedMemo{Target: directive.Target, Legacy: directive.Legacy, Actions: actions})
		},
	}
}

// GetCmdInspectAck decodes an acknowledgement and prints the hook annotation
// it carries, if any.
func GetCmdInspectAck() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect-ack <ack-json>",
		Short: "Show the hook error carried by a transfer acknowledgement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hookAck, ok := types.ParseHookAck([]byte(args[0]))
			if !ok {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "acknowledgement carries no hook error")
				return err
			}
			return printJSON(cmd, hookAck)
		},
	}
}
