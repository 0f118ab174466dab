package main

import (
	"os"

	"github.com/cometbft/cometbft/libs/log"
	svrcmd "github.com/cosmos/cosmos-sdk/server/cmd"
)

func main() {
	rootCmd := NewRootCmd()

	if err := svrcmd.Execute(rootCmd, "PROXYHOOKS", DefaultNodeHome); err != nil {
		log.NewTMLogger(log.NewSyncWriter(rootCmd.ErrOrStderr())).Error("failure when running proxyhooks", "err", err)
		os.Exit(1)
	}
}
