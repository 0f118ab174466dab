package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

func TestProxyAddressWithPrefix(t *testing.T) {
	admin, err := sdk.Bech32ifyAddressBytes("wasm", bytes.Repeat([]byte{1}, 20))
	require.NoError(t, err)
	t.Cleanup(func() { setAddressPrefixes(sdk.Bech32MainPrefix) })

	out := new(bytes.Buffer)
	cmd := NewRootCmd()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"proxy-address", admin, "vault", "--" + flagBech32Prefix, "wasm"})
	ctx := context.WithValue(context.Background(), client.ClientContextKey, &client.Context{})
	require.NoError(t, cmd.ExecuteContext(ctx))
	require.True(t, strings.HasPrefix(strings.TrimSpace(out.String()), "wasm1"))
}

func TestQueryCommandsRegistered(t *testing.T) {
	cmd := NewRootCmd()
	for _, path := range [][]string{
		{"query", "proxy", "show"},
		{"query", "ibchooks", "hook-result"},
		{"memo", "batch"},
		{"inspect-ack"},
	} {
		found, _, err := cmd.Find(path)
		require.NoError(t, err)
		require.Equal(t, path[len(path)-1], found.Name())
	}
}
