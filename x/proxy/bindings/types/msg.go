package types

import (
	"encoding/json"

	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
)

type ProxyMsg struct {
	Proxy *ProxyAccountMsg `json:"proxy,omitempty"`
}

type ProxyAccountMsg struct {
	/// Contracts can create proxy accounts they administer. The address is
	/// derived from the contract address and the salt.
	Create *CreateProxy `json:"create,omitempty"`
	/// Contracts can run a batch of actions through a proxy they administer.
	Execute *ExecuteProxy `json:"execute,omitempty"`
	/// Contracts can hand a proxy over to another admin.
	UpdateAdmin *UpdateAdmin `json:"update_admin,omitempty"`
}

type CreateProxy struct {
	Salt string `json:"salt"`
}

// ExecuteProxy carries exactly one of ExecuteMsgs, Msg or CosmosMsgs. Funds
// move from the contract to the proxy before the batch runs.
type ExecuteProxy struct {
	Proxy       string                  `json:"proxy"`
	ExecuteMsgs json.RawMessage         `json:"execute_msgs,omitempty"`
	Msg         []byte                  `json:"msg,omitempty"`
	CosmosMsgs  []wasmvmtypes.CosmosMsg `json:"cosmos_msgs,omitempty"`
	Funds       wasmvmtypes.Coins       `json:"funds,omitempty"`
}

type UpdateAdmin struct {
	Proxy    string `json:"proxy"`
	NewAdmin string `json:"new_admin"`
}

type CreateProxyResponse struct {
	Proxy string `json:"proxy"`
}
