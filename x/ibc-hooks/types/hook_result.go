package types

// HookResult records what happened to the directive of a received packet.
type HookResult struct {
	Proxy    string `json:"proxy"`
	Success  bool   `json:"success"`
	Actions  int    `json:"actions"`
	Error    string `json:"error,omitempty"`
	Received string `json:"received"`
}
