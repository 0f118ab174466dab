package types

const (
	ModuleName = "ibchooks"
	StoreKey   = "hooks-for-ibc" // not using the module name because of collisions with key "ibc"

	// WasmMemoKey is the memo key carrying an execution directive.
	WasmMemoKey = "wasm"
)
