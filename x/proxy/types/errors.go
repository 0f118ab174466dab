package types

// DONTCOVER

import (
	errorsmod "cosmossdk.io/errors"
)

// x/proxy module sentinel errors
var (
	ErrUnsupportedActionKind   = errorsmod.Register(ModuleName, 2, "unsupported action kind")
	ErrInvalidAction           = errorsmod.Register(ModuleName, 3, "invalid action")
	ErrUnauthorized            = errorsmod.Register(ModuleName, 4, "unauthorized")
	ErrInsufficientFunds       = errorsmod.Register(ModuleName, 5, "insufficient funds")
	ErrContractExecutionFailed = errorsmod.Register(ModuleName, 6, "contract execution failed")
	ErrUnroutableMessage       = errorsmod.Register(ModuleName, 7, "unroutable message")
	ErrMessageExecutionFailed  = errorsmod.Register(ModuleName, 8, "message execution failed")
	ErrProxyNotFound           = errorsmod.Register(ModuleName, 9, "proxy account not found")
	ErrProxyExists             = errorsmod.Register(ModuleName, 10, "proxy account already exists")
	ErrInvalidGenesis          = errorsmod.Register(ModuleName, 11, "invalid genesis state")
)
