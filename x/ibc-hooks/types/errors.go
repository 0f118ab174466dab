package types

// DONTCOVER

import errors "cosmossdk.io/errors"

var (
	ErrMalformedDirective = errors.Register(ModuleName, 2, "malformed execution directive")
	ErrRecipientMismatch  = errors.Register(ModuleName, 3, "directive does not target the packet receiver")
	ErrBadResponse        = errors.Register(ModuleName, 4, "cannot create response")
	ErrInvalidPacket      = errors.Register(ModuleName, 5, "invalid packet data")
)
