package types

const (
	EventTypeProxyInstantiate = "proxy-instantiate"
	EventTypeProxyExecute     = "proxy-execute"
	EventTypeProxyAdminUpdate = "proxy-update-admin"

	AttributeKeyProxy      = "proxy"
	AttributeKeyAdmin      = "admin"
	AttributeKeyCaller     = "caller"
	AttributeKeyProvenance = "provenance"
	AttributeKeyActions    = "actions"
	AttributeKeySalt       = "salt"
)
