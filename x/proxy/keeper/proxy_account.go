package keeper

import (
	"encoding/hex"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

// CreateProxyAccount registers a new proxy administered by admin. The address
// is derived from admin and salt, so the same pair can only be used once.
func (k Keeper) CreateProxyAccount(ctx sdk.Context, admin sdk.AccAddress, salt []byte) (sdk.AccAddress, error) {
	if err := sdk.VerifyAddressFormat(admin); err != nil {
		return nil, errorsmod.Wrap(sdkerrors.ErrInvalidAddress, err.Error())
	}
	if len(salt) == 0 || len(salt) > types.MaxSaltSize {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "salt must be 1 to %d bytes, got %d", types.MaxSaltSize, len(salt))
	}

	proxy := types.ProxyAddress(admin, salt)
	if _, found := k.getAdmin(ctx, proxy); found {
		return nil, errorsmod.Wrap(types.ErrProxyExists, proxy.String())
	}
	// the address may already hold coins sent ahead of creation; it has no
	// pubkey either way so the account is simply adopted
	k.ensureAccount(ctx, proxy)
	k.setProxy(ctx, proxy, admin)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeProxyInstantiate,
		sdk.NewAttribute(types.AttributeKeyProxy, proxy.String()),
		sdk.NewAttribute(types.AttributeKeyAdmin, admin.String()),
		sdk.NewAttribute(types.AttributeKeySalt, hex.EncodeToString(salt)),
	))
	k.Logger(ctx).Info("proxy account created", "proxy", proxy.String(), "admin", admin.String())

	return proxy, nil
}

// GetProxyAccount returns the registered proxy at address.
func (k Keeper) GetProxyAccount(ctx sdk.Context, proxy sdk.AccAddress) (types.ProxyAccount, bool) {
	admin, found := k.getAdmin(ctx, proxy)
	if !found {
		return types.ProxyAccount{}, false
	}
	return types.ProxyAccount{Address: proxy.String(), Admin: admin.String()}, true
}

// IsProxyAccount reports whether address is a registered proxy.
func (k Keeper) IsProxyAccount(ctx sdk.Context, proxy sdk.AccAddress) bool {
	_, found := k.getAdmin(ctx, proxy)
	return found
}

// IterateProxyAccounts calls cb for every registered proxy in address order
// until cb returns true.
func (k Keeper) IterateProxyAccounts(ctx sdk.Context, cb func(proxy, admin sdk.AccAddress) (stop bool)) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.ProxyAccountPrefix)
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		// keys are length prefixed addresses
		proxy := sdk.AccAddress(iterator.Key()[1:])
		if cb(proxy, sdk.AccAddress(iterator.Value())) {
			break
		}
	}
}

// UpdateAdmin hands the proxy over to newAdmin. Only the current admin may call it.
func (k Keeper) UpdateAdmin(ctx sdk.Context, proxy, caller, newAdmin sdk.AccAddress) error {
	admin, found := k.getAdmin(ctx, proxy)
	if !found {
		return errorsmod.Wrap(types.ErrProxyNotFound, proxy.String())
	}
	if !admin.Equals(caller) {
		return errorsmod.Wrapf(types.ErrUnauthorized, "%s is not the admin of %s", caller, proxy)
	}
	if err := sdk.VerifyAddressFormat(newAdmin); err != nil {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, err.Error())
	}
	k.setProxy(ctx, proxy, newAdmin)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeProxyAdminUpdate,
		sdk.NewAttribute(types.AttributeKeyProxy, proxy.String()),
		sdk.NewAttribute(types.AttributeKeyAdmin, newAdmin.String()),
	))
	return nil
}

func (k Keeper) getAdmin(ctx sdk.Context, proxy sdk.AccAddress) (sdk.AccAddress, bool) {
	if len(proxy) == 0 {
		return nil, false
	}
	bz := ctx.KVStore(k.storeKey).Get(types.ProxyAccountKey(proxy))
	if bz == nil {
		return nil, false
	}
	return sdk.AccAddress(bz), true
}

func (k Keeper) setProxy(ctx sdk.Context, proxy, admin sdk.AccAddress) {
	ctx.KVStore(k.storeKey).Set(types.ProxyAccountKey(proxy), admin)
}

func (k Keeper) ensureAccount(ctx sdk.Context, addr sdk.AccAddress) {
	if k.accountKeeper.HasAccount(ctx, addr) {
		return
	}
	acc := k.accountKeeper.NewAccount(ctx, authtypes.NewBaseAccountWithAddress(addr))
	k.accountKeeper.SetAccount(ctx, acc)
}
