package domain

type Role string

const (
	RoleStaff Role = "staff"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// Principal is the authenticated caller of store-scoped operations.
type Principal struct {
	UserID  string
	StoreID string
	Role    Role
}

// CanManageStore reports whether the principal may mutate orders of the
// given store. Platform admins bypass the store binding.
func (p Principal) CanManageStore(storeID string) bool {
	if p.Role == RoleAdmin {
		return true
	}
	return (p.Role == RoleStaff || p.Role == RoleOwner) && p.StoreID == storeID
}
