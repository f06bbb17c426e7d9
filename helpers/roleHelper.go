package helpers

const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleWaiter  = "WAITER"
	RoleKitchen = "KITCHEN"
	RoleCashier = "CASHIER"
)

// One policy table consulted by every gated endpoint, instead of per-route
// role arrays.
var (
	orderCreateRoles     = roleSet(RoleAdmin, RoleManager, RoleWaiter, RoleCashier)
	orderTransitionRoles = roleSet(RoleAdmin, RoleManager, RoleWaiter, RoleKitchen, RoleCashier)
	resourceManageRoles  = roleSet(RoleAdmin, RoleManager)
	planManageRoles      = roleSet(RoleAdmin)
)

func roleSet(roles ...string) map[string]bool {
	set := make(map[string]bool, len(roles))
	for _, r := range roles {
		set[r] = true
	}
	return set
}

func ValidRole(role string) bool {
	return orderTransitionRoles[role]
}

func CanCreateOrders(role string) bool {
	return orderCreateRoles[role]
}

func CanTransitionOrders(role string) bool {
	return orderTransitionRoles[role]
}

// CanManageResources gates table, menu item and staff seat creation.
func CanManageResources(role string) bool {
	return resourceManageRoles[role]
}

func CanManagePlan(role string) bool {
	return planManageRoles[role]
}

func PermissionError() *AppError {
	return NewAppError(ErrPermission, "you lack access to perform this action")
}
