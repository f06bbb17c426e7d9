package helpers

import "testing"

func TestRolePolicy(t *testing.T) {
	tests := []struct {
		role       string
		create     bool
		transition bool
		manage     bool
		managePlan bool
	}{
		{RoleAdmin, true, true, true, true},
		{RoleManager, true, true, true, false},
		{RoleWaiter, true, true, false, false},
		{RoleCashier, true, true, false, false},
		{RoleKitchen, false, true, false, false},
		{"INTERN", false, false, false, false},
		{"", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := CanCreateOrders(tt.role); got != tt.create {
				t.Errorf("CanCreateOrders(%q) = %v, want %v", tt.role, got, tt.create)
			}
			if got := CanTransitionOrders(tt.role); got != tt.transition {
				t.Errorf("CanTransitionOrders(%q) = %v, want %v", tt.role, got, tt.transition)
			}
			if got := CanManageResources(tt.role); got != tt.manage {
				t.Errorf("CanManageResources(%q) = %v, want %v", tt.role, got, tt.manage)
			}
			if got := CanManagePlan(tt.role); got != tt.managePlan {
				t.Errorf("CanManagePlan(%q) = %v, want %v", tt.role, got, tt.managePlan)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleManager, RoleWaiter, RoleKitchen, RoleCashier} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	if ValidRole("OWNER") {
		t.Error("ValidRole(OWNER) = true, want false")
	}
}
