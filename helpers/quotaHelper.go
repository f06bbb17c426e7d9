package helpers

import "go-restaurant-operations/models"

type ResourceKind string

const (
	ResourceTables        ResourceKind = "tables"
	ResourceCategories    ResourceKind = "categories"
	ResourceMenuItems     ResourceKind = "menuItems"
	ResourceStaffSeats    ResourceKind = "staffSeats"
	ResourceMonthlyOrders ResourceKind = "monthlyOrders"
)

// planCeilings maps a plan tier to the ceiling per resource kind. A missing
// entry means the plan puts no ceiling on that resource; unlimited is never
// encoded as a sentinel value.
var planCeilings = map[models.PlanTier]map[ResourceKind]int64{
	models.PlanFree: {
		ResourceTables:        10,
		ResourceCategories:    10,
		ResourceMenuItems:     50,
		ResourceStaffSeats:    5,
		ResourceMonthlyOrders: 50,
	},
	models.PlanPremium: {},
}

// CheckLimit decides whether one more resource of the given kind may be
// created. currentCount must be read freshly in the same request; the check
// reserves nothing.
func CheckLimit(plan models.PlanTier, resource ResourceKind, currentCount int64) bool {
	ceilings, ok := planCeilings[plan]
	if !ok {
		// unknown tiers get the most restrictive profile
		ceilings = planCeilings[models.PlanFree]
	}
	ceiling, ok := ceilings[resource]
	if !ok {
		return true
	}
	return currentCount < ceiling
}

func QuotaError(resource ResourceKind) *AppError {
	return NewAppError(ErrQuotaExceeded, "plan limit reached for %s: upgrade your plan to create more", resource)
}
