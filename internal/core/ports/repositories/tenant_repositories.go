package repositories

import "context"

// TenantUnitResolver resolves the set of unit/tenant ids sharing a common
// parent tenant with the given id, by asking the external company registry.
// Implementations never fail hard: when the registry has no match or is
// unreachable they fall back to treating the id as a singleton set.
type TenantUnitResolver interface {
	ResolveUnitIDs(ctx context.Context, companyID string) []string
}
