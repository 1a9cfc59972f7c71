package permission

import (
	"fmt"

	"github.com/orris-inc/backoffice/internal/shared/authorization"
)

const (
	ResourcePlans         = "plans"
	ResourceClients       = "clients"
	ResourceSubscriptions = "subscriptions"
	ResourcePayments      = "payments"

	ActionRead  = "read"
	ActionWrite = "write"
	ActionSweep = "sweep"
)

// defaultPolicies grant the base role everything row scoping already
// protects; elevated roles only add catalog and maintenance rights.
var defaultPolicies = [][]string{
	{authorization.RoleUser.String(), ResourcePlans, ActionRead},
	{authorization.RoleUser.String(), ResourceClients, ActionRead},
	{authorization.RoleUser.String(), ResourceClients, ActionWrite},
	{authorization.RoleUser.String(), ResourceSubscriptions, ActionRead},
	{authorization.RoleUser.String(), ResourceSubscriptions, ActionWrite},
	{authorization.RoleUser.String(), ResourcePayments, ActionRead},
	{authorization.RoleUser.String(), ResourcePayments, ActionWrite},

	{authorization.RoleAdmin.String(), ResourcePlans, ActionWrite},
	{authorization.RoleAdmin.String(), ResourceSubscriptions, ActionSweep},
}

var defaultInheritance = [][2]string{
	{authorization.RoleManager.String(), authorization.RoleUser.String()},
	{authorization.RoleAdmin.String(), authorization.RoleManager.String()},
}

// InitDefaultPolicies installs the built-in role policies. Existing rows
// are left alone, so it is safe to run on every start.
func InitDefaultPolicies(e *Enforcer) error {
	for _, p := range defaultPolicies {
		if err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
	}

	for _, g := range defaultInheritance {
		if err := e.AddRoleInheritance(g[0], g[1]); err != nil {
			return fmt.Errorf("failed to add inheritance [%s, %s]: %w", g[0], g[1], err)
		}
	}

	e.logger.Info("default permission policies initialized")
	return nil
}
