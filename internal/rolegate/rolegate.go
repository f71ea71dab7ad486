// Package rolegate is the static role -> module visibility table. It is used
// both to build navigation and to block direct URLs, so the two can never
// disagree.
package rolegate

// Role is the sole authorization key for view gating.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleManagement     Role = "MANAGEMENT"
	RoleVolunteer      Role = "VOLUNTEER"
	RoleDonor          Role = "DONOR"
	RoleShelterPartner Role = "SHELTER_PARTNER"
	RoleCaseWorker     Role = "CASE_WORKER"
	RoleSocialMedia    Role = "SOCIAL_MEDIA"
)

// Roles lists every known role in display order.
var Roles = []Role{
	RoleAdmin, RoleManagement, RoleVolunteer, RoleDonor,
	RoleShelterPartner, RoleCaseWorker, RoleSocialMedia,
}

// Module ids, matching the tab router registry.
const (
	ModuleDashboard     = "dashboard"
	ModuleCampaigns     = "campaigns"
	ModuleDonations     = "donations"
	ModuleDonors        = "donors"
	ModuleMaterial      = "material"
	ModuleShelters      = "shelters"
	ModuleStaff         = "staff"
	ModuleCases         = "cases"
	ModuleFamilies      = "families"
	ModuleEvents        = "events"
	ModuleVolunteers    = "volunteers"
	ModuleReports       = "reports"
	ModuleUsers         = "users"
	ModuleNotifications = "notifications"
	ModuleImpact        = "impact"
)

// moduleOrder fixes the navigation display order and doubles as the
// known-module set.
var moduleOrder = []string{
	ModuleDashboard,
	ModuleCampaigns,
	ModuleDonations,
	ModuleDonors,
	ModuleMaterial,
	ModuleShelters,
	ModuleStaff,
	ModuleCases,
	ModuleFamilies,
	ModuleEvents,
	ModuleVolunteers,
	ModuleReports,
	ModuleUsers,
	ModuleNotifications,
	ModuleImpact,
}

// ModuleImpact is the donor-personal view; it is the one module ADMIN and
// MANAGEMENT do not get.
var allowlists = map[Role][]string{
	RoleVolunteer:      {ModuleDashboard, ModuleEvents, ModuleVolunteers, ModuleNotifications},
	RoleDonor:          {ModuleDashboard, ModuleDonations, ModuleImpact, ModuleEvents, ModuleNotifications},
	RoleShelterPartner: {ModuleDashboard, ModuleShelters, ModuleMaterial, ModuleNotifications},
	RoleCaseWorker:     {ModuleDashboard, ModuleCases, ModuleFamilies, ModuleReports, ModuleNotifications},
	RoleSocialMedia:    {ModuleDashboard, ModuleCampaigns, ModuleEvents, ModuleReports, ModuleNotifications},
}

// Modules returns every registered module id in display order.
func Modules() []string {
	out := make([]string, len(moduleOrder))
	copy(out, moduleOrder)
	return out
}

// KnownModule reports whether id is registered at all.
func KnownModule(id string) bool {
	for _, m := range moduleOrder {
		if m == id {
			return true
		}
	}
	return false
}

// CanViewModule reports whether role may open the given module. Unknown
// roles and unknown modules are denied.
func CanViewModule(module string, role Role) bool {
	if !KnownModule(module) {
		return false
	}
	switch role {
	case RoleAdmin, RoleManagement:
		return module != ModuleImpact
	}
	for _, m := range allowlists[role] {
		if m == module {
			return true
		}
	}
	return false
}

// VisibleModules returns the navigation entries for role, in display order.
func VisibleModules(role Role) []string {
	var out []string
	for _, m := range moduleOrder {
		if CanViewModule(m, role) {
			out = append(out, m)
		}
	}
	return out
}

// IsStaff reports whether role is one of the all-access roles.
func IsStaff(role Role) bool {
	return role == RoleAdmin || role == RoleManagement
}
