package main

import (
	"net/http"
	"net/url"

	"github.com/mwangaza/board/internal/db"
	"github.com/mwangaza/board/internal/rolegate"
)

// NavItem is one entry of the side navigation.
type NavItem struct {
	ID     string
	Label  string
	Href   string
	Active bool
}

func moduleLabel(id string) string {
	labels := map[string]string{
		rolegate.ModuleDashboard:     "Dashboard",
		rolegate.ModuleCampaigns:     "Campaigns",
		rolegate.ModuleDonations:     "Donations",
		rolegate.ModuleDonors:        "Donors",
		rolegate.ModuleMaterial:      "Material Donations",
		rolegate.ModuleShelters:      "Shelters",
		rolegate.ModuleStaff:         "Staff Credentials",
		rolegate.ModuleCases:         "Cases",
		rolegate.ModuleFamilies:      "Families",
		rolegate.ModuleEvents:        "Events",
		rolegate.ModuleVolunteers:    "Volunteers",
		rolegate.ModuleReports:       "Reports",
		rolegate.ModuleUsers:         "Users",
		rolegate.ModuleNotifications: "Notifications",
		rolegate.ModuleImpact:        "My Impact",
	}
	if l, ok := labels[id]; ok {
		return l
	}
	return id
}

// tabRenderers maps a module id to its view. Every id here must be
// registered in rolegate's module table, and vice versa.
var tabRenderers = map[string]http.HandlerFunc{
	rolegate.ModuleDashboard:     renderDashboard,
	rolegate.ModuleCampaigns:     renderCampaigns,
	rolegate.ModuleDonations:     renderDonations,
	rolegate.ModuleDonors:        renderDonors,
	rolegate.ModuleMaterial:      renderMaterial,
	rolegate.ModuleShelters:      renderShelters,
	rolegate.ModuleStaff:         renderStaff,
	rolegate.ModuleCases:         renderCases,
	rolegate.ModuleFamilies:      renderFamilies,
	rolegate.ModuleEvents:        renderEvents,
	rolegate.ModuleVolunteers:    renderVolunteers,
	rolegate.ModuleReports:       renderReports,
	rolegate.ModuleUsers:         renderUsers,
	rolegate.ModuleNotifications: renderNotifications,
	rolegate.ModuleImpact:        renderImpact,
}

// handleTab is the tab router: it owns nothing but the requested module id.
// Unknown ids 404; ids the role cannot see bounce to the user's first
// visible module.
func handleTab(w http.ResponseWriter, r *http.Request) {
	module := r.PathValue("module")
	render, ok := tabRenderers[module]
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	role := userRole(r)
	if !rolegate.CanViewModule(module, role) {
		visible := rolegate.VisibleModules(role)
		if len(visible) == 0 {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		http.Redirect(w, r, "/tabs/"+visible[0], http.StatusSeeOther)
		return
	}
	render(w, r)
}

// handleTabRefresh re-fetches the stores behind a tab on demand. The
// dashboard poller is paused for the duration so a stale poll response
// cannot overwrite the user-triggered result.
func handleTabRefresh(w http.ResponseWriter, r *http.Request) {
	module := r.PathValue("module")
	if !rolegate.CanViewModule(module, userRole(r)) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	dashPoller.Pause()
	defer dashPoller.Resume()

	if err := stores.RefreshModule(r.Context(), module); err != nil {
		flashRedirect(w, r, "/tabs/"+module, "Refresh failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/tabs/"+module, http.StatusSeeOther)
}

func navFor(u *db.User, active string) []NavItem {
	var items []NavItem
	for _, id := range rolegate.VisibleModules(rolegate.Role(u.Role)) {
		items = append(items, NavItem{
			ID:     id,
			Label:  moduleLabel(id),
			Href:   "/tabs/" + id,
			Active: id == active,
		})
	}
	return items
}

// baseData assembles the fields every tab template expects.
func baseData(r *http.Request, module string) map[string]any {
	u := currentUser(r)
	unread, _ := db.UnreadCountForRole(u.Role)
	return map[string]any{
		"User":   u,
		"Module": module,
		"Title":  moduleLabel(module),
		"Nav":    navFor(u, module),
		"Flash":  r.URL.Query().Get("flash"),
		"Unread": unread,
	}
}

func flashRedirect(w http.ResponseWriter, r *http.Request, target, message string) {
	http.Redirect(w, r, target+"?flash="+url.QueryEscape(message), http.StatusSeeOther)
}
