package main

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/mwangaza/board/internal/gateway"
	"github.com/mwangaza/board/internal/rolegate"
)

func renderEvents(w http.ResponseWriter, r *http.Request) {
	stores.Events.EnsureLoaded(r.Context())
	snap := stores.Events.Snapshot()

	data := baseData(r, rolegate.ModuleEvents)
	data["Events"] = snap.Records
	data["Loaded"] = snap.Loaded
	data["Err"] = snap.Err
	data["CanEdit"] = rolegate.IsStaff(userRole(r)) || userRole(r) == rolegate.RoleSocialMedia
	renderTemplate(w, "events.html", data)
}

func handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	role := userRole(r)
	if !rolegate.IsStaff(role) && role != rolegate.RoleSocialMedia {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		flashRedirect(w, r, "/tabs/events", "Title is required")
		return
	}

	fields := url.Values{}
	fields.Set("title", title)
	fields.Set("starts_at", r.FormValue("starts_at"))
	fields.Set("location", r.FormValue("location"))

	var files []gateway.FileUpload
	if f, header, err := r.FormFile("flyer"); err == nil {
		defer f.Close()
		files = append(files, gateway.FileUpload{Field: "flyer", Filename: header.Filename, Content: f})
	}

	created, err := gateway.CreateMultipart[gateway.Event](r.Context(), gw, gateway.Events, fields, files)
	if err != nil {
		flashRedirect(w, r, "/tabs/events", err.Error())
		return
	}
	stores.Events.Apply(created)
	http.Redirect(w, r, "/tabs/events", http.StatusSeeOther)
}

// handleEventRegister signs the current user up for an event via the
// gateway's register action.
func handleEventRegister(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	u := currentUser(r)

	updated, err := gateway.Action[gateway.Event](r.Context(), gw, gateway.Events, id, "register", map[string]string{
		"email": u.Email,
		"name":  u.Name,
	})
	if err != nil {
		flashRedirect(w, r, "/tabs/events", err.Error())
		return
	}
	stores.Events.Apply(updated)
	http.Redirect(w, r, "/tabs/events", http.StatusSeeOther)
}

// renderVolunteers lists volunteer staff alongside upcoming events, the
// volunteer's working view.
func renderVolunteers(w http.ResponseWriter, r *http.Request) {
	stores.Staff.EnsureLoaded(r.Context())
	stores.Events.EnsureLoaded(r.Context())
	staff := stores.Staff.Snapshot()
	events := stores.Events.Snapshot()

	data := baseData(r, rolegate.ModuleVolunteers)
	data["Staff"] = staff.Records
	data["Events"] = events.Records
	data["Err"] = firstError(staff.Err, events.Err)
	renderTemplate(w, "volunteers.html", data)
}

// renderStaff shows staff credentials; id numbers are redacted in the
// template for everyone but admins.
func renderStaff(w http.ResponseWriter, r *http.Request) {
	stores.Staff.EnsureLoaded(r.Context())
	snap := stores.Staff.Snapshot()

	data := baseData(r, rolegate.ModuleStaff)
	data["Staff"] = snap.Records
	data["Loaded"] = snap.Loaded
	data["Err"] = snap.Err
	data["IsAdmin"] = userRole(r) == rolegate.RoleAdmin
	renderTemplate(w, "staff.html", data)
}

func handleVerifyStaff(w http.ResponseWriter, r *http.Request) {
	if !rolegate.IsStaff(userRole(r)) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	id := r.PathValue("id")
	if _, err := stores.Staff.Update(r.Context(), id, map[string]bool{"is_verified": true}); err != nil {
		flashRedirect(w, r, "/tabs/staff", err.Error())
		return
	}
	http.Redirect(w, r, "/tabs/staff", http.StatusSeeOther)
}
