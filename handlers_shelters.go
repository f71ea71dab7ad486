package main

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/mwangaza/board/internal/gateway"
	"github.com/mwangaza/board/internal/notify"
	"github.com/mwangaza/board/internal/rolegate"
	"github.com/mwangaza/board/internal/transition"
)

// renderShelters hides pending-review shelters from roles that are not part
// of the review workflow.
func renderShelters(w http.ResponseWriter, r *http.Request) {
	stores.Shelters.EnsureLoaded(r.Context())
	snap := stores.Shelters.Snapshot()

	role := userRole(r)
	canReview := rolegate.IsStaff(role)
	seesPending := canReview || role == rolegate.RoleShelterPartner

	var shelters []gateway.Shelter
	for _, s := range snap.Records {
		if s.ComplianceStatus == gateway.CompliancePending && !seesPending {
			continue
		}
		shelters = append(shelters, s)
	}

	data := baseData(r, rolegate.ModuleShelters)
	data["Shelters"] = shelters
	data["Loaded"] = snap.Loaded
	data["Err"] = snap.Err
	data["CanReview"] = canReview
	renderTemplate(w, "shelters.html", data)
}

func handleCreateShelter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		flashRedirect(w, r, "/tabs/shelters", "Name is required")
		return
	}

	fields := url.Values{}
	fields.Set("name", name)
	fields.Set("capacity", r.FormValue("capacity"))
	fields.Set("contact", r.FormValue("contact"))
	fields.Set("compliance_status", gateway.CompliancePending)

	var files []gateway.FileUpload
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["photos"] {
			f, err := header.Open()
			if err != nil {
				continue
			}
			defer f.Close()
			files = append(files, gateway.FileUpload{Field: "photos", Filename: header.Filename, Content: f})
		}
	}

	created, err := gateway.CreateMultipart[gateway.Shelter](r.Context(), gw, gateway.Shelters, fields, files)
	if err != nil {
		flashRedirect(w, r, "/tabs/shelters", err.Error())
		return
	}
	stores.Shelters.Apply(created)

	publisher.Notify(notify.Notice{
		Type:     "shelter.submitted",
		Title:    "Shelter pending review",
		Message:  created.Name + " was submitted for compliance review",
		Category: notify.CategoryShelters,
		TargetRoles: []string{
			string(rolegate.RoleAdmin),
			string(rolegate.RoleManagement),
		},
	})
	http.Redirect(w, r, "/tabs/shelters", http.StatusSeeOther)
}

// handleShelterReview moves a shelter through the compliance graph via the
// gateway's approve/reject action endpoints. Review is staff-only.
func handleShelterReview(w http.ResponseWriter, r *http.Request) {
	if !rolegate.IsStaff(userRole(r)) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	id := r.PathValue("id")
	verb := r.PathValue("verb")
	if verb != "approve" && verb != "reject" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	current, ok := stores.Shelters.Get(id)
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	target := gateway.ComplianceCompliant
	if verb == "reject" {
		target = gateway.ComplianceNonCompliant
	}
	if !transition.Compliance.Can(current.ComplianceStatus, target) {
		flashRedirect(w, r, "/tabs/shelters",
			"Illegal transition "+current.ComplianceStatus+" -> "+target)
		return
	}

	updated, err := gateway.Action[gateway.Shelter](r.Context(), gw, gateway.Shelters, id, verb, nil)
	if err != nil {
		flashRedirect(w, r, "/tabs/shelters", err.Error())
		return
	}
	stores.Shelters.Apply(updated)

	publisher.Notify(notify.Notice{
		Type:     "shelter." + verb + "d",
		Title:    "Shelter review",
		Message:  updated.Name + " is now " + statusLabel(updated.ComplianceStatus),
		Category: notify.CategoryShelters,
		TargetRoles: []string{
			string(rolegate.RoleAdmin),
			string(rolegate.RoleManagement),
			string(rolegate.RoleShelterPartner),
		},
	})
	http.Redirect(w, r, "/tabs/shelters", http.StatusSeeOther)
}
