package main

import (
	"net/http"
	"strings"

	"github.com/mwangaza/board/internal/gateway"
	"github.com/mwangaza/board/internal/notify"
	"github.com/mwangaza/board/internal/rolegate"
)

func renderCases(w http.ResponseWriter, r *http.Request) {
	stores.Cases.EnsureLoaded(r.Context())
	snap := stores.Cases.Snapshot()

	open := 0
	for _, c := range snap.Records {
		if c.Status == "OPEN" {
			open++
		}
	}

	data := baseData(r, rolegate.ModuleCases)
	data["Cases"] = snap.Records
	data["OpenCount"] = open
	data["Loaded"] = snap.Loaded
	data["Err"] = snap.Err
	renderTemplate(w, "cases.html", data)
}

func renderFamilies(w http.ResponseWriter, r *http.Request) {
	stores.Families.EnsureLoaded(r.Context())
	snap := stores.Families.Snapshot()

	data := baseData(r, rolegate.ModuleFamilies)
	data["Families"] = snap.Records
	data["Loaded"] = snap.Loaded
	data["Err"] = snap.Err
	renderTemplate(w, "families.html", data)
}

func handleAddCaseNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	body := strings.TrimSpace(r.FormValue("body"))
	if body == "" {
		flashRedirect(w, r, "/tabs/cases", "Note body is required")
		return
	}
	u := currentUser(r)

	updated, err := gateway.Action[gateway.Case](r.Context(), gw, gateway.Cases, id, "notes", map[string]string{
		"author": u.Name,
		"body":   body,
	})
	if err != nil {
		flashRedirect(w, r, "/tabs/cases", err.Error())
		return
	}
	stores.Cases.Apply(updated)

	publisher.Notify(notify.Notice{
		Type:     "case.note",
		Title:    "Case note added",
		Message:  u.Name + " added a note to case " + id,
		Category: notify.CategoryCases,
		TargetRoles: []string{
			string(rolegate.RoleAdmin),
			string(rolegate.RoleManagement),
			string(rolegate.RoleCaseWorker),
		},
	})
	http.Redirect(w, r, "/tabs/cases", http.StatusSeeOther)
}

func handleCreateFamily(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		flashRedirect(w, r, "/tabs/families", "Family name is required")
		return
	}
	body := map[string]string{
		"name":    name,
		"contact": strings.TrimSpace(r.FormValue("contact")),
	}
	if _, err := stores.Families.Create(r.Context(), body); err != nil {
		flashRedirect(w, r, "/tabs/families", err.Error())
		return
	}
	http.Redirect(w, r, "/tabs/families", http.StatusSeeOther)
}
