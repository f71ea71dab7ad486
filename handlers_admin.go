package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mwangaza/board/internal/db"
	"github.com/mwangaza/board/internal/rolegate"
)

func renderUsers(w http.ResponseWriter, r *http.Request) {
	users, err := db.ListUsers()
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	data := baseData(r, rolegate.ModuleUsers)
	data["Users"] = users
	data["Roles"] = rolegate.Roles
	data["IsAdmin"] = userRole(r) == rolegate.RoleAdmin
	renderTemplate(w, "users.html", data)
}

func handleAdminCreateUser(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	name := strings.TrimSpace(r.FormValue("name"))
	role := r.FormValue("role")
	if email == "" || name == "" {
		http.Error(w, "Email and name are required", http.StatusBadRequest)
		return
	}
	if !validRole(role) {
		role = string(rolegate.RoleVolunteer)
	}
	if err := db.CreateUser(email, name, role); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}

	if isHTMX(r) {
		renderUsersTable(w, r)
		return
	}
	http.Redirect(w, r, "/tabs/users", http.StatusSeeOther)
}

func handleAdminSetRole(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	role := r.FormValue("role")
	if !validRole(role) {
		http.Error(w, "Unknown role", http.StatusBadRequest)
		return
	}
	u := currentUser(r)
	if id == u.ID {
		http.Error(w, "Cannot change your own role", http.StatusBadRequest)
		return
	}
	if err := db.UpdateUserRole(id, role); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	if isHTMX(r) {
		renderUsersTable(w, r)
		return
	}
	http.Redirect(w, r, "/tabs/users", http.StatusSeeOther)
}

func handleAdminSetActive(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	u := currentUser(r)
	if id == u.ID {
		http.Error(w, "Cannot deactivate yourself", http.StatusBadRequest)
		return
	}
	active := r.FormValue("active") == "true"
	if err := db.SetUserActive(id, active); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	if isHTMX(r) {
		renderUsersTable(w, r)
		return
	}
	http.Redirect(w, r, "/tabs/users", http.StatusSeeOther)
}

func handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	u := currentUser(r)
	if id == u.ID {
		http.Error(w, "Cannot delete yourself", http.StatusBadRequest)
		return
	}
	if err := db.DeleteUser(id); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	if isHTMX(r) {
		renderUsersTable(w, r)
		return
	}
	http.Redirect(w, r, "/tabs/users", http.StatusSeeOther)
}

func renderUsersTable(w http.ResponseWriter, r *http.Request) {
	users, _ := db.ListUsers()
	renderTemplate(w, "users_table.html", map[string]any{
		"Users":   users,
		"Roles":   rolegate.Roles,
		"IsAdmin": userRole(r) == rolegate.RoleAdmin,
		"User":    currentUser(r),
	})
}

func validRole(role string) bool {
	for _, r := range rolegate.Roles {
		if string(r) == role {
			return true
		}
	}
	return false
}
