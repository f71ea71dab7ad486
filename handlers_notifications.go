package main

import (
	"net/http"

	"github.com/mwangaza/board/internal/db"
	"github.com/mwangaza/board/internal/rolegate"
)

func renderNotifications(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	list, err := db.ListNotificationsForRole(u.Role, 50)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	data := baseData(r, rolegate.ModuleNotifications)
	data["Notifications"] = list
	renderTemplate(w, "notifications.html", data)
}

func handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := db.MarkNotificationRead(r.PathValue("id")); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	http.Redirect(w, r, "/tabs/notifications", http.StatusSeeOther)
}

func handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := db.MarkAllNotificationsRead(); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	http.Redirect(w, r, "/tabs/notifications", http.StatusSeeOther)
}

// handleUnreadBadge serves the HTMX-polled badge partial; 204 when nothing
// is unread so the badge clears itself.
func handleUnreadBadge(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	count, err := db.UnreadCountForRole(u.Role)
	if err != nil || count == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	renderTemplate(w, "unread_badge.html", map[string]any{"Unread": count})
}
