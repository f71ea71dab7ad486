package db

import (
	"encoding/json"
)

func InsertNotification(n Notification) error {
	roles, err := json.Marshal(n.TargetRoles)
	if err != nil {
		return err
	}
	_, err = DB.Exec(`
		INSERT INTO notifications (id, type, title, message, category, target_roles, read)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Type, n.Title, n.Message, n.Category, string(roles), n.Read)
	return err
}

// ListNotificationsForRole returns the newest notifications targeted at role.
// An empty target_roles array means "everyone".
func ListNotificationsForRole(role string, limit int) ([]Notification, error) {
	rows, err := DB.Query(`
		SELECT id, type, title, message, category, target_roles, read, created_at
		FROM notifications ORDER BY created_at DESC, id LIMIT ?`, limit*4)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var roles string
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.Category, &roles, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		json.Unmarshal([]byte(roles), &n.TargetRoles)
		if !targetsRole(n.TargetRoles, role) {
			continue
		}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out, rows.Err()
}

func UnreadCountForRole(role string) (int, error) {
	list, err := ListNotificationsForRole(role, 200)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range list {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func MarkNotificationRead(id string) error {
	_, err := DB.Exec("UPDATE notifications SET read = 1 WHERE id = ?", id)
	return err
}

func MarkAllNotificationsRead() error {
	_, err := DB.Exec("UPDATE notifications SET read = 1")
	return err
}

func targetsRole(targets []string, role string) bool {
	if len(targets) == 0 {
		return true
	}
	for _, t := range targets {
		if t == role {
			return true
		}
	}
	return false
}
