package main

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/*
var templateFS embed.FS

var tmpl *template.Template

func initTemplates() {
	funcMap := template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": func(s string) string {
			if len(s) == 0 {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"money":       formatCents,
		"statusLabel": statusLabel,
		"roleLabel":   roleLabel,
		"moduleLabel": moduleLabel,
		"redactID":    redactID,
		"shortTime":   shortTime,
		"eq": func(a, b any) bool {
			return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
		},
		"dict": func(values ...any) map[string]any {
			d := make(map[string]any)
			for i := 0; i < len(values)-1; i += 2 {
				d[fmt.Sprintf("%v", values[i])] = values[i+1]
			}
			return d
		},
		"sub": func(a, b int) int { return a - b },
	}
	tmpl = template.Must(template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html"))
}

func renderTemplate(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100

	// Group thousands.
	s := fmt.Sprint(whole)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return fmt.Sprintf("%s%s.%02d", sign, strings.Join(parts, ","), frac)
}

func statusLabel(s string) string {
	labels := map[string]string{
		"ACTIVE":         "Active",
		"SUCCESS":        "Success",
		"COMPLETED":      "Completed",
		"PAUSED":         "Paused",
		"CANCELLED":      "Cancelled",
		"PENDING":        "Pending",
		"FAILED":         "Failed",
		"REFUNDED":       "Refunded",
		"VERIFIED":       "Verified",
		"COLLECTED":      "Collected",
		"REJECTED":       "Rejected",
		"PENDING_REVIEW": "Pending Review",
		"COMPLIANT":      "Compliant",
		"NON_COMPLIANT":  "Non-compliant",
		"OPEN":           "Open",
		"CLOSED":         "Closed",
	}
	if l, ok := labels[s]; ok {
		return l
	}
	return s
}

func roleLabel(role string) string {
	labels := map[string]string{
		"ADMIN":           "Admin",
		"MANAGEMENT":      "Management",
		"VOLUNTEER":       "Volunteer",
		"DONOR":           "Donor",
		"SHELTER_PARTNER": "Shelter Partner",
		"CASE_WORKER":     "Case Worker",
		"SOCIAL_MEDIA":    "Social Media",
	}
	if l, ok := labels[role]; ok {
		return l
	}
	return role
}

// redactID keeps the last four characters of a staff id number for viewers
// that are not admins.
func redactID(idNumber string, isAdmin bool) string {
	if isAdmin || len(idNumber) <= 4 {
		return idNumber
	}
	return strings.Repeat("*", len(idNumber)-4) + idNumber[len(idNumber)-4:]
}

func shortTime(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2 Jan 2006 15:04")
	}
	return s
}
