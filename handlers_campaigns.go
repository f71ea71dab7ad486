package main

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/mwangaza/board/internal/gateway"
	"github.com/mwangaza/board/internal/report"
	"github.com/mwangaza/board/internal/rolegate"
	"github.com/mwangaza/board/internal/transition"
)

type campaignRow struct {
	gateway.Campaign
	Progress int
	Next     []string
}

func renderCampaigns(w http.ResponseWriter, r *http.Request) {
	stores.Campaigns.EnsureLoaded(r.Context())
	snap := stores.Campaigns.Snapshot()

	rows := make([]campaignRow, 0, len(snap.Records))
	for _, c := range snap.Records {
		rows = append(rows, campaignRow{
			Campaign: c,
			Progress: report.CampaignProgress(c),
			Next:     transition.Campaign.Next(c.Status),
		})
	}

	data := baseData(r, rolegate.ModuleCampaigns)
	data["Campaigns"] = rows
	data["Loaded"] = snap.Loaded
	data["Err"] = snap.Err
	data["CanEdit"] = rolegate.IsStaff(userRole(r))
	renderTemplate(w, "campaigns.html", data)
}

func handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	if !rolegate.IsStaff(userRole(r)) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		flashRedirect(w, r, "/tabs/campaigns", "Title is required")
		return
	}

	fields := url.Values{}
	fields.Set("title", title)
	fields.Set("description", r.FormValue("description"))
	fields.Set("target_amount_cents", r.FormValue("target_amount_cents"))
	fields.Set("status", gateway.CampaignActive)

	var files []gateway.FileUpload
	if f, header, err := r.FormFile("photo"); err == nil {
		defer f.Close()
		files = append(files, gateway.FileUpload{Field: "photo", Filename: header.Filename, Content: f})
	}

	created, err := gateway.CreateMultipart[gateway.Campaign](r.Context(), gw, gateway.Campaigns, fields, files)
	if err != nil {
		flashRedirect(w, r, "/tabs/campaigns", err.Error())
		return
	}
	stores.Campaigns.Apply(created)
	http.Redirect(w, r, "/tabs/campaigns", http.StatusSeeOther)
}

// handleCampaignStatus validates the requested transition against the
// campaign graph before anything is sent to the gateway.
func handleCampaignStatus(w http.ResponseWriter, r *http.Request) {
	if !rolegate.IsStaff(userRole(r)) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	id := r.PathValue("id")
	to := r.FormValue("status")

	current, ok := stores.Campaigns.Get(id)
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if !transition.Campaign.Can(current.Status, to) {
		flashRedirect(w, r, "/tabs/campaigns",
			"Illegal transition "+current.Status+" -> "+to)
		return
	}

	if _, err := stores.Campaigns.Update(r.Context(), id, map[string]string{"status": to}); err != nil {
		flashRedirect(w, r, "/tabs/campaigns", err.Error())
		return
	}
	http.Redirect(w, r, "/tabs/campaigns", http.StatusSeeOther)
}

func handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := stores.Campaigns.Delete(r.Context(), r.PathValue("id")); err != nil {
		flashRedirect(w, r, "/tabs/campaigns", err.Error())
		return
	}
	http.Redirect(w, r, "/tabs/campaigns", http.StatusSeeOther)
}
