package main

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/mwangaza/board/internal/gateway"
	"github.com/mwangaza/board/internal/report"
)

func renderDashboard(w http.ResponseWriter, r *http.Request) {
	eg, ctx := errgroup.WithContext(r.Context())
	eg.Go(func() error { return stores.Campaigns.EnsureLoaded(ctx) })
	eg.Go(func() error { return stores.Donations.EnsureLoaded(ctx) })
	eg.Go(func() error { return stores.Donors.EnsureLoaded(ctx) })
	eg.Go(func() error { return stores.Shelters.EnsureLoaded(ctx) })
	eg.Wait() // snapshots below carry per-store errors

	campaigns := stores.Campaigns.Snapshot()
	donations := stores.Donations.Snapshot()
	donors := stores.Donors.Snapshot()
	shelters := stores.Shelters.Snapshot()

	active := 0
	for _, c := range campaigns.Records {
		if c.Status == gateway.CampaignActive {
			active++
		}
	}
	pendingShelters := 0
	for _, s := range shelters.Records {
		if s.ComplianceStatus == gateway.CompliancePending {
			pendingShelters++
		}
	}

	data := baseData(r, "dashboard")
	data["TotalRaised"] = report.TotalRaised(donations.Records)
	data["ActiveCampaigns"] = active
	data["DonorCount"] = len(donors.Records)
	data["DonationCount"] = len(donations.Records)
	data["PendingShelters"] = pendingShelters
	data["ByStatus"] = report.GroupDonationsByStatus(donations.Records)
	data["LoadErr"] = firstError(campaigns.Err, donations.Err, donors.Err, shelters.Err)
	renderTemplate(w, "dashboard.html", data)
}

func firstError(errs ...string) string {
	for _, e := range errs {
		if e != "" {
			return e
		}
	}
	return ""
}
