package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mwangaza/board/internal/gateway"
	"github.com/mwangaza/board/internal/report"
	"github.com/mwangaza/board/internal/rolegate"
	"github.com/mwangaza/board/internal/transition"
)

type donationRow struct {
	gateway.Donation
	Next []string
}

// renderDonations shows every donation to staff and only the signed-in
// donor's own records otherwise.
func renderDonations(w http.ResponseWriter, r *http.Request) {
	stores.Donations.EnsureLoaded(r.Context())
	snap := stores.Donations.Snapshot()

	u := currentUser(r)
	staff := rolegate.IsStaff(rolegate.Role(u.Role))

	rows := make([]donationRow, 0, len(snap.Records))
	for _, d := range snap.Records {
		if !staff && !strings.EqualFold(d.DonorEmail, u.Email) {
			continue
		}
		rows = append(rows, donationRow{Donation: d, Next: transition.Donation.Next(d.Status)})
	}

	data := baseData(r, rolegate.ModuleDonations)
	data["Donations"] = rows
	data["Loaded"] = snap.Loaded
	data["Err"] = snap.Err
	data["CanEdit"] = staff
	data["CanPay"] = cfg.Payments.Simulate
	data["TotalRaised"] = report.TotalRaised(snap.Records)
	renderTemplate(w, "donations.html", data)
}

func handleCreateDonation(w http.ResponseWriter, r *http.Request) {
	amount, _ := strconv.ParseInt(r.FormValue("amount_cents"), 10, 64)
	if amount <= 0 {
		flashRedirect(w, r, "/tabs/donations", "Amount must be positive")
		return
	}
	u := currentUser(r)
	body := map[string]any{
		"campaign_id":    r.FormValue("campaign_id"),
		"amount_cents":   amount,
		"payment_method": r.FormValue("payment_method"),
		"donor_email":    u.Email,
		"status":         gateway.DonationPending,
	}
	if _, err := stores.Donations.Create(r.Context(), body); err != nil {
		flashRedirect(w, r, "/tabs/donations", err.Error())
		return
	}
	http.Redirect(w, r, "/tabs/donations", http.StatusSeeOther)
}

func handleDonationStatus(w http.ResponseWriter, r *http.Request) {
	if !rolegate.IsStaff(userRole(r)) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	id := r.PathValue("id")
	to := r.FormValue("status")

	current, ok := stores.Donations.Get(id)
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if !transition.Donation.Can(current.Status, to) {
		flashRedirect(w, r, "/tabs/donations",
			"Illegal transition "+current.Status+" -> "+to)
		return
	}
	if _, err := stores.Donations.Update(r.Context(), id, map[string]string{"status": to}); err != nil {
		flashRedirect(w, r, "/tabs/donations", err.Error())
		return
	}
	http.Redirect(w, r, "/tabs/donations", http.StatusSeeOther)
}

// handleProcessPayment runs the config-gated payment simulation. The real
// payment path lives server-side; this only exists for staging gateways.
func handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	if !cfg.Payments.Simulate {
		http.Error(w, "Payment simulation disabled", http.StatusForbidden)
		return
	}
	id := r.PathValue("id")
	current, ok := stores.Donations.Get(id)
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if current.Status != gateway.DonationPending {
		flashRedirect(w, r, "/tabs/donations", "Only pending donations can be processed")
		return
	}
	if _, err := processPayment(r.Context(), id, r.FormValue("payment_method")); err != nil {
		flashRedirect(w, r, "/tabs/donations", err.Error())
		return
	}
	http.Redirect(w, r, "/tabs/donations", http.StatusSeeOther)
}

func renderDonors(w http.ResponseWriter, r *http.Request) {
	stores.Donors.EnsureLoaded(r.Context())
	snap := stores.Donors.Snapshot()

	type donorRow struct {
		gateway.Donor
		Rank string
	}
	rows := make([]donorRow, 0, len(snap.Records))
	for _, d := range snap.Records {
		rows = append(rows, donorRow{Donor: d, Rank: report.ImpactRank(d.TotalCents)})
	}

	data := baseData(r, rolegate.ModuleDonors)
	data["Donors"] = rows
	data["Loaded"] = snap.Loaded
	data["Err"] = snap.Err
	renderTemplate(w, "donors.html", data)
}

// renderImpact is the donor-personal view: their counted total and tier.
func renderImpact(w http.ResponseWriter, r *http.Request) {
	stores.Donations.EnsureLoaded(r.Context())
	snap := stores.Donations.Snapshot()

	u := currentUser(r)
	total := report.DonorTotal(snap.Records, "", u.Email)

	data := baseData(r, rolegate.ModuleImpact)
	data["Total"] = total
	data["Rank"] = report.ImpactRank(total)
	data["Err"] = snap.Err
	renderTemplate(w, "impact.html", data)
}

func renderMaterial(w http.ResponseWriter, r *http.Request) {
	stores.Material.EnsureLoaded(r.Context())
	snap := stores.Material.Snapshot()

	data := baseData(r, rolegate.ModuleMaterial)
	data["Material"] = snap.Records
	data["Loaded"] = snap.Loaded
	data["Err"] = snap.Err
	data["CanReview"] = rolegate.IsStaff(userRole(r)) || userRole(r) == rolegate.RoleShelterPartner
	renderTemplate(w, "material.html", data)
}

// handleMaterialAction approves (collects) or rejects a material donation.
// Both are one-way: the graph has no edges out of either state.
func handleMaterialAction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	verb := r.PathValue("verb")
	if verb != "approve" && verb != "reject" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	current, ok := stores.Material.Get(id)
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	target := gateway.MaterialCollected
	if verb == "reject" {
		target = gateway.MaterialRejected
	}
	if !transition.Material.Can(current.Status, target) {
		flashRedirect(w, r, "/tabs/material", "Already "+statusLabel(current.Status))
		return
	}

	updated, err := gateway.Action[gateway.MaterialDonation](r.Context(), gw, gateway.MaterialDonations, id, verb, nil)
	if err != nil {
		flashRedirect(w, r, "/tabs/material", err.Error())
		return
	}
	stores.Material.Apply(updated)
	http.Redirect(w, r, "/tabs/material", http.StatusSeeOther)
}
